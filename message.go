package uwacodec

// MessageDescriptor is an ordered, immutable schema for one message type.
// Field order is part of the wire contract: two descriptors with the same
// fields in different orders produce different bytes.
type MessageDescriptor struct {
	// ID is the message's numeric identifier, used by mode 2/3 framing and
	// the registry. A negative value means "no id assigned" (mode 1 only).
	ID int

	// MaxBytes is an advisory upper bound on the encoded body size. Zero
	// means unset (no check is performed).
	MaxBytes int

	Fields []FieldDescriptor
}

// NewMessageDescriptor validates id and fields and returns an immutable
// descriptor. id must be in [0, 32767] or -1 for "unassigned".
func NewMessageDescriptor(id int, maxBytes int, fields []FieldDescriptor) (MessageDescriptor, error) {
	if id != -1 && (id < 0 || id > 32767) {
		return MessageDescriptor{}, wrapf(ErrInvalidSchema, "message id %d out of range [0,32767]", id)
	}
	if maxBytes < 0 {
		return MessageDescriptor{}, wrapf(ErrInvalidSchema, "max_bytes %d must be non-negative", maxBytes)
	}
	cp := make([]FieldDescriptor, len(fields))
	copy(cp, fields)
	return MessageDescriptor{ID: id, MaxBytes: maxBytes, Fields: cp}, nil
}

// BodyBits returns the sum of the descriptor's field widths.
func (m MessageDescriptor) BodyBits() uint {
	var total uint
	for _, f := range m.Fields {
		total += f.Width()
	}
	return total
}

// BodyBytes returns the byte length of the body once padded to a byte
// boundary: ceil(BodyBits()/8).
func (m MessageDescriptor) BodyBytes() int {
	bits := m.BodyBits()
	return int((bits + 7) / 8)
}

// EncodeBody walks the descriptor's fields in declaration order, encoding
// each value from values (by position) into one bit-packed, byte-aligned
// body. It fails OversizeMessage if MaxBytes is set and the resulting body
// would exceed it.
func EncodeBody(m MessageDescriptor, values []any) ([]byte, error) {
	if len(values) != len(m.Fields) {
		return nil, wrapf(ErrInvalidSchema, "expected %d values, got %d", len(m.Fields), len(values))
	}

	p := NewBitPacker(m.BodyBytes())
	for i, f := range m.Fields {
		if err := EncodeField(p, f, values[i]); err != nil {
			return nil, err
		}
	}
	body, _ := p.Finish()

	if m.MaxBytes > 0 && len(body) > m.MaxBytes {
		return nil, wrapf(ErrOversizeMessage, "body of %d bytes exceeds max_bytes %d", len(body), m.MaxBytes)
	}
	return body, nil
}

// DecodeBody reads the descriptor's fields, in declaration order, off body
// and returns one value per field. Trailing padding bits are ignored.
func DecodeBody(m MessageDescriptor, body []byte) ([]any, error) {
	u := NewBitUnpacker(body)
	values := make([]any, len(m.Fields))
	for i, f := range m.Fields {
		v, err := DecodeField(u, f)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
