package uwacodec

import "unicode/utf8"

// EncodeField appends the bit encoding of v, as declared by f, onto p. v's
// concrete type must match f.Kind: bool for Bool, int64 for UInt/SInt,
// string for Enum/FixedString, []byte for FixedBytes, float64 for
// BoundedFloat.
func EncodeField(p *BitPacker, f FieldDescriptor, v any) error {
	switch f.Kind {
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return wrapf(ErrInvalidSchema, "field %q: expected bool, got %T", f.Name, v)
		}
		if b {
			return p.Write(1, 1)
		}
		return p.Write(0, 1)

	case KindUInt, KindSInt:
		n, ok := toInt64(v)
		if !ok {
			return wrapf(ErrInvalidSchema, "field %q: expected integer, got %T", f.Name, v)
		}
		if n < f.Lo || n > f.Hi {
			return wrapf(ErrOutOfRange, "field %q: value %d not in [%d,%d]", f.Name, n, f.Lo, f.Hi)
		}
		return p.Write(uint64(n-f.Lo), f.width)

	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return wrapf(ErrInvalidSchema, "field %q: expected string, got %T", f.Name, v)
		}
		idx := -1
		for i, candidate := range f.Values {
			if candidate == s {
				idx = i
				break
			}
		}
		if idx < 0 {
			return wrapf(ErrOutOfRange, "field %q: %q is not a member of the enum", f.Name, s)
		}
		return p.Write(uint64(idx), f.width)

	case KindFixedBytes:
		b, ok := v.([]byte)
		if !ok {
			return wrapf(ErrInvalidSchema, "field %q: expected []byte, got %T", f.Name, v)
		}
		if len(b) > f.Length {
			return wrapf(ErrOutOfRange, "field %q: %d bytes exceeds fixed length %d", f.Name, len(b), f.Length)
		}
		for i := 0; i < f.Length; i++ {
			var by byte
			if i < len(b) {
				by = b[i]
			}
			if err := p.Write(uint64(by), 8); err != nil {
				return err
			}
		}
		return nil

	case KindFixedString:
		s := ""
		if sv, ok := v.(string); ok {
			s = sv
		} else {
			return wrapf(ErrInvalidSchema, "field %q: expected string, got %T", f.Name, v)
		}
		raw := []byte(s)
		if len(raw) > f.Length {
			return wrapf(ErrOutOfRange, "field %q: encoded length %d exceeds fixed length %d", f.Name, len(raw), f.Length)
		}
		// A right-pad to f.Length must not split a multi-byte code point:
		// padding only appends NUL bytes after raw, so this can only happen
		// if raw itself ends mid-sequence. A Go string may hold such bytes,
		// so raw is rejected unless it is valid UTF-8 as a whole.
		if !utf8.Valid(raw) {
			return wrapf(ErrOutOfRange, "field %q: value is not valid UTF-8", f.Name)
		}
		for i := 0; i < f.Length; i++ {
			var by byte
			if i < len(raw) {
				by = raw[i]
			}
			if err := p.Write(uint64(by), 8); err != nil {
				return err
			}
		}
		return nil

	case KindBoundedFloat:
		fv, ok := toFloat64(v)
		if !ok {
			return wrapf(ErrInvalidSchema, "field %q: expected float, got %T", f.Name, v)
		}
		if fv < f.Min || fv > f.Max {
			return wrapf(ErrOutOfRange, "field %q: value %v not in [%v,%v]", f.Name, fv, f.Min, f.Max)
		}
		scale := scaleFor(f.Precision)
		s := roundHalfToEven((fv - f.Min) * scale)
		return p.Write(uint64(s), f.width)

	default:
		return wrapf(ErrInvalidSchema, "field %q: unknown kind %v", f.Name, f.Kind)
	}
}

// DecodeField reads a single field's bits from u, as declared by f, and
// returns it as a bool, int64, string, []byte, or float64 depending on
// f.Kind.
func DecodeField(u *BitUnpacker, f FieldDescriptor) (any, error) {
	switch f.Kind {
	case KindBool:
		bit, err := u.Read(1)
		if err != nil {
			return nil, err
		}
		return bit != 0, nil

	case KindUInt, KindSInt:
		raw, err := u.Read(f.width)
		if err != nil {
			return nil, err
		}
		return f.Lo + int64(raw), nil

	case KindEnum:
		idx, err := u.Read(f.width)
		if err != nil {
			return nil, err
		}
		if int(idx) >= len(f.Values) {
			return nil, wrapf(ErrCorruptValue, "field %q: enum index %d out of range (cardinality %d)", f.Name, idx, len(f.Values))
		}
		return f.Values[idx], nil

	case KindFixedBytes:
		out := make([]byte, f.Length)
		for i := 0; i < f.Length; i++ {
			raw, err := u.Read(8)
			if err != nil {
				return nil, err
			}
			out[i] = byte(raw)
		}
		return out, nil

	case KindFixedString:
		raw := make([]byte, f.Length)
		for i := 0; i < f.Length; i++ {
			b, err := u.Read(8)
			if err != nil {
				return nil, err
			}
			raw[i] = byte(b)
		}
		trimmed := trimTrailingNUL(raw)
		if !utf8.Valid(trimmed) {
			return nil, wrapf(ErrCorruptValue, "field %q: invalid UTF-8 sequence", f.Name)
		}
		return string(trimmed), nil

	case KindBoundedFloat:
		raw, err := u.Read(f.width)
		if err != nil {
			return nil, err
		}
		scale := scaleFor(f.Precision)
		return f.Min + float64(raw)/scale, nil

	default:
		return nil, wrapf(ErrInvalidSchema, "field %q: unknown kind %v", f.Name, f.Kind)
	}
}

func trimTrailingNUL(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return b[:i]
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
