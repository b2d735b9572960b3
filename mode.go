package uwacodec

// Mode selects one of the three wire framing conventions. It is never
// carried on the wire itself; sender and receiver must agree on it out of
// band (statically, or by the framing context of the channel).
type Mode int

const (
	// ModePointToPoint emits the bit-packed body with no prefix. The
	// decoder must be told the schema externally.
	ModePointToPoint Mode = iota

	// ModeSelfDescribing prefixes the body with a varid-encoded message id,
	// letting the receiver recover the schema from the registry.
	ModeSelfDescribing

	// ModeRouted prefixes the body with a 3-byte routing header and a
	// varid-encoded message id.
	ModeRouted
)

// EncodeMessage produces the wire bytes for one message under the given
// mode. routing is only consulted for ModeRouted and may be the zero value
// otherwise.
func EncodeMessage(mode Mode, m MessageDescriptor, values []any, routing RoutingHeader) ([]byte, error) {
	body, err := EncodeBody(m, values)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModePointToPoint:
		return body, nil

	case ModeSelfDescribing:
		out, err := appendVarid(nil, m.ID)
		if err != nil {
			return nil, err
		}
		return append(out, body...), nil

	case ModeRouted:
		out := routing.Encode()
		out, err = appendVarid(out, m.ID)
		if err != nil {
			return nil, err
		}
		return append(out, body...), nil

	default:
		return nil, wrapf(ErrInvalidSchema, "unknown mode %d", mode)
	}
}

// DecodedMessage holds the result of decoding a mode 2/3 wire message: the
// id that was read off the wire, the decoded field values, and (for mode 3
// only) the routing header.
type DecodedMessage struct {
	ID      int
	Values  []any
	Routing RoutingHeader
}

// DecodeMessage is the inverse of EncodeMessage for ModePointToPoint, where
// the schema is supplied externally because no id is on the wire.
func DecodeMessage(m MessageDescriptor, wire []byte) ([]any, error) {
	return DecodeBody(m, wire)
}

// DecodeSelfDescribing reads a mode 2 wire message: a varid followed by the
// body. The caller supplies the schema (e.g. from a prior out-of-band
// lookup); use Registry.DecodeByID to resolve the schema from the id
// automatically.
func DecodeSelfDescribing(m MessageDescriptor, wire []byte) (DecodedMessage, error) {
	id, n, err := readVarid(wire)
	if err != nil {
		return DecodedMessage{}, err
	}
	values, err := DecodeBody(m, wire[n:])
	if err != nil {
		return DecodedMessage{}, err
	}
	return DecodedMessage{ID: id, Values: values}, nil
}

// DecodeRouted reads a mode 3 wire message: a 3-byte routing header, a
// varid, and the body.
func DecodeRouted(m MessageDescriptor, wire []byte) (DecodedMessage, error) {
	routing, err := DecodeRoutingHeader(wire)
	if err != nil {
		return DecodedMessage{}, err
	}
	rest := wire[routingHeaderBytes:]
	id, n, err := readVarid(rest)
	if err != nil {
		return DecodedMessage{}, err
	}
	values, err := DecodeBody(m, rest[n:])
	if err != nil {
		return DecodedMessage{}, err
	}
	return DecodedMessage{ID: id, Values: values, Routing: routing}, nil
}
