package uwacodec

import "bytes"

// maxFramedPayload is the largest payload a 16-bit big-endian length prefix
// can describe.
const maxFramedPayload = 0xFFFF

// Frame produces len_be16 | payload | crc for payload under the given
// CRCKind. Length is the byte count of payload only (excluding the CRC and
// the length field itself), big-endian. It fails ErrOversizeMessage if
// payload is too large for the 16-bit length field.
func Frame(payload []byte, kind CRCKind) ([]byte, error) {
	if len(payload) > maxFramedPayload {
		return nil, wrapf(ErrOversizeMessage, "payload of %d bytes exceeds framed limit %d", len(payload), maxFramedPayload)
	}

	out := make([]byte, 0, 2+len(payload)+kind.size())
	out = append(out, byte(len(payload)>>8), byte(len(payload)))
	out = append(out, payload...)
	out = append(out, kind.compute(payload)...)
	return out, nil
}

// Unframe validates and strips a Frame-produced wrapper, returning the
// original payload. It fails ErrTruncated if fewer bytes are available
// than the length field promises, and ErrBadChecksum (a CorruptValue) if
// the trailing CRC does not match.
func Unframe(wire []byte, kind CRCKind) ([]byte, error) {
	if len(wire) < 2 {
		return nil, wrapf(ErrTruncated, "frame: missing length prefix")
	}
	length := int(wire[0])<<8 | int(wire[1])

	need := 2 + length + kind.size()
	if len(wire) < need {
		return nil, wrapf(ErrTruncated, "frame: declares %d-byte payload, only %d bytes available", length, len(wire)-2-kind.size())
	}

	payload := wire[2 : 2+length]
	gotCRC := wire[2+length : need]
	wantCRC := kind.compute(payload)
	if !bytes.Equal(gotCRC, wantCRC) {
		return nil, wrapf(ErrBadChecksum, "frame: checksum mismatch")
	}
	return payload, nil
}

// FrameWithID places an 8-bit numeric message id between the length and the
// payload, for legacy framing uses distinct from the mode-2 varid prefix.
func FrameWithID(id uint8, payload []byte, kind CRCKind) ([]byte, error) {
	withID := append([]byte{id}, payload...)
	return Frame(withID, kind)
}

// UnframeWithID is the inverse of FrameWithID.
func UnframeWithID(wire []byte, kind CRCKind) (id uint8, payload []byte, err error) {
	body, err := Unframe(wire, kind)
	if err != nil {
		return 0, nil, err
	}
	if len(body) < 1 {
		return 0, nil, wrapf(ErrTruncated, "frame_with_id: missing id byte")
	}
	return body[0], body[1:], nil
}
