package uwacodec

// varidMax is the largest representable message id: 15 bits of payload in
// the two-byte continuation form.
const varidMax = 32767

// appendVarid encodes id (0-32767) as the 1- or 2-byte continuation form
// used by mode 2/3 framing: ids <= 127 take one byte (0xxxxxxx); larger ids
// take two bytes, with the high bit of the first byte set as a
// continuation flag and the remaining 15 bits big-endian. This is not a
// general varint - it is exactly one or two bytes.
func appendVarid(buf []byte, id int) ([]byte, error) {
	if id < 0 || id > varidMax {
		return nil, wrapf(ErrOutOfRange, "message id %d does not fit in a varid", id)
	}
	if id <= 127 {
		return append(buf, byte(id)), nil
	}
	hi := byte(0x80 | (id >> 8))
	lo := byte(id & 0xFF)
	return append(buf, hi, lo), nil
}

// readVarid decodes a varid from the front of buf, returning the id, the
// number of bytes consumed, and an error.
func readVarid(buf []byte) (id int, n int, err error) {
	if len(buf) < 1 {
		return 0, 0, wrapf(ErrTruncated, "varid: no bytes available")
	}
	first := buf[0]
	if first&0x80 == 0 {
		return int(first), 1, nil
	}
	if len(buf) < 2 {
		return 0, 0, wrapf(ErrTruncated, "varid: continuation flag set but second byte missing")
	}
	id = (int(first&0x7F) << 8) | int(buf[1])
	return id, 2, nil
}
