package uwacodec

// RoutingHeader carries mode 3's source/destination/priority/ack metadata.
// On the wire it occupies exactly 3 bytes: source_id, dest_id, and a
// packed byte of priority/ack/reserved bits.
type RoutingHeader struct {
	SourceID     uint8 // 0-255
	DestID       uint8 // 0-255; 255 denotes broadcast
	Priority     uint8 // 0-3
	AckRequested bool
}

const routingHeaderBytes = 3

// Encode writes the 3-byte routing header. Priority is masked to its low 2
// bits; the reserved low 5 bits of byte 2 are always zero.
func (h RoutingHeader) Encode() []byte {
	byte2 := (h.Priority & 0x03) << 6
	if h.AckRequested {
		byte2 |= 1 << 5
	}
	return []byte{h.SourceID, h.DestID, byte2}
}

// DecodeRoutingHeader reads a 3-byte routing header from the front of buf.
// The reserved low 5 bits of byte 2 are ignored, per spec leniency.
func DecodeRoutingHeader(buf []byte) (RoutingHeader, error) {
	if len(buf) < routingHeaderBytes {
		return RoutingHeader{}, wrapf(ErrTruncated, "routing header needs %d bytes, got %d", routingHeaderBytes, len(buf))
	}
	byte2 := buf[2]
	return RoutingHeader{
		SourceID:     buf[0],
		DestID:       buf[1],
		Priority:     (byte2 >> 6) & 0x03,
		AckRequested: byte2&(1<<5) != 0,
	}, nil
}
