package uwacodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFrameUnframeCRC32EmptyPayload(t *testing.T) {
	wire, err := Frame(nil, CRC32)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, wire) // len=0, crc=0

	payload, err := Unframe(wire, CRC32)
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestFrameUnframeRoundTrip(t *testing.T) {
	for _, kind := range []CRCKind{CRC16, CRC32} {
		payload := []byte("underwater acoustic modem")
		wire, err := Frame(payload, kind)
		require.NoError(t, err)

		got, err := Unframe(wire, kind)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
}

func TestUnframeTruncated(t *testing.T) {
	wire, err := Frame([]byte("hi"), CRC16)
	require.NoError(t, err)

	_, err = Unframe(wire[:len(wire)-1], CRC16)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestUnframeBadChecksum(t *testing.T) {
	wire, err := Frame([]byte("hi"), CRC32)
	require.NoError(t, err)
	wire[2] ^= 0x01 // flip a payload bit

	_, err = Unframe(wire, CRC32)
	assert.ErrorIs(t, err, ErrBadChecksum)
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestFrameWithIDRoundTrip(t *testing.T) {
	wire, err := FrameWithID(7, []byte("legacy"), CRC16)
	require.NoError(t, err)

	id, payload, err := UnframeWithID(wire, CRC16)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), id)
	assert.Equal(t, []byte("legacy"), payload)
}

// TestSingleBitFlipAlwaysCaught exercises the CRC catches single-bit flips
// property from the spec: for any framed message, flipping any single bit
// outside the length field causes Unframe to report a bad checksum.
func TestSingleBitFlipAlwaysCaught(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "payload")
		kind := CRCKind(rapid.IntRange(0, 1).Draw(t, "kind"))

		wire, err := Frame(payload, kind)
		assert.NoError(t, err)

		// Bit positions 16.. cover the payload and CRC, skipping the 2-byte
		// length field.
		bitPos := rapid.IntRange(16, len(wire)*8-1).Draw(t, "bitPos")
		corrupted := make([]byte, len(wire))
		copy(corrupted, wire)
		byteIdx := bitPos / 8
		bit := bitPos % 8
		corrupted[byteIdx] ^= 1 << uint(bit)

		_, err = Unframe(corrupted, kind)
		assert.ErrorIs(t, err, ErrBadChecksum)
	})
}
