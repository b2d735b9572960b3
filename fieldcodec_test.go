package uwacodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func roundTripField(t require.TestingT, f FieldDescriptor, v any) any {
	p := NewBitPacker(0)
	require.NoError(t, EncodeField(p, f, v))
	body, _ := p.Finish()
	u := NewBitUnpacker(body)
	got, err := DecodeField(u, f)
	require.NoError(t, err)
	return got
}

func TestEnumRoundTrip(t *testing.T) {
	f, err := NewEnumField("state", []string{"idle", "transmitting", "receiving"})
	require.NoError(t, err)

	got := roundTripField(t, f, "transmitting")
	assert.Equal(t, "transmitting", got)

	p := NewBitPacker(0)
	err = EncodeField(p, f, "unknown")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEnumDecodeOutOfRangeIndex(t *testing.T) {
	// Cardinality 3 needs 2 bits (ceil(log2(3))), which can represent
	// indices up to 3 - one more than the enum actually has.
	f, err := NewEnumField("state", []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, uint(2), f.Width())

	p := NewBitPacker(0)
	require.NoError(t, p.Write(3, f.Width()))
	body, _ := p.Finish()

	u := NewBitUnpacker(body)
	_, err = DecodeField(u, f)
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestFixedBytesPadsAndTruncatesNever(t *testing.T) {
	f, err := NewFixedBytesField("payload", 4)
	require.NoError(t, err)

	got := roundTripField(t, f, []byte{0x01, 0x02})
	assert.Equal(t, []byte{0x01, 0x02, 0x00, 0x00}, got)

	p := NewBitPacker(0)
	err = EncodeField(p, f, []byte{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFixedStringStripsTrailingNUL(t *testing.T) {
	f, err := NewFixedStringField("name", 8)
	require.NoError(t, err)

	got := roundTripField(t, f, "ok")
	assert.Equal(t, "ok", got)
}

func TestFixedStringInvalidUTF8OnDecode(t *testing.T) {
	f, err := NewFixedStringField("name", 4)
	require.NoError(t, err)

	p := NewBitPacker(0)
	require.NoError(t, p.Write(0xFF, 8)) // invalid UTF-8 lead byte
	require.NoError(t, p.Write(0, 8))
	require.NoError(t, p.Write(0, 8))
	require.NoError(t, p.Write(0, 8))
	body, _ := p.Finish()

	u := NewBitUnpacker(body)
	_, err = DecodeField(u, f)
	assert.ErrorIs(t, err, ErrCorruptValue)
}

func TestUIntSIntOutOfRange(t *testing.T) {
	f, err := NewUIntField("u", 10, 20)
	require.NoError(t, err)

	p := NewBitPacker(0)
	assert.ErrorIs(t, EncodeField(p, f, int64(5)), ErrOutOfRange)
	assert.ErrorIs(t, EncodeField(p, f, int64(21)), ErrOutOfRange)

	got := roundTripField(t, f, int64(15))
	assert.Equal(t, int64(15), got)
}

func TestBoolRoundTrip(t *testing.T) {
	f, err := NewBoolField("ack")
	require.NoError(t, err)

	assert.Equal(t, true, roundTripField(t, f, true))
	assert.Equal(t, false, roundTripField(t, f, false))
}

func TestFieldRoundTripRapid(t *testing.T) {
	f, err := NewUIntField("u", 0, 100000)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int64Range(0, 100000).Draw(t, "v")
		p := NewBitPacker(0)
		assert.NoError(t, EncodeField(p, f, v))
		body, _ := p.Finish()
		u := NewBitUnpacker(body)
		got, err := DecodeField(u, f)
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	})
}

func TestBoundedFloatRapidRoundTrip(t *testing.T) {
	f, err := NewBoundedFloatField("temp", -40, 85, 2)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64Range(-40, 85).Draw(t, "v")
		p := NewBitPacker(0)
		assert.NoError(t, EncodeField(p, f, v))
		body, _ := p.Finish()
		u := NewBitUnpacker(body)
		got, err := DecodeField(u, f)
		assert.NoError(t, err)
		assert.InDelta(t, v, got.(float64), 0.5*0.01)
	})
}
