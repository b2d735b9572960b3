package uwacodec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode2EmptyBodyScenario(t *testing.T) {
	m, err := NewMessageDescriptor(42, 0, nil)
	require.NoError(t, err)

	wire, err := EncodeMessage(ModeSelfDescribing, m, nil, RoutingHeader{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2A}, wire)

	decoded, err := DecodeSelfDescribing(m, wire)
	require.NoError(t, err)
	assert.Equal(t, 42, decoded.ID)
	assert.Empty(t, decoded.Values)
}

func TestMode2ContinuationFlagScenario(t *testing.T) {
	m, err := NewMessageDescriptor(200, 0, nil)
	require.NoError(t, err)

	wire, err := EncodeMessage(ModeSelfDescribing, m, nil, RoutingHeader{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(wire, []byte{0x80, 0xC8}))
}

func TestMode3RoutedScenario(t *testing.T) {
	m, err := NewMessageDescriptor(10, 0, nil)
	require.NoError(t, err)

	routing := RoutingHeader{SourceID: 3, DestID: 0, Priority: 2, AckRequested: true}
	wire, err := EncodeMessage(ModeRouted, m, nil, routing)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x00, 0xA0, 0x0A}, wire)

	decoded, err := DecodeRouted(m, wire)
	require.NoError(t, err)
	assert.Equal(t, 10, decoded.ID)
	assert.Equal(t, routing, decoded.Routing)
}

func TestModePrefixIndependence(t *testing.T) {
	f, err := NewUIntField("v", 0, 255)
	require.NoError(t, err)
	m, err := NewMessageDescriptor(5, 0, []FieldDescriptor{f})
	require.NoError(t, err)

	values := []any{int64(199)}

	mode1, err := EncodeMessage(ModePointToPoint, m, values, RoutingHeader{})
	require.NoError(t, err)

	mode2, err := EncodeMessage(ModeSelfDescribing, m, values, RoutingHeader{})
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(mode2, mode1))

	routing := RoutingHeader{SourceID: 1, DestID: 2, Priority: 1}
	mode3, err := EncodeMessage(ModeRouted, m, values, routing)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(mode3, mode1))
}

func TestRoutingHeaderReservedBitsIgnoredOnDecode(t *testing.T) {
	h := RoutingHeader{SourceID: 9, DestID: 8, Priority: 3, AckRequested: false}
	enc := h.Encode()
	enc[2] |= 0x1F // set reserved bits, must be ignored on decode

	decoded, err := DecodeRoutingHeader(enc)
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
}
