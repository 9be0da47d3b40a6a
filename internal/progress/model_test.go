package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGpsCoordinate(t *testing.T) {
	lat, ok := DecodeGpsCoordinate("198765432")
	require.True(t, ok)
	assert.InDelta(t, 19.8765432, lat, 0.0000001)

	lat, ok = DecodeGpsCoordinate("198765432")
	require.True(t, ok)
	assert.Positive(t, lat)
}

func TestDecodeGpsCoordinateNegativa(t *testing.T) {
	lat, ok := DecodeGpsCoordinate("219876543")
	require.True(t, ok)
	assert.InDelta(t, -21.9876543, lat, 0.0000001)

	lon, ok := DecodeGpsCoordinate("438123456")
	require.True(t, ok)
	assert.InDelta(t, 43.8123456, lon, 0.0000001)

	lon, ok = DecodeGpsCoordinate("312345678")
	require.True(t, ok)
	assert.InDelta(t, -31.2345678, lon, 0.0000001)
}

func TestDecodeGpsCoordinateInvalida(t *testing.T) {
	_, ok := DecodeGpsCoordinate("")
	assert.False(t, ok)

	_, ok = DecodeGpsCoordinate("0")
	assert.False(t, ok)

	_, ok = DecodeGpsCoordinate("abc")
	assert.False(t, ok)
}
