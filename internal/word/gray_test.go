package word

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrayEncode_DecodeRoundTrip(t *testing.T) {
	const w = 8
	for x := uint64(0); x < 1<<w; x++ {
		encoded := GrayEncode(FromUint64(x))
		decoded := GrayDecode(encoded, w)
		require.Equal(t, x, decoded.Lo, "x=%d", x)
	}
}

func TestGrayEncode_KnownValues(t *testing.T) {
	require.EqualValues(t, 0, GrayEncode(FromUint64(0)).Lo)
	require.EqualValues(t, 1, GrayEncode(FromUint64(1)).Lo)
	require.EqualValues(t, 3, GrayEncode(FromUint64(2)).Lo)
	require.EqualValues(t, 2, GrayEncode(FromUint64(3)).Lo)
}

func TestGrayDecode_ZeroesAboveWidth(t *testing.T) {
	decoded := GrayDecode(FromUint64(0xFF), 4)
	require.LessOrEqual(t, decoded.Lo, uint64(0xF))
}
