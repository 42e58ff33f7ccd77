package lane

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromoteDemote_RoundTrip_Uint8(t *testing.T) {
	for v := 0; v < 256; v++ {
		bits := uint64(v)
		promoted := PromoteBits(bits, 8, UINT)
		require.Equal(t, bits, DemoteBits(promoted, 8, UINT))
	}
}

func TestPromoteDemote_RoundTrip_Sint8(t *testing.T) {
	for v := -128; v <= 127; v++ {
		bits := BitsFromSigned(int8(v))
		promoted := PromoteBits(bits, 8, SINT)
		demoted := DemoteBits(promoted, 8, SINT)
		require.Equal(t, int8(v), SignedFromBits[int8](demoted))
	}
}

func TestPromote_Sint8_Monotone(t *testing.T) {
	var prev uint64
	for v := -128; v <= 127; v++ {
		got := PromoteBits(BitsFromSigned(int8(v)), 8, SINT)
		if v > -128 {
			require.Less(t, prev, got, "v=%d", v)
		}
		prev = got
	}
}

func TestPromote_Float32_Monotone(t *testing.T) {
	values := []float32{-100.5, -1.0, -0.0, 0.0, 1.0, 3.14, 100.5}
	var prev uint64
	for i, v := range values {
		got := PromoteBits(BitsFromFloat(v), 32, FLOAT)
		if i > 0 && values[i-1] < v {
			require.Less(t, prev, got, "v=%v", v)
		}
		prev = got
	}
}

func TestPromoteDemote_RoundTrip_Float64(t *testing.T) {
	values := []float64{0, 1, -1, 3.14159, -3.14159, math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64}
	for _, v := range values {
		bits := BitsFromFloat(v)
		promoted := PromoteBits(bits, 64, FLOAT)
		demoted := DemoteBits(promoted, 64, FLOAT)
		require.Equal(t, v, FloatFromBits[float64](demoted))
	}
}

func TestPromote_NaN_RoundTrips_ButIsUnordered(t *testing.T) {
	bits := BitsFromFloat(math.NaN())
	promoted := PromoteBits(bits, 64, FLOAT)
	demoted := DemoteBits(promoted, 64, FLOAT)
	require.True(t, math.IsNaN(FloatFromBits[float64](demoted)))
}

func TestWidthOf(t *testing.T) {
	require.EqualValues(t, 8, WidthOfUnsigned[uint8]())
	require.EqualValues(t, 16, WidthOfSigned[int16]())
	require.EqualValues(t, 32, WidthOfFloat[float32]())
	require.EqualValues(t, 64, WidthOfFloat[float64]())
}
