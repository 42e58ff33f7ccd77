package morton

import (
	"testing"

	"github.com/arloliu/lindel/internal/word"
	"github.com/stretchr/testify/require"
)

func TestEncode_U8Tuple3(t *testing.T) {
	z := Encode([]uint64{1, 2, 3}, 8)
	require.EqualValues(t, 29, z.Lo)
}

func TestEncode_5x5Grid(t *testing.T) {
	want := [5][5]uint64{
		{0, 1, 4, 5, 16},
		{2, 3, 6, 7, 18},
		{8, 9, 12, 13, 24},
		{10, 11, 14, 15, 26},
		{32, 33, 36, 37, 48},
	}

	for a := uint64(0); a < 5; a++ {
		for b := uint64(0); b < 5; b++ {
			z := Encode([]uint64{a, b}, 8)
			require.Equal(t, want[a][b], z.Lo, "a=%d b=%d", a, b)
		}
	}
}

func TestDecode_InvertsEncode(t *testing.T) {
	z := Encode([]uint64{1, 2, 3}, 8)
	lanes := Decode(z, 8, 3)
	require.Equal(t, []uint64{1, 2, 3}, lanes)
}

func TestEncodeDecode_RoundTrip_AllValues_N2W4(t *testing.T) {
	const w = 4
	for a := uint64(0); a < 1<<w; a++ {
		for b := uint64(0); b < 1<<w; b++ {
			z := Encode([]uint64{a, b}, w)
			lanes := Decode(z, w, 2)
			require.Equal(t, []uint64{a, b}, lanes, "a=%d b=%d", a, b)
		}
	}
}

func TestEncode_Bijective_N3W3(t *testing.T) {
	const w = 3
	seen := make(map[word.Word128]bool)
	for a := uint64(0); a < 1<<w; a++ {
		for b := uint64(0); b < 1<<w; b++ {
			for c := uint64(0); c < 1<<w; c++ {
				z := Encode([]uint64{a, b, c}, w)
				require.False(t, seen[z], "collision at a=%d b=%d c=%d -> %v", a, b, c, z)
				seen[z] = true
			}
		}
	}
}

// TestBitLayout verifies the resolved bit-layout property: bit (i*N+j) of
// the code word equals bit i of the tuple's element at index N-1-j (see
// the Encode doc comment for why the tuple is read back-to-front).
func TestBitLayout(t *testing.T) {
	lanes := []uint64{0b101, 0b011, 0b110}
	const w = 3
	n := uint(len(lanes))
	z := Encode(lanes, w)

	for i := uint(0); i < w; i++ {
		for j := uint(0); j < n; j++ {
			want := (lanes[n-1-j] >> i) & 1
			require.Equal(t, want, z.Bit(i*n+j), "i=%d j=%d", i, j)
		}
	}
}
