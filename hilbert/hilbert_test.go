package hilbert

import (
	"testing"

	"github.com/arloliu/lindel/internal/word"
	"github.com/stretchr/testify/require"
)

func TestEncode_N2_KnownTable(t *testing.T) {
	cases := []struct {
		x, y uint64
		want uint64
	}{
		{0, 0, 0}, {1, 0, 1}, {1, 1, 2}, {0, 1, 3},
		{0, 2, 4}, {0, 3, 5}, {1, 3, 6}, {1, 2, 7},
		{2, 2, 8}, {2, 3, 9}, {3, 3, 10}, {3, 2, 11},
		{3, 1, 12}, {2, 1, 13}, {2, 0, 14}, {3, 0, 15},
	}

	for _, c := range cases {
		z := Encode([]uint64{c.x, c.y}, 8)
		require.Equal(t, c.want, z.Lo, "x=%d y=%d", c.x, c.y)
	}
}

func TestEncode_5x5Grid(t *testing.T) {
	want := [5][5]uint64{
		{0, 3, 4, 5, 58},
		{1, 2, 7, 6, 57},
		{14, 13, 8, 9, 54},
		{15, 12, 11, 10, 53},
		{16, 17, 30, 31, 32},
	}

	for a := uint64(0); a < 5; a++ {
		for b := uint64(0); b < 5; b++ {
			z := Encode([]uint64{a, b}, 8)
			require.Equal(t, want[a][b], z.Lo, "a=%d b=%d", a, b)
		}
	}
}

func TestEncode_U8Tuple3(t *testing.T) {
	z := Encode([]uint64{1, 2, 3}, 8)
	require.EqualValues(t, 22, z.Lo)
}

func TestDecode_U8Tuple3(t *testing.T) {
	lanes := Decode(word.FromUint64(22), 8, 3)
	require.Equal(t, []uint64{1, 2, 3}, lanes)
}

func TestEncodeDecode_RoundTrip_N2W4(t *testing.T) {
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

// TestLocality checks the weak locality property: adjacent Hilbert
// indices decode to tuples differing in exactly one lane by exactly ±1.
func TestLocality(t *testing.T) {
	const w, n = 4, 2
	limit := uint64(1) << (w * n)

	for k := uint64(0); k < limit-1; k++ {
		a := Decode(word.FromUint64(k), w, n)
		b := Decode(word.FromUint64(k+1), w, n)

		diffs := 0
		for i := range a {
			d := int64(b[i]) - int64(a[i])
			if d != 0 {
				diffs++
				require.True(t, d == 1 || d == -1, "k=%d lane %d changed by %d", k, i, d)
			}
		}
		require.Equal(t, 1, diffs, "k=%d a=%v b=%v", k, a, b)
	}
}
