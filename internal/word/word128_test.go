package word

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWord128_LshRsh(t *testing.T) {
	w := FromUint64(1)

	require.Equal(t, Word128{Hi: 1, Lo: 0}, w.Lsh(64))
	require.Equal(t, Word128{Hi: 0, Lo: 1 << 63}, w.Lsh(63))
	require.Equal(t, Word128{}, w.Lsh(128))

	hi := Word128{Hi: 1, Lo: 0}
	require.Equal(t, FromUint64(1), hi.Rsh(64))
	require.Equal(t, Word128{}, hi.Rsh(128))
}

func TestWord128_Bit_SetBit(t *testing.T) {
	w := Word128{}
	w = w.SetBit(0, 1)
	w = w.SetBit(64, 1)
	w = w.SetBit(127, 1)

	require.EqualValues(t, 1, w.Bit(0))
	require.EqualValues(t, 1, w.Bit(64))
	require.EqualValues(t, 1, w.Bit(127))
	require.EqualValues(t, 0, w.Bit(1))

	w = w.SetBit(64, 0)
	require.EqualValues(t, 0, w.Bit(64))
}

func TestWord128_Cmp(t *testing.T) {
	a := FromUint64(5)
	b := FromUint64(9)
	c := Word128{Hi: 1, Lo: 0}

	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 1, b.Cmp(a))
	require.Equal(t, 0, a.Cmp(a))
	require.Equal(t, -1, b.Cmp(c))
}

func TestWord128_Mask(t *testing.T) {
	require.Equal(t, Word128{}, Mask(0))
	require.Equal(t, FromUint64(0xFF), Mask(8))
	require.Equal(t, Word128{Hi: 0, Lo: ^uint64(0)}, Mask(64))
	require.Equal(t, Word128{Hi: 0xF, Lo: ^uint64(0)}, Mask(68))
	require.Equal(t, Word128{Hi: ^uint64(0), Lo: ^uint64(0)}, Mask(128))
}

func TestWord128_BitLen(t *testing.T) {
	require.Equal(t, 0, Word128{}.BitLen())
	require.Equal(t, 1, FromUint64(1).BitLen())
	require.Equal(t, 64, FromUint64(1<<63).BitLen())
	require.Equal(t, 65, Word128{Hi: 1, Lo: 0}.BitLen())
}
