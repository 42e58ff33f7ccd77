// Package morton implements the Morton (Z-order) codec: bit-interleaving
// ENCODE and deinterleaving DECODE over N lanes of W bits each.
//
// The implementation generalizes the fixed two-lane mask-table technique
// in PDOK/texel's morton package to arbitrary (W, N) by interleaving one
// bit at a time instead of precomputed masks — the mask-table trick does
// not generalize past two lanes without a combinatorial explosion of
// tables, while the bit-at-a-time form is branch-light and stays correct
// for every (W, N) this module supports (N·W ≤ 128).
package morton

import "github.com/arloliu/lindel/internal/word"

// Encode interleaves the bits of lanes (each truncated to its low w bits)
// into a single code word.
//
// The tuple's last element occupies the lowest-order bit of each N-bit
// group, and its first element the highest-order bit of the group — the
// reverse of naive left-to-right array order. This matches the worked
// examples in the specification (e.g. a 3-tuple [1,2,3] of u8 encodes to
// 29, not 53): the fixture values are authoritative where the prose
// description and the examples disagree on which array end is "lane 0".
func Encode(lanes []uint64, w uint) word.Word128 {
	n := uint(len(lanes))

	var z word.Word128
	for i := uint(0); i < w; i++ {
		for j := uint(0); j < n; j++ {
			if (lanes[j]>>i)&1 == 0 {
				continue
			}

			pos := i*n + (n - 1 - j)
			z = z.SetBit(pos, 1)
		}
	}

	return z
}

// Decode deinterleaves a code word produced by Encode into n lanes of w
// bits each. It is the exact inverse of Encode.
func Decode(z word.Word128, w, n uint) []uint64 {
	lanes := make([]uint64, n)
	for i := uint(0); i < w; i++ {
		for j := uint(0); j < n; j++ {
			pos := i*n + (n - 1 - j)
			lanes[j] |= z.Bit(pos) << i
		}
	}

	return lanes
}
