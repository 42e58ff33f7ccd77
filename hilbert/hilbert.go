// Package hilbert implements the generalized N-dimensional Hilbert curve
// codec described in John Skilling's "Programming the Hilbert Curve"
// (AIP Conference Proceedings 707, 2004): ENCODE maps a point to its
// index along the curve by transforming the point's coordinates into
// "transpose" form (axesToTranspose) and then packing that form with
// the exact bit layout Morton uses (spec.md §4.3: "producing the same
// bit layout as Morton after a sequence of gray-decoding and axis-
// rotation passes"). DECODE reverses both steps.
package hilbert

import (
	"github.com/arloliu/lindel/internal/word"
	"github.com/arloliu/lindel/morton"
)

// Encode maps n axis coordinates (each truncated to its low w bits) to
// their Hilbert index.
func Encode(axes []uint64, w uint) word.Word128 {
	x := append([]uint64(nil), axes...)
	axesToTranspose(x, w)

	return morton.Encode(x, w)
}

// Decode maps a Hilbert index back to its n axis coordinates of w bits
// each. It is the exact inverse of Encode.
func Decode(z word.Word128, w, n uint) []uint64 {
	x := morton.Decode(z, w, n)
	transposeToAxes(x, w)

	return x
}

// axesToTranspose mutates x in place from axis coordinates into Skilling's
// transpose form.
func axesToTranspose(x []uint64, b uint) {
	n := len(x)
	m := uint64(1) << (b - 1)

	// Inverse undo.
	for q := m; q > 1; q >>= 1 {
		p := q - 1
		for i := 0; i < n; i++ {
			if x[i]&q != 0 {
				x[0] ^= p
			} else {
				t := (x[0] ^ x[i]) & p
				x[0] ^= t
				x[i] ^= t
			}
		}
	}

	// Gray encode.
	for i := 1; i < n; i++ {
		x[i] ^= x[i-1]
	}

	var t uint64
	for q := m; q > 1; q >>= 1 {
		if x[n-1]&q != 0 {
			t ^= q - 1
		}
	}
	for i := 0; i < n; i++ {
		x[i] ^= t
	}
}

// transposeToAxes inverts axesToTranspose in place.
func transposeToAxes(x []uint64, b uint) {
	n := len(x)
	nn := uint64(2) << (b - 1)

	// Gray decode by H ^ (H/2).
	t := x[n-1] >> 1
	for i := n - 1; i > 0; i-- {
		x[i] ^= x[i-1]
	}
	x[0] ^= t

	// Undo excess work.
	for q := uint64(2); q != nn; q <<= 1 {
		p := q - 1
		for i := n - 1; i >= 0; i-- {
			if x[i]&q != 0 {
				x[0] ^= p
			} else {
				t := (x[0] ^ x[i]) & p
				x[0] ^= t
				x[i] ^= t
			}
		}
	}
}
