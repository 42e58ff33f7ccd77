// Package descriptor implements the binding phase of spec.md §4.4: it
// classifies an incoming (kind, lane width, lane count, representation)
// call, derives the output code-word width, validates admissibility, and
// produces an immutable Descriptor ready for the batch driver.
//
// Grounded on section/numeric_flag.go's pattern of a packed descriptor
// validated at construction time against table-driven valid-value sets.
package descriptor

import (
	"fmt"

	"github.com/arloliu/lindel/errs"
	"github.com/arloliu/lindel/lane"
)

// Kind selects the space-filling curve.
type Kind uint8

const (
	HILBERT Kind = iota
	MORTON
)

func (k Kind) String() string {
	switch k {
	case HILBERT:
		return "hilbert"
	case MORTON:
		return "morton"
	default:
		return "unknown"
	}
}

// Direction selects the call's operation.
type Direction uint8

const (
	ENCODE Direction = iota
	DECODE
)

func (d Direction) String() string {
	if d == ENCODE {
		return "encode"
	}

	return "decode"
}

// state is the descriptor's one-way bind state machine (spec.md §4.4).
type state uint8

const (
	unbound state = iota
	bound
)

// Descriptor fully parameterises a call (spec.md §3). It is immutable
// once EncodeBind or DecodeBind has returned successfully.
type Descriptor struct {
	Kind           Kind
	Direction      Direction
	LaneWidth      uint // W
	LaneCount      uint // N
	ElementRepr    lane.Repr
	ReturnFloat    bool
	ReturnUnsigned bool
	CodeWidth      uint // C

	state state
}

// encodeTable maps (W, N) to the code-word width C, spec.md §4.4.
var encodeTable = map[uint]map[uint]uint{
	8:  {1: 8, 2: 16, 3: 32, 4: 32, 5: 64, 6: 64, 7: 64, 8: 64, 9: 128, 10: 128, 11: 128, 12: 128, 13: 128, 14: 128, 15: 128, 16: 128},
	16: {1: 16, 2: 32, 3: 64, 4: 64, 5: 128, 6: 128, 7: 128, 8: 128},
	32: {1: 32, 2: 64, 3: 128, 4: 128},
	64: {1: 64, 2: 128},
}

// floatLegal is the set of (W, N) pairs for which DECODE with
// return_float=true is admissible, spec.md §4.4.
var floatLegal = map[[2]uint]bool{
	{32, 1}: true, {32, 2}: true, {32, 3}: true, {32, 4}: true,
	{64, 1}: true, {64, 2}: true,
}

// CodeWidth returns the code-word width C for (W, N), or false if the
// combination is outside the §4.4 table.
func CodeWidth(w, n uint) (uint, bool) {
	row, ok := encodeTable[w]
	if !ok {
		return 0, false
	}

	c, ok := row[n]

	return c, ok
}

// laneWidthFor inverts CodeWidth: given (C, N), finds the W whose
// encode-table entry produces C. The "W = C/N rounded up" wording in
// spec.md §4.4 is only approximate (it does not hold when N does not
// divide C evenly, e.g. W=8,N=3 gives C=32, not the 16 naive division
// would suggest) — the encode table is the precise source of truth in
// both directions, so decode-bind inverts it rather than computing a
// quotient.
func laneWidthFor(c, n uint) (uint, bool) {
	for _, w := range [...]uint{8, 16, 32, 64} {
		if cw, ok := CodeWidth(w, n); ok && cw == c {
			return w, true
		}
	}

	return 0, false
}

// EncodeBind validates and constructs a Descriptor for an ENCODE call.
func EncodeBind(kind Kind, w, n uint, repr lane.Repr) (*Descriptor, error) {
	if kind != HILBERT && kind != MORTON {
		return nil, fmt.Errorf("%w: encode: unknown codec kind %d", errs.ErrDomain, uint8(kind))
	}

	if n < 1 || n > 16 {
		return nil, fmt.Errorf("%w: %s_encode: lane count %d out of range 1..16", errs.ErrDomain, kind, n)
	}

	c, ok := CodeWidth(w, n)
	if !ok {
		return nil, fmt.Errorf("%w: %s_encode: unsupported (width=%d, count=%d)", errs.ErrDomain, kind, w, n)
	}

	return &Descriptor{
		Kind:        kind,
		Direction:   ENCODE,
		LaneWidth:   w,
		LaneCount:   n,
		ElementRepr: repr,
		CodeWidth:   c,
		state:       bound,
	}, nil
}

// DecodeBind validates and constructs a Descriptor for a DECODE call.
//
// codeWidth is C, the width of the encoded value being decoded. n is the
// number of lanes requested. returnFloat/returnUnsigned select the
// output representation per spec.md §4.4.
func DecodeBind(kind Kind, codeWidth, n uint, returnFloat, returnUnsigned bool) (*Descriptor, error) {
	if kind != HILBERT && kind != MORTON {
		return nil, fmt.Errorf("%w: decode: unknown codec kind %d", errs.ErrDomain, uint8(kind))
	}

	if n < 1 || n > 16 {
		return nil, fmt.Errorf("%w: %s_decode: lane count %d out of range 1..16", errs.ErrDomain, kind, n)
	}

	w, ok := laneWidthFor(codeWidth, n)
	if !ok {
		return nil, fmt.Errorf("%w: %s_decode: unsupported (code_width=%d, count=%d)", errs.ErrDomain, kind, codeWidth, n)
	}

	repr := lane.UINT
	if returnFloat {
		if !floatLegal[[2]uint{w, n}] {
			return nil, fmt.Errorf("%w: %s_decode: return_float requires one of the float-legal (width,count) pairs, got (%d,%d)", errs.ErrDomain, kind, w, n)
		}

		if w != 32 && w != 64 {
			return nil, fmt.Errorf("%w: %s_decode: return_float requires width 32 or 64, got %d", errs.ErrDomain, kind, w)
		}

		repr = lane.FLOAT
	} else if returnUnsigned {
		repr = lane.UINT
	} else {
		repr = lane.SINT
	}

	return &Descriptor{
		Kind:           kind,
		Direction:      DECODE,
		LaneWidth:      w,
		LaneCount:      n,
		ElementRepr:    repr,
		ReturnFloat:    returnFloat,
		ReturnUnsigned: returnUnsigned,
		CodeWidth:      codeWidth,
		state:          bound,
	}, nil
}

// Bound reports whether d has completed the bind state transition.
func (d *Descriptor) Bound() bool {
	return d != nil && d.state == bound
}
