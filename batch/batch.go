// Package batch implements the vectorized entry points of spec.md §6:
// encode(kind, lanes_buf, W, N, out_buf) and decode(kind, W, code_buf, C,
// N, lanes_buf), operating directly on tuple-major []byte buffers the way
// a columnar host would hand them in. It iterates the batch one row at a
// time, promoting/demoting lanes and invoking the selected codec, the
// same shape as blob/numeric_encoder.go's and
// blob/numeric_decoder.go's iterate-validate-write loops.
package batch

import (
	"errors"
	"fmt"

	"github.com/arloliu/lindel/descriptor"
	"github.com/arloliu/lindel/endian"
	"github.com/arloliu/lindel/errs"
	"github.com/arloliu/lindel/hilbert"
	"github.com/arloliu/lindel/internal/options"
	"github.com/arloliu/lindel/internal/word"
	"github.com/arloliu/lindel/lane"
	"github.com/arloliu/lindel/morton"
)

// NullPolicy selects how Encode reacts to a null lane inside an
// otherwise non-null row. spec.md §9 leaves this open ("a row-local
// policy ... is a plausible alternative; implementations must pick one
// and document it"); this module picks AbortBatch as the default,
// matching the panic/throw-on-first-null-lane behavior observed in the
// original lindel source.
type NullPolicy uint8

const (
	// AbortBatch raises errs.ErrInput on the first null lane found and
	// stops the batch; rows already written remain valid.
	AbortBatch NullPolicy = iota
	// NullRow marks only the offending row's output null and continues
	// with the remaining rows.
	NullRow
)

// ErrInterrupted is returned by Encode/Decode when Config.Interrupt
// reports true mid-batch. It is distinct from the errs sentinels: it
// signals caller-driven cancellation, not a codec or descriptor fault.
var ErrInterrupted = errors.New("batch: interrupted")

// Config configures a single Encode or Decode call.
type Config struct {
	NullPolicy NullPolicy
	// Interrupt, if set, is checked once per row; Encode/Decode return
	// ErrInterrupted the first time it reports true.
	Interrupt func() bool
}

func defaultConfig() *Config {
	return &Config{NullPolicy: AbortBatch}
}

// Option configures a Config via internal/options.
type Option = options.Option[*Config]

// WithNullPolicy selects the null-lane handling policy.
func WithNullPolicy(p NullPolicy) Option {
	return options.NoError[*Config](func(c *Config) { c.NullPolicy = p })
}

// WithInterrupt installs a cooperative cancellation check.
func WithInterrupt(fn func() bool) Option {
	return options.NoError[*Config](func(c *Config) { c.Interrupt = fn })
}

// NewConfig builds a Config from opts, defaulting NullPolicy to
// AbortBatch.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Encode implements spec.md §6's encode entry point for a single
// vectorized batch. lanesBuf holds batchSize*d.LaneCount lane values of
// d.LaneWidth bits each, tuple-major (row i's N lanes, then row i+1's).
// out must be pre-sized to batchSize code words of d.CodeWidth bits.
//
// rowNull, if non-nil, marks rows whose tuple is wholly null (output
// marked null, row skipped). laneNull, if non-nil, marks individual null
// lanes within an otherwise non-null row; cfg's NullPolicy governs what
// happens next. outNull, if non-nil, receives the per-row null marks for
// out.
func Encode(d *descriptor.Descriptor, engine endian.EndianEngine, lanesBuf []byte, rowNull, laneNull []bool, batchSize int, out []byte, outNull []bool, cfg *Config) error {
	if !d.Bound() || d.Direction != descriptor.ENCODE {
		return fmt.Errorf("%w: batch.Encode: descriptor not bound for encode", errs.ErrInternal)
	}

	if cfg == nil {
		cfg = defaultConfig()
	}

	n := d.LaneCount

	var lanes [16]uint64

	for r := 0; r < batchSize; r++ {
		if cfg.Interrupt != nil && cfg.Interrupt() {
			return ErrInterrupted
		}

		if rowNull != nil && rowNull[r] {
			if outNull != nil {
				outNull[r] = true
			}

			continue
		}

		rowHasNullLane := false

		for j := uint(0); j < n; j++ {
			laneIdx := r*int(n) + int(j)
			if laneNull != nil && laneNull[laneIdx] {
				if cfg.NullPolicy == NullRow {
					rowHasNullLane = true

					break
				}

				return fmt.Errorf("%w: %s_encode: array cannot contain null values, row %d", errs.ErrInput, d.Kind, r)
			}

			bits := readLane(lanesBuf, laneIdx, d.LaneWidth, engine)
			lanes[j] = lane.PromoteBits(bits, d.LaneWidth, d.ElementRepr)
		}

		if rowHasNullLane {
			if outNull != nil {
				outNull[r] = true
			}

			continue
		}

		z, err := encodeTuple(d, lanes[:n])
		if err != nil {
			return err
		}

		writeCodeWord(out, r, d.CodeWidth, z, engine)

		if outNull != nil {
			outNull[r] = false
		}
	}

	return nil
}

// Decode implements spec.md §6's decode entry point. codeBuf holds
// batchSize code words of d.CodeWidth bits. lanesBuf must be pre-sized
// to batchSize*d.LaneCount lane values of d.LaneWidth bits, tuple-major.
//
// rowNull, if non-nil, marks code words that are null (output lanes
// marked null, row skipped). outLaneNull, if non-nil, receives the
// per-lane null marks for lanesBuf.
func Decode(d *descriptor.Descriptor, engine endian.EndianEngine, codeBuf []byte, rowNull []bool, batchSize int, lanesBuf []byte, outLaneNull []bool, cfg *Config) error {
	if !d.Bound() || d.Direction != descriptor.DECODE {
		return fmt.Errorf("%w: batch.Decode: descriptor not bound for decode", errs.ErrInternal)
	}

	if cfg == nil {
		cfg = defaultConfig()
	}

	n := d.LaneCount

	for r := 0; r < batchSize; r++ {
		if cfg.Interrupt != nil && cfg.Interrupt() {
			return ErrInterrupted
		}

		if rowNull != nil && rowNull[r] {
			if outLaneNull != nil {
				for j := uint(0); j < n; j++ {
					outLaneNull[r*int(n)+int(j)] = true
				}
			}

			continue
		}

		z := readCodeWord(codeBuf, r, d.CodeWidth, engine)

		lanes, err := decodeTuple(d, z, n)
		if err != nil {
			return err
		}

		for j := uint(0); j < n; j++ {
			bits := lane.DemoteBits(lanes[j], d.LaneWidth, d.ElementRepr)
			writeLane(lanesBuf, r*int(n)+int(j), d.LaneWidth, bits, engine)

			if outLaneNull != nil {
				outLaneNull[r*int(n)+int(j)] = false
			}
		}
	}

	return nil
}

func encodeTuple(d *descriptor.Descriptor, lanes []uint64) (word.Word128, error) {
	switch d.Kind {
	case descriptor.HILBERT:
		return hilbert.Encode(lanes, d.LaneWidth), nil
	case descriptor.MORTON:
		return morton.Encode(lanes, d.LaneWidth), nil
	default:
		return word.Word128{}, fmt.Errorf("%w: batch: unknown codec kind %s", errs.ErrInternal, d.Kind)
	}
}

func decodeTuple(d *descriptor.Descriptor, z word.Word128, n uint) ([]uint64, error) {
	switch d.Kind {
	case descriptor.HILBERT:
		return hilbert.Decode(z, d.LaneWidth, n), nil
	case descriptor.MORTON:
		return morton.Decode(z, d.LaneWidth, n), nil
	default:
		return nil, fmt.Errorf("%w: batch: unknown codec kind %s", errs.ErrInternal, d.Kind)
	}
}

func widthBytes(w uint) int {
	return int(w / 8)
}

func readLane(buf []byte, idx int, w uint, engine endian.EndianEngine) uint64 {
	off := idx * widthBytes(w)

	switch w {
	case 8:
		return uint64(buf[off])
	case 16:
		return uint64(engine.Uint16(buf[off:]))
	case 32:
		return uint64(engine.Uint32(buf[off:]))
	case 64:
		return engine.Uint64(buf[off:])
	default:
		panic(fmt.Sprintf("batch: unsupported lane width %d", w))
	}
}

func writeLane(buf []byte, idx int, w uint, v uint64, engine endian.EndianEngine) {
	off := idx * widthBytes(w)

	switch w {
	case 8:
		buf[off] = byte(v)
	case 16:
		engine.PutUint16(buf[off:], uint16(v))
	case 32:
		engine.PutUint32(buf[off:], uint32(v))
	case 64:
		engine.PutUint64(buf[off:], v)
	default:
		panic(fmt.Sprintf("batch: unsupported lane width %d", w))
	}
}

func readCodeWord(buf []byte, idx int, c uint, engine endian.EndianEngine) word.Word128 {
	off := idx * widthBytes(c)

	switch c {
	case 8:
		return word.FromUint64(uint64(buf[off]))
	case 16:
		return word.FromUint64(uint64(engine.Uint16(buf[off:])))
	case 32:
		return word.FromUint64(uint64(engine.Uint32(buf[off:])))
	case 64:
		return word.FromUint64(engine.Uint64(buf[off:]))
	case 128:
		if endian.IsLittleEndian(engine) {
			return word.Word128{Lo: engine.Uint64(buf[off:]), Hi: engine.Uint64(buf[off+8:])}
		}

		return word.Word128{Hi: engine.Uint64(buf[off:]), Lo: engine.Uint64(buf[off+8:])}
	default:
		panic(fmt.Sprintf("batch: unsupported code width %d", c))
	}
}

func writeCodeWord(buf []byte, idx int, c uint, z word.Word128, engine endian.EndianEngine) {
	off := idx * widthBytes(c)

	switch c {
	case 8:
		buf[off] = byte(z.Lo)
	case 16:
		engine.PutUint16(buf[off:], uint16(z.Lo))
	case 32:
		engine.PutUint32(buf[off:], uint32(z.Lo))
	case 64:
		engine.PutUint64(buf[off:], z.Lo)
	case 128:
		if endian.IsLittleEndian(engine) {
			engine.PutUint64(buf[off:], z.Lo)
			engine.PutUint64(buf[off+8:], z.Hi)
		} else {
			engine.PutUint64(buf[off:], z.Hi)
			engine.PutUint64(buf[off+8:], z.Lo)
		}
	default:
		panic(fmt.Sprintf("batch: unsupported code width %d", c))
	}
}
