// Package lindel is the Go-native convenience surface over this
// module's descriptor and batch layers: HilbertEncode, MortonEncode, and
// their Decode counterparts operate on plain Go slices instead of the
// tuple-major byte buffers package batch exposes for a columnar host.
//
// These are the Go equivalent of the SQL hilbert_encode/morton_encode/
// hilbert_decode/morton_decode scalar functions described in spec.md
// §6: same descriptor bind, same error taxonomy, memoized through
// internal/cache the same way a host would memoize per-expression
// binds, with the byte buffers of each single-row batch call borrowed
// from internal/pool. A call still allocates small per-lane []uint64
// slices besides the value it returns.
package lindel

import (
	"fmt"

	"github.com/arloliu/lindel/batch"
	"github.com/arloliu/lindel/descriptor"
	"github.com/arloliu/lindel/endian"
	"github.com/arloliu/lindel/errs"
	"github.com/arloliu/lindel/internal/cache"
	"github.com/arloliu/lindel/internal/pool"
	"github.com/arloliu/lindel/internal/word"
	"github.com/arloliu/lindel/lane"
)

var engine = endian.GetLittleEndianEngine()

var (
	encodeCache = cache.New[*descriptor.Descriptor]()
	decodeCache = cache.New[*descriptor.Descriptor]()
)

func bindEncode(kind descriptor.Kind, w, n uint, repr lane.Repr) (*descriptor.Descriptor, error) {
	key := cache.Key{Kind: uint8(kind), Direction: uint8(descriptor.ENCODE), LaneWidth: w, LaneCount: n, ElementRepr: uint8(repr)}
	if d, ok := encodeCache.Get(key); ok {
		return d, nil
	}

	d, err := descriptor.EncodeBind(kind, w, n, repr)
	if err != nil {
		return nil, err
	}

	encodeCache.Put(key, d)

	return d, nil
}

func bindDecode(kind descriptor.Kind, c, n uint, returnFloat, returnUnsigned bool) (*descriptor.Descriptor, error) {
	key := cache.Key{Kind: uint8(kind), Direction: uint8(descriptor.DECODE), CodeWidth: c, LaneCount: n, ReturnFloat: returnFloat, ReturnUnsigned: returnUnsigned}
	if d, ok := decodeCache.Get(key); ok {
		return d, nil
	}

	d, err := descriptor.DecodeBind(kind, c, n, returnFloat, returnUnsigned)
	if err != nil {
		return nil, err
	}

	decodeCache.Put(key, d)

	return d, nil
}

// HilbertEncode linearizes an unsigned-integer tuple through the
// Hilbert curve.
func HilbertEncode[T lane.Unsigned](tuple []T) (word.Word128, error) {
	return encodeUnsigned[T](descriptor.HILBERT, tuple)
}

// MortonEncode linearizes an unsigned-integer tuple through the Morton
// (Z-order) curve.
func MortonEncode[T lane.Unsigned](tuple []T) (word.Word128, error) {
	return encodeUnsigned[T](descriptor.MORTON, tuple)
}

// HilbertEncodeSigned linearizes a signed-integer tuple through the
// Hilbert curve.
func HilbertEncodeSigned[T lane.Signed](tuple []T) (word.Word128, error) {
	return encodeSigned[T](descriptor.HILBERT, tuple)
}

// MortonEncodeSigned linearizes a signed-integer tuple through the
// Morton curve.
func MortonEncodeSigned[T lane.Signed](tuple []T) (word.Word128, error) {
	return encodeSigned[T](descriptor.MORTON, tuple)
}

// HilbertEncodeFloat linearizes a floating-point tuple through the
// Hilbert curve.
func HilbertEncodeFloat[T lane.Float](tuple []T) (word.Word128, error) {
	return encodeFloat[T](descriptor.HILBERT, tuple)
}

// MortonEncodeFloat linearizes a floating-point tuple through the
// Morton curve.
func MortonEncodeFloat[T lane.Float](tuple []T) (word.Word128, error) {
	return encodeFloat[T](descriptor.MORTON, tuple)
}

// HilbertDecode recovers an unsigned-integer tuple of n lanes from a
// Hilbert index.
func HilbertDecode[T lane.Unsigned](code word.Word128, n int) ([]T, error) {
	return decodeUnsigned[T](descriptor.HILBERT, code, n)
}

// MortonDecode recovers an unsigned-integer tuple of n lanes from a
// Morton index.
func MortonDecode[T lane.Unsigned](code word.Word128, n int) ([]T, error) {
	return decodeUnsigned[T](descriptor.MORTON, code, n)
}

// HilbertDecodeSigned recovers a signed-integer tuple of n lanes from a
// Hilbert index.
func HilbertDecodeSigned[T lane.Signed](code word.Word128, n int) ([]T, error) {
	return decodeSigned[T](descriptor.HILBERT, code, n)
}

// MortonDecodeSigned recovers a signed-integer tuple of n lanes from a
// Morton index.
func MortonDecodeSigned[T lane.Signed](code word.Word128, n int) ([]T, error) {
	return decodeSigned[T](descriptor.MORTON, code, n)
}

// HilbertDecodeFloat recovers a floating-point tuple of n lanes from a
// Hilbert index.
func HilbertDecodeFloat[T lane.Float](code word.Word128, n int) ([]T, error) {
	return decodeFloat[T](descriptor.HILBERT, code, n)
}

// MortonDecodeFloat recovers a floating-point tuple of n lanes from a
// Morton index.
func MortonDecodeFloat[T lane.Float](code word.Word128, n int) ([]T, error) {
	return decodeFloat[T](descriptor.MORTON, code, n)
}

func encodeUnsigned[T lane.Unsigned](kind descriptor.Kind, tuple []T) (word.Word128, error) {
	w := lane.WidthOfUnsigned[T]()

	d, err := bindEncode(kind, w, uint(len(tuple)), lane.UINT)
	if err != nil {
		return word.Word128{}, err
	}

	bits := make([]uint64, len(tuple))
	for i, v := range tuple {
		bits[i] = lane.BitsFromUnsigned(v)
	}

	return encodeTuple(d, bits)
}

func encodeSigned[T lane.Signed](kind descriptor.Kind, tuple []T) (word.Word128, error) {
	w := lane.WidthOfSigned[T]()

	d, err := bindEncode(kind, w, uint(len(tuple)), lane.SINT)
	if err != nil {
		return word.Word128{}, err
	}

	bits := make([]uint64, len(tuple))
	for i, v := range tuple {
		bits[i] = lane.BitsFromSigned(v)
	}

	return encodeTuple(d, bits)
}

func encodeFloat[T lane.Float](kind descriptor.Kind, tuple []T) (word.Word128, error) {
	w := lane.WidthOfFloat[T]()

	d, err := bindEncode(kind, w, uint(len(tuple)), lane.FLOAT)
	if err != nil {
		return word.Word128{}, err
	}

	bits := make([]uint64, len(tuple))
	for i, v := range tuple {
		bits[i] = lane.BitsFromFloat(v)
	}

	return encodeTuple(d, bits)
}

func decodeUnsigned[T lane.Unsigned](kind descriptor.Kind, code word.Word128, n int) ([]T, error) {
	w := lane.WidthOfUnsigned[T]()

	c, ok := descriptor.CodeWidth(w, uint(n))
	if !ok {
		return nil, fmt.Errorf("%w: %s_decode: unsupported (width=%d, count=%d)", errs.ErrDomain, kind, w, n)
	}

	d, err := bindDecode(kind, c, uint(n), false, true)
	if err != nil {
		return nil, err
	}

	bits, err := decodeTuple(d, code)
	if err != nil {
		return nil, err
	}

	out := make([]T, n)
	for i, b := range bits {
		out[i] = lane.UnsignedFromBits[T](b)
	}

	return out, nil
}

func decodeSigned[T lane.Signed](kind descriptor.Kind, code word.Word128, n int) ([]T, error) {
	w := lane.WidthOfSigned[T]()

	c, ok := descriptor.CodeWidth(w, uint(n))
	if !ok {
		return nil, fmt.Errorf("%w: %s_decode: unsupported (width=%d, count=%d)", errs.ErrDomain, kind, w, n)
	}

	d, err := bindDecode(kind, c, uint(n), false, false)
	if err != nil {
		return nil, err
	}

	bits, err := decodeTuple(d, code)
	if err != nil {
		return nil, err
	}

	out := make([]T, n)
	for i, b := range bits {
		out[i] = lane.SignedFromBits[T](b)
	}

	return out, nil
}

func decodeFloat[T lane.Float](kind descriptor.Kind, code word.Word128, n int) ([]T, error) {
	w := lane.WidthOfFloat[T]()

	c, ok := descriptor.CodeWidth(w, uint(n))
	if !ok {
		return nil, fmt.Errorf("%w: %s_decode: unsupported (width=%d, count=%d)", errs.ErrDomain, kind, w, n)
	}

	d, err := bindDecode(kind, c, uint(n), true, false)
	if err != nil {
		return nil, err
	}

	bits, err := decodeTuple(d, code)
	if err != nil {
		return nil, err
	}

	out := make([]T, n)
	for i, b := range bits {
		out[i] = lane.FloatFromBits[T](b)
	}

	return out, nil
}

func widthBytes(w uint) int {
	return int(w / 8)
}

// encodeTuple drives a single-row batch through package batch: bits
// holds one raw (un-promoted) bit pattern per lane, already truncated to
// d.LaneWidth.
func encodeTuple(d *descriptor.Descriptor, bits []uint64) (word.Word128, error) {
	laneBytes := widthBytes(d.LaneWidth)

	lanesBuf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(lanesBuf)
	lanesBuf.ExtendOrGrow(len(bits) * laneBytes)

	buf := lanesBuf.Bytes()
	for i, v := range bits {
		putWidth(buf[i*laneBytes:], d.LaneWidth, v)
	}

	outBuf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(outBuf)
	outBuf.ExtendOrGrow(widthBytes(d.CodeWidth))

	out := outBuf.Bytes()
	if err := batch.Encode(d, engine, buf, nil, nil, 1, out, nil, nil); err != nil {
		return word.Word128{}, err
	}

	return readWord(out, d.CodeWidth), nil
}

// decodeTuple drives a single-row batch through package batch and
// returns the raw (un-demoted) bit pattern of each lane.
func decodeTuple(d *descriptor.Descriptor, z word.Word128) ([]uint64, error) {
	codeBuf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(codeBuf)
	codeBuf.ExtendOrGrow(widthBytes(d.CodeWidth))
	putWord(codeBuf.Bytes(), d.CodeWidth, z)

	laneBytes := widthBytes(d.LaneWidth)

	lanesBuf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(lanesBuf)
	lanesBuf.ExtendOrGrow(int(d.LaneCount) * laneBytes)

	out := lanesBuf.Bytes()
	if err := batch.Decode(d, engine, codeBuf.Bytes(), nil, 1, out, nil, nil); err != nil {
		return nil, err
	}

	bits := make([]uint64, d.LaneCount)
	for i := range bits {
		bits[i] = readWidth(out[i*laneBytes:], d.LaneWidth)
	}

	return bits, nil
}

func putWidth(buf []byte, w uint, v uint64) {
	switch w {
	case 8:
		buf[0] = byte(v)
	case 16:
		engine.PutUint16(buf, uint16(v))
	case 32:
		engine.PutUint32(buf, uint32(v))
	case 64:
		engine.PutUint64(buf, v)
	default:
		panic(fmt.Sprintf("lindel: unsupported lane width %d", w))
	}
}

func readWidth(buf []byte, w uint) uint64 {
	switch w {
	case 8:
		return uint64(buf[0])
	case 16:
		return uint64(engine.Uint16(buf))
	case 32:
		return uint64(engine.Uint32(buf))
	case 64:
		return engine.Uint64(buf)
	default:
		panic(fmt.Sprintf("lindel: unsupported lane width %d", w))
	}
}

func readWord(buf []byte, c uint) word.Word128 {
	switch c {
	case 8:
		return word.FromUint64(uint64(buf[0]))
	case 16:
		return word.FromUint64(uint64(engine.Uint16(buf)))
	case 32:
		return word.FromUint64(uint64(engine.Uint32(buf)))
	case 64:
		return word.FromUint64(engine.Uint64(buf))
	case 128:
		return word.Word128{Lo: engine.Uint64(buf), Hi: engine.Uint64(buf[8:])}
	default:
		panic(fmt.Sprintf("lindel: unsupported code width %d", c))
	}
}

func putWord(buf []byte, c uint, z word.Word128) {
	switch c {
	case 8:
		buf[0] = byte(z.Lo)
	case 16:
		engine.PutUint16(buf, uint16(z.Lo))
	case 32:
		engine.PutUint32(buf, uint32(z.Lo))
	case 64:
		engine.PutUint64(buf, z.Lo)
	case 128:
		engine.PutUint64(buf, z.Lo)
		engine.PutUint64(buf[8:], z.Hi)
	default:
		panic(fmt.Sprintf("lindel: unsupported code width %d", c))
	}
}
