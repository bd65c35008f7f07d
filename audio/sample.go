// Package audio provides the planar multi-channel sample buffer every
// codec decoder writes its output into, the sample type family spec §3
// defines, and dithered conversion between them.
package audio

import "math"

// Sample is the set of sample types AudioBuffer may be instantiated over.
// Spec §3 names ten members of the family including 24-bit integers; Go has
// no native 24-bit type, and every decoder in this module that handles
// 24-bit-ish depths (FLAC's 20/24-bit subframes) already normalizes into
// the common 32-bit fixed-point representation spec §4.3 describes, so the
// 24-bit members collapse onto int32/uint32 here.
type Sample interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~float32 | ~float64
}

// kind identifies one of the eight Go-native members at runtime, used to
// drive the shift/scale rules of FromSample without per-pair specializations.
type kind uint8

const (
	kU8 kind = iota
	kI8
	kU16
	kI16
	kU32
	kI32
	kF32
	kF64
)

type descriptor struct {
	bits     uint
	unsigned bool
	float    bool
}

var descriptors = [...]descriptor{
	kU8:  {bits: 8, unsigned: true},
	kI8:  {bits: 8},
	kU16: {bits: 16, unsigned: true},
	kI16: {bits: 16},
	kU32: {bits: 32, unsigned: true},
	kI32: {bits: 32},
	kF32: {float: true},
	kF64: {float: true},
}

func kindOf[S Sample]() kind {
	var zero S
	switch any(zero).(type) {
	case uint8:
		return kU8
	case int8:
		return kI8
	case uint16:
		return kU16
	case int16:
		return kI16
	case uint32:
		return kU32
	case int32:
		return kI32
	case float32:
		return kF32
	default:
		return kF64
	}
}

// Mid returns the silence value for S: zero for signed and float types, the
// half-range midpoint for unsigned types.
func Mid[S Sample]() S {
	k := kindOf[S]()
	d := descriptors[k]
	if d.float || !d.unsigned {
		return S(0)
	}
	return fromSignedCentered[S](0)
}

// toSignedCentered reinterprets v (of kind k) as a value centered at zero,
// regardless of the original type's signedness: unsigned values have their
// midpoint subtracted.
func toSignedCentered(v any, k kind) int64 {
	d := descriptors[k]
	switch vv := v.(type) {
	case uint8:
		return int64(vv) - 1<<(d.bits-1)
	case int8:
		return int64(vv)
	case uint16:
		return int64(vv) - 1<<(d.bits-1)
	case int16:
		return int64(vv)
	case uint32:
		return int64(vv) - 1<<(d.bits-1)
	case int32:
		return int64(vv)
	}
	return 0
}

func fromSignedCentered[S Sample](c int64) S {
	k := kindOf[S]()
	d := descriptors[k]
	var zero S
	switch any(zero).(type) {
	case uint8:
		return S(uint8(clampI64(c+1<<(d.bits-1), 0, 1<<d.bits-1)))
	case int8:
		return S(int8(clampI64(c, -1<<(d.bits-1), 1<<(d.bits-1)-1)))
	case uint16:
		return S(uint16(clampI64(c+1<<(d.bits-1), 0, 1<<d.bits-1)))
	case int16:
		return S(int16(clampI64(c, -1<<(d.bits-1), 1<<(d.bits-1)-1)))
	case uint32:
		return S(uint32(clampI64(c+1<<(d.bits-1), 0, 1<<d.bits-1)))
	case int32:
		return S(int32(clampI64(c, -1<<(d.bits-1), 1<<(d.bits-1)-1)))
	}
	return zero
}

func clampI64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toFloat64 maps any sample to a [-1,1]-normalized float64, centered at
// zero regardless of source signedness.
func toFloat64[S Sample](v S) float64 {
	k := kindOf[S]()
	d := descriptors[k]
	if d.float {
		switch vv := any(v).(type) {
		case float32:
			return float64(vv)
		case float64:
			return vv
		}
	}
	c := toSignedCentered(any(v), k)
	return float64(c) / float64(int64(1)<<(d.bits-1))
}

func fromFloat64[S Sample](f float64) S {
	k := kindOf[S]()
	d := descriptors[k]
	if d.float {
		var zero S
		switch any(zero).(type) {
		case float32:
			return S(float32(f))
		default:
			return S(f)
		}
	}
	scale := float64(int64(1) << (d.bits - 1))
	r := int64(math.Round(f * scale))
	max := int64(1)<<(d.bits-1) - 1
	min := -(int64(1) << (d.bits - 1))
	r = clampI64(r, min, max)
	return fromSignedCentered[S](r)
}

// FromSample converts a sample of type F to type T, the total function
// described in spec §3: widening integer conversions shift left, narrowing
// conversions shift right arithmetically (both expressed here as a
// zero-centered integer re-basing), and any conversion touching a float
// type goes through the MID-relative [-1,1] scaling factor 2^(bits-1).
func FromSample[F, T Sample](f F) T {
	fk, tk := kindOf[F](), kindOf[T]()
	fd, td := descriptors[fk], descriptors[tk]

	if fd.float || td.float {
		return fromFloat64[T](toFloat64(f))
	}

	c := toSignedCentered(any(f), fk)
	if td.bits > fd.bits {
		c <<= td.bits - fd.bits
	} else if td.bits < fd.bits {
		c >>= fd.bits - td.bits
	}
	return fromSignedCentered[T](c)
}
