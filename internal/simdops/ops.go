// Package simdops provides SIMD-accelerated batch operations for float32 and
// float64 slices, used where whole recordings of control signals are
// converted or summarised at once.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

var (
	ops32 = Ops[float32]{
		Sum:   f32.Sum,
		Scale: f32.Scale,
	}
	ops64 = Ops[float64]{
		Sum:   f64.Sum,
		Scale: f64.Scale,
	}
)

// For returns the Ops instance for type F.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Normalize converts integer PCM samples to [0, 1] control values, mapping
// the signed full-scale range [-fullScale, fullScale] linearly onto [0, 1].
// dst must be at least as long as src.
func Normalize[F Float](dst []F, src []int, fullScale F) {
	ops := For[F]()
	n := len(src)
	for i, v := range src {
		dst[i] = F(v)
	}
	ops.Scale(dst[:n], dst[:n], 1/(2*fullScale))
	for i := range dst[:n] {
		dst[i] += 0.5
	}
}

// Denormalize converts [0, 1] control values back to signed integer PCM.
// dst must be at least as long as src.
func Denormalize[F Float](dst []int, src []F, fullScale F) {
	for i, v := range src {
		dst[i] = int((v - 0.5) * 2 * fullScale)
	}
}

// Mean returns the arithmetic mean of a, or zero for an empty slice.
func Mean[F Float](a []F) F {
	if len(a) == 0 {
		return 0
	}
	return For[F]().Sum(a) / F(len(a))
}
