// Package geom holds the small amount of vector math shared by the
// topology and mesh generators. Vectors are sdfx v3.Vec values so that
// generated geometry can be handed to the sdfx renderers without copying.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"golang.org/x/exp/constraints"
)

// Epsilon is the squared length below which a direction is treated as zero.
const Epsilon = 1e-10

var (
	Zero    = v3.Vec{}
	Up      = v3.Vec{X: 0, Y: 1, Z: 0}
	Forward = v3.Vec{X: 0, Y: 0, Z: 1}
	Right   = v3.Vec{X: 1, Y: 0, Z: 0}
)

// Clamp limits f to the closed range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Clamp01 limits f to [0, 1].
func Clamp01(f float64) float64 {
	return Clamp(f, 0, 1)
}

// Lerp interpolates between a and b with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = Clamp01(t)
	return a + (b-a)*t
}

// LerpVec interpolates between a and b with t clamped to [0, 1].
func LerpVec(a, b v3.Vec, t float64) v3.Vec {
	t = Clamp01(t)
	return v3.Vec{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b v3.Vec) v3.Vec {
	return a.Add(b).MulScalar(0.5)
}

// Distance returns |a - b|.
func Distance(a, b v3.Vec) float64 {
	return a.Sub(b).Length()
}

// Normalized returns v scaled to unit length. ok is false when v is too
// short to carry a direction, in which case the zero vector is returned.
func Normalized(v v3.Vec) (n v3.Vec, ok bool) {
	l2 := v.Dot(v)
	if l2 < Epsilon {
		return Zero, false
	}
	return v.MulScalar(1 / math.Sqrt(l2)), true
}

// NormalizedOr returns the unit direction of v, or fallback when v is
// degenerate.
func NormalizedOr(v, fallback v3.Vec) v3.Vec {
	if n, ok := Normalized(v); ok {
		return n
	}
	return fallback
}

// Float32s appends the components of v to dst as float32.
func Float32s(dst []float32, v v3.Vec) []float32 {
	return append(dst, float32(v.X), float32(v.Y), float32(v.Z))
}

// At reads the i-th xyz triple of a flat float32 buffer.
func At(buf []float32, i int) v3.Vec {
	return v3.Vec{
		X: float64(buf[i*3]),
		Y: float64(buf[i*3+1]),
		Z: float64(buf[i*3+2]),
	}
}
