package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min v3.Vec
	Max v3.Vec
}

// EmptyBounds returns an inverted box that any point expands.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: v3.Vec{X: inf, Y: inf, Z: inf},
		Max: v3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Extend grows the box to contain p.
func (b Bounds) Extend(p v3.Vec) Bounds {
	b.Min = v3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = v3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	return b
}

// BoundsOf returns the box around points. An empty slice yields a zero box.
func BoundsOf(points []v3.Vec) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := EmptyBounds()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// Center returns the middle of the box.
func (b Bounds) Center() v3.Vec {
	return Midpoint(b.Min, b.Max)
}

// Size returns the extent along each axis.
func (b Bounds) Size() v3.Vec {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box, allowing tol slack.
func (b Bounds) Contains(p v3.Vec, tol float64) bool {
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol &&
		p.Z >= b.Min.Z-tol && p.Z <= b.Max.Z+tol
}
