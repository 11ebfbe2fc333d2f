package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ParallelLimit is the |forward·up| above which the up hint is swapped for
// the world forward axis when building a frame.
const ParallelLimit = 0.999

// Frame is an orthonormal basis. Local coordinates map to
// Right*x + Up*y + Forward*z.
type Frame struct {
	Right   v3.Vec
	Up      v3.Vec
	Forward v3.Vec
}

// Identity is the frame whose axes are the world axes.
var Identity = Frame{Right: Right, Up: Up, Forward: Forward}

// LookRotation builds a frame whose Forward axis points along forward and
// whose Up axis is as close to up as possible. A degenerate forward falls
// back to the world up axis; an up hint parallel to forward is replaced by
// the world forward axis.
func LookRotation(forward, up v3.Vec) Frame {
	z := NormalizedOr(forward, Up)
	x, ok := Normalized(up.Cross(z))
	if !ok {
		x = NormalizedOr(UpHint(z).Cross(z), Right)
	}
	y := z.Cross(x)
	return Frame{Right: x, Up: y, Forward: z}
}

// UpHint returns the up vector to pair with forward: world up, unless
// forward is nearly parallel to it.
func UpHint(forward v3.Vec) v3.Vec {
	if math.Abs(forward.Dot(Up)) > ParallelLimit {
		return Forward
	}
	return Up
}

// Apply maps a local offset into the frame.
func (f Frame) Apply(local v3.Vec) v3.Vec {
	return f.Right.MulScalar(local.X).
		Add(f.Up.MulScalar(local.Y)).
		Add(f.Forward.MulScalar(local.Z))
}

// Circle returns the point at angle theta on a circle of radius r in the
// frame's Right/Up plane.
func (f Frame) Circle(theta, r float64) v3.Vec {
	return f.Apply(v3.Vec{X: math.Cos(theta) * r, Y: math.Sin(theta) * r})
}

// Transform is a rigid placement with per-axis scale, mapping a parent's
// local space into world space.
type Transform struct {
	Position v3.Vec
	Rotation Frame
	Scale    v3.Vec
}

// IdentityTransform leaves points unchanged.
var IdentityTransform = Transform{Rotation: Identity, Scale: v3.Vec{X: 1, Y: 1, Z: 1}}

// Translation returns an unrotated, unscaled transform at p.
func Translation(p v3.Vec) Transform {
	t := IdentityTransform
	t.Position = p
	return t
}

// Normalized fills in the fields of a partially specified transform: a
// zero Scale becomes unit scale and a zero Rotation becomes Identity.
// Position is kept.
func (t Transform) Normalized() Transform {
	if t.Scale == (v3.Vec{}) {
		t.Scale = IdentityTransform.Scale
	}
	if t.Rotation == (Frame{}) {
		t.Rotation = Identity
	}
	return t
}

// Point maps a local point into world space.
func (t Transform) Point(local v3.Vec) v3.Vec {
	scaled := v3.Vec{X: local.X * t.Scale.X, Y: local.Y * t.Scale.Y, Z: local.Z * t.Scale.Z}
	return t.Position.Add(t.Rotation.Apply(scaled))
}

// InversePoint maps a world point back into local space. Zero scale
// components collapse to zero.
func (t Transform) InversePoint(world v3.Vec) v3.Vec {
	d := world.Sub(t.Position)
	local := v3.Vec{
		X: d.Dot(t.Rotation.Right),
		Y: d.Dot(t.Rotation.Up),
		Z: d.Dot(t.Rotation.Forward),
	}
	return v3.Vec{X: safeDiv(local.X, t.Scale.X), Y: safeDiv(local.Y, t.Scale.Y), Z: safeDiv(local.Z, t.Scale.Z)}
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
