// Package spline resamples control points into a smooth path made of
// uniform Catmull-Rom segments.
package spline

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/geom"
	"github.com/chazu/slime/pkg/kernel"
)

// CatmullRom evaluates the uniform Catmull-Rom segment between p1 and p2
// at t in [0, 1]; p0 and p3 shape the tangents.
func CatmullRom(t float64, p0, p1, p2, p3 v3.Vec) v3.Vec {
	t2 := t * t
	t3 := t2 * t
	a := p1.MulScalar(2)
	b := p2.Sub(p0).MulScalar(t)
	c := p0.MulScalar(2).Sub(p1.MulScalar(5)).Add(p2.MulScalar(4)).Sub(p3).MulScalar(t2)
	d := p0.Neg().Add(p1.MulScalar(3)).Sub(p2.MulScalar(3)).Add(p3).MulScalar(t3)
	return a.Add(b).Add(c).Add(d).MulScalar(0.5)
}

// SampleCount returns how many points Path produces for n control points.
func SampleCount(n, resolution int) int {
	if n < 2 || resolution < 1 {
		return 0
	}
	return 1 + resolution*(n-1)
}

// Path resamples points into a smooth path. With exactly two points the
// path is the straight segment sampled at resolution+1 evenly spaced
// points. Otherwise it starts at the first point and adds resolution
// samples per segment; the missing neighbours at either end are clamped to
// the end points. The result is appended to dst[:0].
func Path(dst []v3.Vec, points []v3.Vec, resolution int) ([]v3.Vec, error) {
	dst = dst[:0]
	if len(points) < 2 {
		return dst, kernel.Insufficientf("spline.Path", "need at least 2 control points, got %d", len(points))
	}
	if resolution < 1 {
		return dst, kernel.Configf("spline.Path", "resolution must be at least 1, got %d", resolution)
	}

	if len(points) == 2 {
		for k := 0; k <= resolution; k++ {
			dst = append(dst, geom.LerpVec(points[0], points[1], float64(k)/float64(resolution)))
		}
		return dst, nil
	}

	last := len(points) - 1
	dst = append(dst, points[0])
	for i := 0; i < last; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, last)]
		for j := 1; j <= resolution; j++ {
			dst = append(dst, CatmullRom(float64(j)/float64(resolution), p0, p1, p2, p3))
		}
	}
	return dst, nil
}

// Length returns the polyline length of path.
func Length(path []v3.Vec) float64 {
	var l float64
	for i := 1; i < len(path); i++ {
		l += geom.Distance(path[i-1], path[i])
	}
	return l
}
