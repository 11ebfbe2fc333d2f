package spline

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/geom"
	"github.com/chazu/slime/pkg/kernel"
)

func near(a, b v3.Vec, tol float64) bool {
	return a.Sub(b).Length() <= tol
}

func TestCatmullRomEndpoints(t *testing.T) {
	p0 := v3.Vec{X: -1, Y: 0, Z: 0}
	p1 := v3.Vec{X: 0, Y: 1, Z: 0}
	p2 := v3.Vec{X: 2, Y: 1, Z: 1}
	p3 := v3.Vec{X: 3, Y: 0, Z: 2}
	if got := CatmullRom(0, p0, p1, p2, p3); !near(got, p1, 1e-12) {
		t.Errorf("t=0 gives %v, want %v", got, p1)
	}
	if got := CatmullRom(1, p0, p1, p2, p3); !near(got, p2, 1e-12) {
		t.Errorf("t=1 gives %v, want %v", got, p2)
	}
}

func TestCatmullRomCollinear(t *testing.T) {
	// Evenly spaced collinear points reproduce linear interpolation.
	pts := []v3.Vec{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	for _, tt := range []float64{0.1, 0.25, 0.5, 0.9} {
		got := CatmullRom(tt, pts[0], pts[1], pts[2], pts[3])
		if !near(got, v3.Vec{X: 1 + tt}, 1e-12) {
			t.Errorf("t=%v gives %v", tt, got)
		}
	}
}

func TestPathTwoPointsIsLerp(t *testing.T) {
	a := v3.Vec{X: 1, Y: 2, Z: 3}
	b := v3.Vec{X: -4, Y: 0, Z: 8}
	const res = 7
	path, err := Path(nil, []v3.Vec{a, b}, res)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if len(path) != res+1 {
		t.Fatalf("len(path) = %d, want %d", len(path), res+1)
	}
	for k, p := range path {
		if want := geom.LerpVec(a, b, float64(k)/res); p != want {
			t.Errorf("sample %d = %v, want %v", k, p, want)
		}
	}
}

func TestPathSampleCount(t *testing.T) {
	tests := []struct {
		points, res int
	}{
		{3, 10},
		{4, 10},
		{5, 1},
		{6, 3},
	}
	for _, tt := range tests {
		pts := make([]v3.Vec, tt.points)
		for i := range pts {
			pts[i] = v3.Vec{X: float64(i), Y: float64(i * i)}
		}
		path, err := Path(nil, pts, tt.res)
		if err != nil {
			t.Fatalf("Path: %v", err)
		}
		want := 1 + tt.res*(tt.points-1)
		if len(path) != want || SampleCount(tt.points, tt.res) != want {
			t.Errorf("%d points, res %d: got %d samples (SampleCount %d), want %d",
				tt.points, tt.res, len(path), SampleCount(tt.points, tt.res), want)
		}
		if !near(path[0], pts[0], 1e-12) || !near(path[len(path)-1], pts[len(pts)-1], 1e-9) {
			t.Errorf("path does not start and end at the control points")
		}
	}
}

func TestPathPassesThroughControlPoints(t *testing.T) {
	pts := []v3.Vec{{X: 0}, {X: 0.5, Y: 1.5, Z: 0.5}, {Y: 3, Z: 1}, {X: -0.5, Y: 4.5, Z: 0.5}}
	const res = 10
	path, err := Path(nil, pts, res)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	for i, p := range pts {
		if !near(path[i*res], p, 1e-9) {
			t.Errorf("sample %d = %v, want control point %v", i*res, path[i*res], p)
		}
	}
}

func TestPathErrors(t *testing.T) {
	if _, err := Path(nil, []v3.Vec{{}}, 10); !errors.Is(err, kernel.ErrInsufficientInput) {
		t.Errorf("one point: error = %v", err)
	}
	if _, err := Path(nil, []v3.Vec{{}, {X: 1}}, 0); !errors.Is(err, kernel.ErrConfiguration) {
		t.Errorf("zero resolution: error = %v", err)
	}
}

func TestPathReusesBuffer(t *testing.T) {
	buf := make([]v3.Vec, 0, 64)
	path, err := Path(buf, []v3.Vec{{}, {X: 1}, {X: 2}}, 10)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if &path[0] != &buf[:1][0] {
		t.Error("Path did not reuse the destination buffer")
	}
}

func TestLength(t *testing.T) {
	path := []v3.Vec{{}, {X: 3}, {X: 3, Y: 4}}
	if got := Length(path); math.Abs(got-7) > 1e-12 {
		t.Errorf("Length = %v, want 7", got)
	}
	if Length(nil) != 0 {
		t.Error("Length(nil) != 0")
	}
}
