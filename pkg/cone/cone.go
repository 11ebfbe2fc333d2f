// Package cone extrudes circular rings along a Catmull-Rom spline to build
// a tapered horn: the radius shrinks from the base toward the tip, which
// is either a point or a hemispherical cap. The base can be closed with a
// flat fan.
package cone

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/geom"
	"github.com/chazu/slime/pkg/kernel"
	"github.com/chazu/slime/pkg/spline"
)

// Radii at or below this are treated as absent.
const minRadius = 0.001

// Defaults.
const (
	DefaultBaseRadius             = 1.0
	DefaultRadialSegments         = 16
	DefaultSplineResolution       = 10
	DefaultTipCapRadius           = 0.2
	DefaultTipCapLatitudeSegments = 8
)

// Params describes one cone.
type Params struct {
	Name                   string
	ControlPoints          []v3.Vec
	BaseRadius             float64
	RadialSegments         int
	SplineResolution       int
	UseRoundedTip          bool
	TipCapRadius           float64
	TipCapLatitudeSegments int
}

// DefaultControlPoints is a gently curving four-point path.
func DefaultControlPoints() []v3.Vec {
	return []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 0.5, Y: 1.5, Z: 0.5},
		{X: 0, Y: 3, Z: 1},
		{X: -0.5, Y: 4.5, Z: 0.5},
	}
}

// DefaultParams returns the default cone.
func DefaultParams() Params {
	return Params{
		Name:                   "cone",
		ControlPoints:          DefaultControlPoints(),
		BaseRadius:             DefaultBaseRadius,
		RadialSegments:         DefaultRadialSegments,
		SplineResolution:       DefaultSplineResolution,
		UseRoundedTip:          true,
		TipCapRadius:           DefaultTipCapRadius,
		TipCapLatitudeSegments: DefaultTipCapLatitudeSegments,
	}
}

// Validate checks the numeric parameters. Too few control points is not a
// configuration error; Generate reports it as insufficient input.
func (p Params) Validate() error {
	if p.RadialSegments < 3 {
		return kernel.Configf("cone.Params", "radial segments must be at least 3, got %d", p.RadialSegments)
	}
	if p.SplineResolution < 1 {
		return kernel.Configf("cone.Params", "spline resolution must be at least 1, got %d", p.SplineResolution)
	}
	if p.BaseRadius < 0 || p.TipCapRadius < 0 {
		return kernel.Configf("cone.Params", "radii must be non-negative, got base %g tip %g", p.BaseRadius, p.TipCapRadius)
	}
	if p.UseRoundedTip && p.TipCapLatitudeSegments < 1 {
		return kernel.Configf("cone.Params", "tip cap needs at least 1 latitude segment, got %d", p.TipCapLatitudeSegments)
	}
	return nil
}

// hasTipCap reports whether a hemispherical cap is built.
func (p Params) hasTipCap() bool {
	return p.UseRoundedTip && p.TipCapRadius > minRadius
}

// hasBaseCap reports whether the base is closed.
func (p Params) hasBaseCap() bool {
	return p.BaseRadius > minRadius
}

// Layout is the vertex and triangle budget of a cone.
type Layout struct {
	Samples       int // path samples, one ring each
	BodyVertices  int
	CapVertices   int // hemisphere rings, pole excluded
	PoleVertex    int // 1 with a tip cap
	BaseVertex    int // 1 with a base cap
	BodyTriangles int
	CapTriangles  int
	BaseTriangles int
}

// Vertices returns the total vertex count.
func (l Layout) Vertices() int {
	return l.BodyVertices + l.CapVertices + l.PoleVertex + l.BaseVertex
}

// Triangles returns the total triangle count.
func (l Layout) Triangles() int {
	return l.BodyTriangles + l.CapTriangles + l.BaseTriangles
}

// LayoutFor computes the layout p produces, or a zero Layout when p
// cannot produce a mesh.
func LayoutFor(p Params) Layout {
	samples := spline.SampleCount(len(p.ControlPoints), p.SplineResolution)
	if samples < 2 || p.Validate() != nil {
		return Layout{}
	}
	ring := p.RadialSegments + 1
	l := Layout{
		Samples:       samples,
		BodyVertices:  samples * ring,
		BodyTriangles: (samples - 1) * p.RadialSegments * 2,
	}
	if p.hasTipCap() {
		l.CapVertices = p.TipCapLatitudeSegments * ring
		l.PoleVertex = 1
		l.CapTriangles = p.TipCapLatitudeSegments*p.RadialSegments*2 + p.RadialSegments
	}
	if p.hasBaseCap() {
		l.BaseVertex = 1
		l.BaseTriangles = p.RadialSegments
	}
	return l
}

// Generator builds cone meshes. It keeps its path and vertex buffers
// between calls and must not be shared between goroutines.
type Generator struct {
	params  Params
	path    []v3.Vec
	builder kernel.Builder
}

var _ kernel.Generator = (*Generator)(nil)

// New returns a generator after validating p.
func New(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Generator{params: p}, nil
}

// Name implements kernel.Generator.
func (g *Generator) Name() string {
	return g.params.Name
}

// Params returns the cone parameters.
func (g *Generator) Params() Params {
	return g.params
}

// SetParams replaces the parameters for the next Generate call.
func (g *Generator) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	g.params = p
	return nil
}

// Generate rebuilds dst. Fewer than two control points clears dst and
// returns an insufficient-input error.
func (g *Generator) Generate(dst *kernel.Mesh) error {
	p := g.params
	path, err := spline.Path(g.path, p.ControlPoints, p.SplineResolution)
	g.path = path
	if err != nil {
		dst.Clear()
		return err
	}
	if len(path) < 2 {
		dst.Clear()
		return kernel.Insufficientf("cone.Generate", "spline produced %d samples", len(path))
	}

	g.builder.Reset()
	n := len(path)
	segs := p.RadialSegments
	ring := segs + 1
	capSegs := 0
	if p.UseRoundedTip {
		capSegs = p.TipCapLatitudeSegments
	}
	tipTarget := 0.0
	if p.hasTipCap() {
		tipTarget = p.TipCapRadius
	}

	for i, cur := range path {
		forward := forwardAt(path, i)
		frame := geom.LookRotation(forward, geom.UpHint(forward))
		radius := geom.Lerp(p.BaseRadius, tipTarget, float64(i)/float64(n-1))
		if i == n-1 && !p.UseRoundedTip {
			radius = 0
		}
		v := float64(i) / float64(n-1+capSegs)
		for j := 0; j <= segs; j++ {
			theta := float64(j) / float64(segs) * 2 * math.Pi
			g.builder.AddVertexUV(cur.Add(frame.Circle(theta, radius)), float64(j)/float64(segs), v)
		}
	}

	for i := 0; i < n-1; i++ {
		stitch(&g.builder, uint32(i*ring), uint32((i+1)*ring), segs)
	}

	if p.hasTipCap() {
		g.tipCap(path)
	}

	if p.hasBaseCap() {
		center := g.builder.AddVertexUV(path[0], 0.5, 0)
		for j := 0; j < segs; j++ {
			g.builder.AddTriangle(center, uint32(j+1), uint32(j))
		}
	}

	dst.PartName = p.Name
	return g.builder.Publish(dst)
}

// tipCap appends the hemisphere rings, their stitching and the pole fan.
func (g *Generator) tipCap(path []v3.Vec) {
	p := g.params
	n := len(path)
	segs := p.RadialSegments
	ring := segs + 1
	capSegs := p.TipCapLatitudeSegments
	r := p.TipCapRadius

	start := path[n-1]
	forward := geom.NormalizedOr(path[n-1].Sub(path[n-2]), geom.Up)
	frame := geom.LookRotation(forward, geom.UpHint(forward))

	lastRing := uint32((n - 1) * ring)
	firstCap := uint32(g.builder.VertexCount())
	for lat := 1; lat <= capSegs; lat++ {
		phi := float64(lat) / float64(capSegs) * math.Pi / 2
		ringRadius := r * math.Cos(phi)
		offset := r * math.Sin(phi)
		v := float64(n-1+lat) / float64(n-1+capSegs)
		for lon := 0; lon <= segs; lon++ {
			theta := float64(lon) / float64(segs) * 2 * math.Pi
			local := v3.Vec{X: math.Cos(theta) * ringRadius, Y: math.Sin(theta) * ringRadius, Z: offset}
			g.builder.AddVertexUV(start.Add(frame.Apply(local)), float64(lon)/float64(segs), v)
		}
	}

	stitch(&g.builder, lastRing, firstCap, segs)
	for lat := 0; lat < capSegs-1; lat++ {
		stitch(&g.builder, firstCap+uint32(lat*ring), firstCap+uint32((lat+1)*ring), segs)
	}

	beforePole := uint32(g.builder.VertexCount() - ring)
	pole := g.builder.AddVertexUV(start.Add(frame.Forward.MulScalar(r)), 0.5, 1)
	for lon := 0; lon < segs; lon++ {
		g.builder.AddTriangle(beforePole+uint32(lon), pole, beforePole+uint32(lon+1))
	}
}

// stitch joins two rings of segs+1 vertices with two triangles per quad.
func stitch(b *kernel.Builder, base, next uint32, segs int) {
	for j := uint32(0); j < uint32(segs); j++ {
		b.AddTriangle(base+j, next+j, base+j+1)
		b.AddTriangle(base+j+1, next+j, next+j+1)
	}
}

// forwardAt returns the path direction at sample i: toward the next sample,
// or from the previous one at the end, falling back to world up when the
// samples coincide.
func forwardAt(path []v3.Vec, i int) v3.Vec {
	if i < len(path)-1 {
		if f, ok := geom.Normalized(path[i+1].Sub(path[i])); ok {
			return f
		}
	}
	if i > 0 {
		if f, ok := geom.Normalized(path[i].Sub(path[i-1])); ok {
			return f
		}
	}
	return geom.Up
}
