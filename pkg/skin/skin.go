// Package skin wraps a soft body's nodes in a closed tube of vertex rings.
// Every node contributes one ring; neighbouring rings are pulled toward
// each other and stitched into quads, so the surface follows the nodes as
// the physics step moves them. The mesh is rebuilt from scratch on every
// Regenerate call.
package skin

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/geom"
	"github.com/chazu/slime/pkg/kernel"
)

// Parameter ranges and defaults.
const (
	MinRadialSegments     = 16
	MaxRadialSegments     = 64
	DefaultRadialSegments = 24

	MinNodeRadius     = 0.1
	MaxNodeRadius     = 1.0
	DefaultNodeRadius = 0.25

	DefaultSphereFactor = 0.75
	DefaultTension      = 0.6
)

// Params controls the skin shape.
type Params struct {
	RadialSegments int        // vertices per ring
	NodeRadius     float64    // ring radius around each node
	SphereFactor   float64    // pull toward the pair midpoint, scaled by influence
	Tension        float64    // lerp toward the pair midpoint
	MeshOffset     v3.Vec     // added to every vertex after blending
	Plane          geom.Frame // rings lie in this frame's Right/Up plane
}

// DefaultParams returns the default skin parameters. Rings lie in the XY
// plane.
func DefaultParams() Params {
	return Params{
		RadialSegments: DefaultRadialSegments,
		NodeRadius:     DefaultNodeRadius,
		SphereFactor:   DefaultSphereFactor,
		Tension:        DefaultTension,
		Plane:          geom.Identity,
	}
}

// Validate checks every parameter against its range.
func (p Params) Validate() error {
	if p.RadialSegments < MinRadialSegments || p.RadialSegments > MaxRadialSegments {
		return kernel.Configf("skin.Params", "radial segments %d outside [%d, %d]", p.RadialSegments, MinRadialSegments, MaxRadialSegments)
	}
	if p.NodeRadius < MinNodeRadius || p.NodeRadius > MaxNodeRadius {
		return kernel.Configf("skin.Params", "node radius %g outside [%g, %g]", p.NodeRadius, MinNodeRadius, MaxNodeRadius)
	}
	if p.SphereFactor < 0 || p.SphereFactor > 1 {
		return kernel.Configf("skin.Params", "sphere factor %g outside [0, 1]", p.SphereFactor)
	}
	if p.Tension < 0 || p.Tension > 1 {
		return kernel.Configf("skin.Params", "tension %g outside [0, 1]", p.Tension)
	}
	return nil
}

// SphereInfluence returns how strongly two node spheres of the given
// radius overlap: 1 when the centers coincide, falling linearly to 0 at a
// distance of two radii.
func SphereInfluence(a, b v3.Vec, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return geom.Clamp01(1 - geom.Distance(a, b)/(radius*2))
}

// Skin regenerates a skin mesh from node positions. A Skin keeps its
// scratch buffers between calls and must not be shared between
// goroutines.
type Skin struct {
	params  Params
	ring    []v3.Vec // unit circle offsets, one per segment
	builder kernel.Builder
}

// New returns a Skin after validating p.
func New(p Params) (*Skin, error) {
	if p.Plane == (geom.Frame{}) {
		p.Plane = geom.Identity
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Skin{params: p}
	s.ring = make([]v3.Vec, p.RadialSegments)
	for j := range s.ring {
		theta := float64(j) * 2 * math.Pi / float64(p.RadialSegments)
		s.ring[j] = p.Plane.Circle(theta, 1)
	}
	return s, nil
}

// Params returns the skin parameters.
func (s *Skin) Params() Params {
	return s.params
}

// Regenerate rebuilds dst around nodes. With fewer than two nodes dst is
// cleared and an insufficient-input error is returned.
func (s *Skin) Regenerate(nodes []v3.Vec, dst *kernel.Mesh) error {
	n := len(nodes)
	if n < 2 {
		dst.Clear()
		return kernel.Insufficientf("skin.Regenerate", "need at least 2 nodes, got %d", n)
	}
	segs := s.params.RadialSegments
	r := s.params.NodeRadius

	s.builder.Reset()
	for _, p := range nodes {
		for _, u := range s.ring {
			s.builder.AddVertex(p.Add(u.MulScalar(r)))
		}
	}

	verts := s.builder.Positions()
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		center := geom.Midpoint(nodes[i], nodes[next])
		pull := s.params.SphereFactor * SphereInfluence(nodes[i], nodes[next], r)
		for j := 0; j < segs; j++ {
			a := i*segs + j
			b := next*segs + j
			verts[a] = geom.LerpVec(verts[a], center, s.params.Tension)
			verts[b] = geom.LerpVec(verts[b], center, s.params.Tension)
			verts[a] = verts[a].Add(center.Sub(verts[a]).MulScalar(pull))
			verts[b] = verts[b].Add(center.Sub(verts[b]).MulScalar(pull))
		}
	}

	for k := range verts {
		verts[k] = verts[k].Add(s.params.MeshOffset)
	}

	for i := 0; i < n; i++ {
		next := (i + 1) % n
		for j := 0; j < segs; j++ {
			jn := (j + 1) % segs
			i1 := uint32(i*segs + j)
			i2 := uint32(i*segs + jn)
			i3 := uint32(next*segs + j)
			i4 := uint32(next*segs + jn)
			s.builder.AddTriangle(i1, i3, i2)
			s.builder.AddTriangle(i2, i3, i4)
		}
	}

	return s.builder.Publish(dst)
}
