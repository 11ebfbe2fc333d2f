// Package slime composes the topology builder and the skin generator into
// one soft body. The external physics step feeds node positions in with
// Step; Generate rebuilds the skin from them, and Deform writes them back
// into the shape of the source mesh.
package slime

import (
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/breath"
	"github.com/chazu/slime/pkg/geom"
	"github.com/chazu/slime/pkg/graph"
	"github.com/chazu/slime/pkg/kernel"
	"github.com/chazu/slime/pkg/skin"
	"github.com/chazu/slime/pkg/topology"
)

// DefaultExpandForce is the radial force applied per node while a pulse
// is expanding.
const DefaultExpandForce = 10.0

// Body is one soft body: a source mesh, the spring network built from it
// and the skin wrapped around the nodes.
type Body struct {
	name    string
	source  *kernel.Mesh
	builder *topology.Builder
	skin    *skin.Skin

	positions []v3.Vec
	local     []v3.Vec
	stats     stats
	now       func() time.Time
}

var _ kernel.Generator = (*Body)(nil)

// New returns a body that builds its topology lazily from source on the
// first Generate or Step.
func New(name string, source *kernel.Mesh, builder *topology.Builder, s *skin.Skin) (*Body, error) {
	switch {
	case source == nil:
		return nil, kernel.Configf("slime.New", "%s: source mesh is nil", name)
	case builder == nil:
		return nil, kernel.Configf("slime.New", "%s: topology builder is nil", name)
	case s == nil:
		return nil, kernel.Configf("slime.New", "%s: skin is nil", name)
	}
	return &Body{name: name, source: source, builder: builder, skin: s, now: time.Now}, nil
}

func (b *Body) Name() string { return b.name }

// Graph returns the current topology, or nil before the first build.
func (b *Body) Graph() *graph.Graph { return b.builder.Graph() }

// Builder returns the topology builder.
func (b *Body) Builder() *topology.Builder { return b.builder }

// ensure runs the lazy build and reports an error when no graph exists.
func (b *Body) ensure(op string) (*graph.Graph, error) {
	if _, err := b.builder.Update(b.source); err != nil {
		return nil, err
	}
	g := b.builder.Graph()
	if g == nil {
		return nil, kernel.Insufficientf(op, "%s: topology has not been built", b.name)
	}
	return g, nil
}

// Step replaces the peripheral node positions with the solver's output.
func (b *Body) Step(positions []v3.Vec) error {
	g, err := b.ensure("slime.Step")
	if err != nil {
		return err
	}
	return g.UpdatePositions(positions)
}

// Generate rebuilds the skin around the active peripheral nodes into dst.
func (b *Body) Generate(dst *kernel.Mesh) error {
	g, err := b.ensure("slime.Generate")
	if err != nil {
		return err
	}
	b.positions = g.Positions(b.positions[:0], true)

	start := b.now()
	if err := b.skin.Regenerate(b.positions, dst); err != nil {
		return err
	}
	b.stats.record(b.now().Sub(start))
	dst.PartName = b.name
	return nil
}

// Deform writes the current node positions into dst, shaped like the
// source mesh, in the body's local space. dst is reset to a copy of the
// source when its vertex count does not match.
func (b *Body) Deform(dst *kernel.Mesh) error {
	g, err := b.ensure("slime.Deform")
	if err != nil {
		return err
	}
	if dst.VertexCount() != b.source.VertexCount() || len(dst.Indices) != len(b.source.Indices) {
		*dst = *b.source.Clone()
	}
	xf := b.builder.Config().Transform
	b.local = b.local[:0]
	for i := range g.Nodes {
		if g.Nodes[i].Center {
			continue
		}
		b.local = append(b.local, xf.InversePoint(g.Nodes[i].Position))
	}
	return dst.SetPositions(b.local)
}

// ExpandForces appends one force per peripheral node to dst, pointing away
// from the center node with the given magnitude. A negative magnitude
// pulls the nodes in. Without a center node the body origin is used.
func (b *Body) ExpandForces(magnitude float64, dst []v3.Vec) ([]v3.Vec, error) {
	g, err := b.ensure("slime.ExpandForces")
	if err != nil {
		return dst, err
	}
	center := b.builder.Config().Transform.Position
	if id, ok := g.Center(); ok {
		center = g.Get(id).Position
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Center {
			continue
		}
		dir := geom.NormalizedOr(n.Position.Sub(center), geom.Zero)
		dst = append(dst, dir.MulScalar(magnitude))
	}
	return dst, nil
}

// StateForces maps a character state to per-node forces: enlarged pushes
// out, shrunken pulls in and normal applies none.
func (b *Body) StateForces(state breath.CharacterState, magnitude float64, dst []v3.Vec) ([]v3.Vec, error) {
	switch state {
	case breath.Enlarged:
		return b.ExpandForces(magnitude, dst)
	case breath.Shrunken:
		return b.ExpandForces(-magnitude, dst)
	default:
		return b.ExpandForces(0, dst)
	}
}

// Stats returns the skin rebuild timings so far.
func (b *Body) Stats() Stats { return b.stats.snapshot() }
