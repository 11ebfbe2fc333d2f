package topology

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/geom"
	"github.com/chazu/slime/pkg/graph"
	"github.com/chazu/slime/pkg/kernel"
)

// Default spring coefficients.
const (
	DefaultSpringStrength  = 100.0
	DefaultSpringDamper    = 5.0
	DefaultRecoverStrength = 100.0
	DefaultRecoverDamper   = 5.0
)

// Default node names.
const (
	DefaultNamePrefix = "SlimeNode_"
	DefaultCenterName = "CenterNode"
)

// Source is a list of vertices in the body's local space.
// *kernel.Mesh satisfies it.
type Source interface {
	VertexCount() int
	Vertex(i int) v3.Vec
}

var _ Source = (*kernel.Mesh)(nil)

// SpringParams are the coefficients of one class of spring.
type SpringParams struct {
	Stiffness float64
	Damping   float64
}

// Config parameterizes a Builder.
type Config struct {
	Policy       Policy
	Peer         SpringParams   // peripheral-to-peripheral springs
	Recover      SpringParams   // peripheral-to-center springs
	CenterNode   bool           // create a center node even without hub springs; it then joins all-pairs
	TrackAnchors bool           // record each node's local rest position
	Transform    geom.Transform // body local space to world space
	NamePrefix   string
	CenterName   string
}

// DefaultConfig returns the all-pairs-with-hub configuration with the
// default spring coefficients.
func DefaultConfig() Config {
	return Config{
		Policy:       PolicyAllPairsWithHub,
		Peer:         SpringParams{Stiffness: DefaultSpringStrength, Damping: DefaultSpringDamper},
		Recover:      SpringParams{Stiffness: DefaultRecoverStrength, Damping: DefaultRecoverDamper},
		TrackAnchors: true,
		Transform:    geom.IdentityTransform,
		NamePrefix:   DefaultNamePrefix,
		CenterName:   DefaultCenterName,
	}
}

// Validate checks the spring coefficients and policy.
func (c Config) Validate() error {
	if c.Policy < PolicyAllPairs || c.Policy > PolicyAllPairsWithHub {
		return kernel.Configf("topology.Config", "unknown policy %d", int(c.Policy))
	}
	if c.Peer.Stiffness < 0 || c.Peer.Damping < 0 {
		return kernel.Configf("topology.Config", "peer spring coefficients must be non-negative, got %+v", c.Peer)
	}
	if c.Recover.Stiffness < 0 || c.Recover.Damping < 0 {
		return kernel.Configf("topology.Config", "recover spring coefficients must be non-negative, got %+v", c.Recover)
	}
	return nil
}

// Prototype describes the physical body instantiated for each node. Its
// shape is irrelevant to topology.
type Prototype struct {
	Name   string
	Radius float64
	Mass   float64
}

// DefaultPrototype returns a small unit-mass node.
func DefaultPrototype() *Prototype {
	return &Prototype{Name: "SlimeNode", Radius: 0.05, Mass: 1}
}

// Builder creates and owns the topology graph of one body.
type Builder struct {
	cfg        Config
	proto      *Prototype
	graph      *graph.Graph
	generated  bool
	generation uint64
}

// NewBuilder returns a builder with no prototype set.
func NewBuilder(cfg Config) *Builder {
	if cfg.NamePrefix == "" {
		cfg.NamePrefix = DefaultNamePrefix
	}
	if cfg.CenterName == "" {
		cfg.CenterName = DefaultCenterName
	}
	cfg.Transform = cfg.Transform.Normalized()
	return &Builder{cfg: cfg}
}

// SetPrototype sets the node prototype. A nil prototype makes Build fail.
func (b *Builder) SetPrototype(p *Prototype) {
	b.proto = p
}

// Prototype returns the node prototype, or nil.
func (b *Builder) Prototype() *Prototype {
	return b.proto
}

// Config returns the builder configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// SetTransform moves the body. It affects the next build only. Missing
// scale and rotation default as in NewBuilder.
func (b *Builder) SetTransform(t geom.Transform) {
	b.cfg.Transform = t.Normalized()
}

// Generated reports whether a graph has been built.
func (b *Builder) Generated() bool {
	return b.generated
}

// Graph returns the current graph, or nil before the first build.
func (b *Builder) Graph() *graph.Graph {
	return b.graph
}

// Generation returns the number of successful builds so far.
func (b *Builder) Generation() uint64 {
	return b.generation
}

// Teardown discards the current graph.
func (b *Builder) Teardown() {
	b.graph = nil
	b.generated = false
}

// Update builds the graph the first time src has vertices. It reports
// whether a build was attempted.
func (b *Builder) Update(src Source) (bool, error) {
	if b.generated || src == nil || src.VertexCount() == 0 {
		return false, nil
	}
	_, err := b.Build(src)
	return true, err
}

// Build replaces the current graph with a new one built from src. A
// missing prototype is a configuration error and an empty source is an
// insufficient-input error; in both cases nothing is built and the
// previous graph is kept.
func (b *Builder) Build(src Source) (*graph.Graph, error) {
	if b.proto == nil {
		return nil, kernel.Configf("topology.Build", "node prototype is not set")
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil || src.VertexCount() == 0 {
		return nil, kernel.Insufficientf("topology.Build", "source mesh has no vertices")
	}

	b.Teardown()

	g := graph.New(b.generation + 1)
	n := src.VertexCount()
	for i := 0; i < n; i++ {
		local := src.Vertex(i)
		anchor := v3.Vec{}
		if b.cfg.TrackAnchors {
			anchor = local
		}
		g.AddNode(fmt.Sprintf("%s%d", b.cfg.NamePrefix, i), b.cfg.Transform.Point(local), anchor)
	}

	policy := b.cfg.Policy
	peers := n
	if b.cfg.CenterNode || policy.hub() {
		center, err := g.AddCenter(b.cfg.CenterName, b.cfg.Transform.Point(v3.Vec{}))
		if err != nil {
			return nil, fmt.Errorf("topology.Build: %w", err)
		}
		// Without hub springs the center is an ordinary peer.
		if !policy.hub() {
			peers++
		}
		if policy.hub() {
			for i := 0; i < n; i++ {
				if _, err := g.AddLink(graph.Link{
					A:         graph.NodeID(i),
					B:         center,
					Kind:      graph.LinkRecover,
					Stiffness: b.cfg.Recover.Stiffness,
					Damping:   b.cfg.Recover.Damping,
				}); err != nil {
					return nil, fmt.Errorf("topology.Build: %w", err)
				}
			}
		}
	}

	if policy.peers() {
		// Both orders are visited; the pair key keeps one link per pair.
		for i := 0; i < peers; i++ {
			for j := 0; j < peers; j++ {
				if i == j {
					continue
				}
				if _, err := g.AddLink(graph.Link{
					A:          graph.NodeID(i),
					B:          graph.NodeID(j),
					Kind:       graph.LinkPeer,
					Stiffness:  b.cfg.Peer.Stiffness,
					Damping:    b.cfg.Peer.Damping,
					AutoAnchor: true,
				}); err != nil {
					return nil, fmt.Errorf("topology.Build: %w", err)
				}
			}
		}
	}

	b.generation++
	b.graph = g
	b.generated = true
	return g, nil
}
