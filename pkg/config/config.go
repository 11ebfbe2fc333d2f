// Package config reads and writes scene files: TOML documents listing the
// soft bodies and cones to generate with every tunable they take. Omitted
// values fall back to the generator defaults.
package config

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/cone"
	"github.com/chazu/slime/pkg/geom"
	"github.com/chazu/slime/pkg/skin"
	"github.com/chazu/slime/pkg/topology"
)

// Source kinds.
const (
	SourceUVSphere  = "uv-sphere"
	SourceSDFSphere = "sdf-sphere"
	SourceSDFBox    = "sdf-box"
	SourceVertices  = "vertices"
)

// Source mesh defaults.
const (
	DefaultSourceRadius   = 0.5
	DefaultSourceRings    = 4
	DefaultSourceSegments = 6
	DefaultSourceCells    = 4
	DefaultSourceSize     = 1.0
)

// Vec3 is a point written as a three-element array.
type Vec3 [3]float64

// Vec converts v to a vector.
func (v Vec3) Vec() v3.Vec { return v3.Vec{X: v[0], Y: v[1], Z: v[2]} }

// FromVec converts a vector to a Vec3.
func FromVec(v v3.Vec) Vec3 { return Vec3{v.X, v.Y, v.Z} }

// Scene is the root of a scene file.
type Scene struct {
	Slimes []Slime `toml:"slime"`
	Cones  []Cone  `toml:"cone"`
}

// Len returns the number of entries.
func (s *Scene) Len() int { return len(s.Slimes) + len(s.Cones) }

// Slime is one soft body.
type Slime struct {
	Name     string   `toml:"name"`
	Position Vec3     `toml:"position"`
	Source   Source   `toml:"source"`
	Topology Topology `toml:"topology"`
	Skin     Skin     `toml:"skin"`
	Node     Node     `toml:"node"`
}

// Source selects the mesh the nodes are built from.
type Source struct {
	Kind     string  `toml:"kind"`
	Radius   float64 `toml:"radius,omitempty"`
	Rings    int     `toml:"rings,omitempty"`
	Segments int     `toml:"segments,omitempty"`
	Cells    int     `toml:"cells,omitempty"`    // sdf marching cubes resolution
	Size     *Vec3   `toml:"size,omitempty"`     // sdf-box only
	Round    float64 `toml:"round,omitempty"`    // sdf-box edge rounding
	Vertices []Vec3  `toml:"vertices,omitempty"` // vertices source only
}

// Topology holds the spring network settings.
type Topology struct {
	Policy                string   `toml:"policy"`
	SpringStrength        *float64 `toml:"spring_strength,omitempty"`
	SpringDamper          *float64 `toml:"spring_damper,omitempty"`
	RecoverSpringStrength *float64 `toml:"recover_spring_strength,omitempty"`
	RecoverSpringDamper   *float64 `toml:"recover_spring_damper,omitempty"`
	CenterNode            bool     `toml:"center_node,omitempty"`
}

// Skin holds the skin mesh settings.
type Skin struct {
	RadialSegments int      `toml:"radial_segments,omitempty"`
	NodeRadius     float64  `toml:"node_radius,omitempty"`
	SphereFactor   *float64 `toml:"sphere_factor,omitempty"`
	Tension        *float64 `toml:"tension,omitempty"`
	MeshOffset     Vec3     `toml:"mesh_offset"`
}

// Node describes the physical body behind each node.
type Node struct {
	Radius float64 `toml:"radius,omitempty"`
	Mass   float64 `toml:"mass,omitempty"`
}

// Cone is one spline cone.
type Cone struct {
	Name                   string   `toml:"name"`
	ControlPoints          []Vec3   `toml:"control_points"`
	BaseRadius             *float64 `toml:"base_radius,omitempty"`
	RadialSegments         int      `toml:"radial_segments,omitempty"`
	SplineResolution       int      `toml:"spline_resolution,omitempty"`
	UseRoundedTip          *bool    `toml:"use_rounded_tip,omitempty"`
	TipCapRadius           *float64 `toml:"tip_cap_radius,omitempty"`
	TipCapLatitudeSegments int      `toml:"tip_cap_latitude_segments,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func setDefault[T any](p **T, v T) {
	if *p == nil {
		*p = ptr(v)
	}
}

func setZero[T comparable](p *T, v T) {
	var zero T
	if *p == zero {
		*p = v
	}
}

// ApplyDefaults fills every omitted value. Entries without a name are
// named after their kind and position in the file.
func (s *Scene) ApplyDefaults() {
	for i := range s.Slimes {
		sl := &s.Slimes[i]
		setZero(&sl.Name, fmt.Sprintf("slime_%d", i))

		src := &sl.Source
		setZero(&src.Kind, SourceUVSphere)
		switch src.Kind {
		case SourceUVSphere:
			setZero(&src.Radius, DefaultSourceRadius)
			setZero(&src.Rings, DefaultSourceRings)
			setZero(&src.Segments, DefaultSourceSegments)
		case SourceSDFSphere:
			setZero(&src.Radius, DefaultSourceRadius)
			setZero(&src.Cells, DefaultSourceCells)
		case SourceSDFBox:
			setDefault(&src.Size, Vec3{DefaultSourceSize, DefaultSourceSize, DefaultSourceSize})
			setZero(&src.Cells, DefaultSourceCells)
		}

		tp := &sl.Topology
		setZero(&tp.Policy, topology.PolicyAllPairsWithHub.String())
		setDefault(&tp.SpringStrength, topology.DefaultSpringStrength)
		setDefault(&tp.SpringDamper, topology.DefaultSpringDamper)
		setDefault(&tp.RecoverSpringStrength, topology.DefaultRecoverStrength)
		setDefault(&tp.RecoverSpringDamper, topology.DefaultRecoverDamper)

		sk := &sl.Skin
		setZero(&sk.RadialSegments, skin.DefaultRadialSegments)
		setZero(&sk.NodeRadius, skin.DefaultNodeRadius)
		setDefault(&sk.SphereFactor, skin.DefaultSphereFactor)
		setDefault(&sk.Tension, skin.DefaultTension)

		proto := topology.DefaultPrototype()
		setZero(&sl.Node.Radius, proto.Radius)
		setZero(&sl.Node.Mass, proto.Mass)
	}

	for i := range s.Cones {
		c := &s.Cones[i]
		setZero(&c.Name, fmt.Sprintf("cone_%d", i))
		if c.ControlPoints == nil {
			for _, p := range cone.DefaultControlPoints() {
				c.ControlPoints = append(c.ControlPoints, FromVec(p))
			}
		}
		setDefault(&c.BaseRadius, cone.DefaultBaseRadius)
		setZero(&c.RadialSegments, cone.DefaultRadialSegments)
		setZero(&c.SplineResolution, cone.DefaultSplineResolution)
		setDefault(&c.UseRoundedTip, true)
		setDefault(&c.TipCapRadius, cone.DefaultTipCapRadius)
		setZero(&c.TipCapLatitudeSegments, cone.DefaultTipCapLatitudeSegments)
	}
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// TopologyConfig returns the builder configuration for s. The policy must
// already be valid; see Scene.Validate.
func (s Slime) TopologyConfig() topology.Config {
	cfg := topology.DefaultConfig()
	if p, err := topology.ParsePolicy(s.Topology.Policy); err == nil {
		cfg.Policy = p
	}
	cfg.Peer = topology.SpringParams{
		Stiffness: deref(s.Topology.SpringStrength, topology.DefaultSpringStrength),
		Damping:   deref(s.Topology.SpringDamper, topology.DefaultSpringDamper),
	}
	cfg.Recover = topology.SpringParams{
		Stiffness: deref(s.Topology.RecoverSpringStrength, topology.DefaultRecoverStrength),
		Damping:   deref(s.Topology.RecoverSpringDamper, topology.DefaultRecoverDamper),
	}
	cfg.CenterNode = s.Topology.CenterNode
	cfg.Transform = geom.Translation(s.Position.Vec())
	return cfg
}

// Prototype returns the node prototype for s.
func (s Slime) Prototype() *topology.Prototype {
	p := topology.DefaultPrototype()
	p.Name = s.Name + "_node"
	if s.Node.Radius != 0 {
		p.Radius = s.Node.Radius
	}
	if s.Node.Mass != 0 {
		p.Mass = s.Node.Mass
	}
	return p
}

// SkinParams returns the skin parameters for s.
func (s Slime) SkinParams() skin.Params {
	p := skin.DefaultParams()
	if s.Skin.RadialSegments != 0 {
		p.RadialSegments = s.Skin.RadialSegments
	}
	if s.Skin.NodeRadius != 0 {
		p.NodeRadius = s.Skin.NodeRadius
	}
	p.SphereFactor = deref(s.Skin.SphereFactor, skin.DefaultSphereFactor)
	p.Tension = deref(s.Skin.Tension, skin.DefaultTension)
	p.MeshOffset = s.Skin.MeshOffset.Vec()
	return p
}

// Points returns the listed vertices of a vertices source.
func (s Source) Points() topology.Points {
	pts := make(topology.Points, len(s.Vertices))
	for i, v := range s.Vertices {
		pts[i] = v.Vec()
	}
	return pts
}

// Params returns the cone parameters for c.
func (c Cone) Params() cone.Params {
	p := cone.DefaultParams()
	p.Name = c.Name
	if c.ControlPoints != nil {
		p.ControlPoints = make([]v3.Vec, len(c.ControlPoints))
		for i, v := range c.ControlPoints {
			p.ControlPoints[i] = v.Vec()
		}
	}
	p.BaseRadius = deref(c.BaseRadius, cone.DefaultBaseRadius)
	if c.RadialSegments != 0 {
		p.RadialSegments = c.RadialSegments
	}
	if c.SplineResolution != 0 {
		p.SplineResolution = c.SplineResolution
	}
	p.UseRoundedTip = deref(c.UseRoundedTip, true)
	p.TipCapRadius = deref(c.TipCapRadius, cone.DefaultTipCapRadius)
	if c.TipCapLatitudeSegments != 0 {
		p.TipCapLatitudeSegments = c.TipCapLatitudeSegments
	}
	return p
}
