package topology

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/kernel"
)

// UVSphere returns a welded latitude/longitude sphere centered on the
// origin: one vertex at each pole and segments vertices on each of the
// rings-1 inner latitudes. Unlike a render sphere it has no seam
// duplicates, so every vertex maps to a distinct node.
func UVSphere(radius float64, rings, segments int) (*kernel.Mesh, error) {
	if radius <= 0 {
		return nil, kernel.Configf("topology.UVSphere", "radius must be positive, got %g", radius)
	}
	if rings < 2 || segments < 3 {
		return nil, kernel.Configf("topology.UVSphere", "need at least 2 rings and 3 segments, got %d and %d", rings, segments)
	}

	var b kernel.Builder
	top := b.AddVertex(v3.Vec{Y: radius})
	for r := 1; r < rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := radius * math.Cos(phi)
		ring := radius * math.Sin(phi)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			b.AddVertex(v3.Vec{X: -ring * math.Cos(theta), Y: y, Z: ring * math.Sin(theta)})
		}
	}
	bottom := b.AddVertex(v3.Vec{Y: -radius})

	at := func(r, s int) uint32 {
		return uint32(1 + (r-1)*segments + s%segments)
	}
	for s := 0; s < segments; s++ {
		b.AddTriangle(top, at(1, s), at(1, s+1))
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			b.AddTriangle(at(r, s), at(r+1, s), at(r, s+1))
			b.AddTriangle(at(r, s+1), at(r+1, s), at(r+1, s+1))
		}
	}
	for s := 0; s < segments; s++ {
		b.AddTriangle(bottom, at(rings-1, s+1), at(rings-1, s))
	}

	m := &kernel.Mesh{PartName: "uv-sphere"}
	if err := b.Publish(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Points is a Source over a plain vertex list.
type Points []v3.Vec

// VertexCount implements Source.
func (p Points) VertexCount() int { return len(p) }

// Vertex implements Source.
func (p Points) Vertex(i int) v3.Vec { return p[i] }
