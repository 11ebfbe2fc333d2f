package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/geom"
)

// Builder accumulates vertices and triangles for one mesh rebuild. Reset
// keeps the backing arrays, so a generator that owns a Builder stops
// allocating once its vertex count settles.
type Builder struct {
	positions []v3.Vec
	uvs       []float32
	indices   []uint32
	normals   []v3.Vec
	hasUV     bool
}

// Reset empties the builder without releasing capacity.
func (b *Builder) Reset() {
	b.positions = b.positions[:0]
	b.uvs = b.uvs[:0]
	b.indices = b.indices[:0]
	b.hasUV = false
}

// AddVertex appends a vertex without texture coordinates and returns its
// index.
func (b *Builder) AddVertex(p v3.Vec) uint32 {
	b.positions = append(b.positions, p)
	b.uvs = append(b.uvs, 0, 0)
	return uint32(len(b.positions) - 1)
}

// AddVertexUV appends a vertex with texture coordinates (u, v) and returns
// its index.
func (b *Builder) AddVertexUV(p v3.Vec, u, v float64) uint32 {
	b.positions = append(b.positions, p)
	b.uvs = append(b.uvs, float32(u), float32(v))
	b.hasUV = true
	return uint32(len(b.positions) - 1)
}

// AddTriangle appends one triangle. Winding is counter-clockwise for the
// front face.
func (b *Builder) AddTriangle(i0, i1, i2 uint32) {
	b.indices = append(b.indices, i0, i1, i2)
}

// VertexCount returns the number of vertices added since Reset.
func (b *Builder) VertexCount() int {
	return len(b.positions)
}

// TriangleCount returns the number of triangles added since Reset.
func (b *Builder) TriangleCount() int {
	return len(b.indices) / 3
}

// Positions exposes the vertex positions added so far. Callers may adjust
// them in place before Publish.
func (b *Builder) Positions() []v3.Vec {
	return b.positions
}

// Indices exposes the triangle indices added so far.
func (b *Builder) Indices() []uint32 {
	return b.indices
}

// Publish recomputes normals and bounds and replaces the contents of dst.
// Indices are checked first; on failure dst is left untouched.
func (b *Builder) Publish(dst *Mesh) error {
	if err := checkIndices(b.indices, len(b.positions)); err != nil {
		return err
	}
	b.normals = RecalculateNormals(b.positions, b.indices, b.normals)

	n := len(b.positions)
	dst.Vertices = resizeFloats(dst.Vertices, n*3)
	dst.Normals = resizeFloats(dst.Normals, n*3)
	for i, p := range b.positions {
		nv := b.normals[i]
		dst.Vertices[i*3], dst.Vertices[i*3+1], dst.Vertices[i*3+2] = float32(p.X), float32(p.Y), float32(p.Z)
		dst.Normals[i*3], dst.Normals[i*3+1], dst.Normals[i*3+2] = float32(nv.X), float32(nv.Y), float32(nv.Z)
	}
	if b.hasUV {
		dst.UVs = resizeFloats(dst.UVs, n*2)
		copy(dst.UVs, b.uvs)
	} else {
		dst.UVs = dst.UVs[:0]
	}
	dst.Indices = resizeIndices(dst.Indices, len(b.indices))
	copy(dst.Indices, b.indices)
	dst.setBounds(geom.BoundsOf(b.positions))
	return nil
}
