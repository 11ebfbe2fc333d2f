package kernel

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/geom"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: Vertices has 3 floats per vertex (x,y,z), Normals
// has 3 unit-length floats per vertex, UVs has 2 floats per vertex when
// present, Indices has 3 uint32s per counter-clockwise triangle. Min and
// Max hold the bounding box; PartName is the scene entry it came from.
type Mesh struct {
	Vertices []float32  `json:"vertices"`
	Normals  []float32  `json:"normals"`
	UVs      []float32  `json:"uvs,omitempty"`
	Indices  []uint32   `json:"indices"`
	Min      [3]float32 `json:"min"`
	Max      [3]float32 `json:"max"`
	PartName string     `json:"partName"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the i-th vertex position.
func (m *Mesh) Vertex(i int) v3.Vec {
	return geom.At(m.Vertices, i)
}

// Normal returns the i-th vertex normal.
func (m *Mesh) Normal(i int) v3.Vec {
	return geom.At(m.Normals, i)
}

// Positions appends every vertex position to dst.
func (m *Mesh) Positions(dst []v3.Vec) []v3.Vec {
	for i := 0; i < m.VertexCount(); i++ {
		dst = append(dst, m.Vertex(i))
	}
	return dst
}

// Bounds returns the recorded bounding box.
func (m *Mesh) Bounds() geom.Bounds {
	return geom.Bounds{
		Min: v3.Vec{X: float64(m.Min[0]), Y: float64(m.Min[1]), Z: float64(m.Min[2])},
		Max: v3.Vec{X: float64(m.Max[0]), Y: float64(m.Max[1]), Z: float64(m.Max[2])},
	}
}

// Clear drops all geometry but keeps buffer capacity for reuse.
func (m *Mesh) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Normals = m.Normals[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
	m.Min = [3]float32{}
	m.Max = [3]float32{}
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{Min: m.Min, Max: m.Max, PartName: m.PartName}
	c.Vertices = append([]float32(nil), m.Vertices...)
	c.Normals = append([]float32(nil), m.Normals...)
	c.UVs = append([]float32(nil), m.UVs...)
	c.Indices = append([]uint32(nil), m.Indices...)
	return c
}

// Validate checks that the buffers are consistent: whole triangles, one
// normal per vertex, one uv pair per vertex when uvs are present, and
// every index in range.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return Degeneratef("mesh.Validate", "vertex buffer length %d is not a multiple of 3", len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return Degeneratef("mesh.Validate", "index buffer length %d is not a multiple of 3", len(m.Indices))
	}
	if len(m.Normals) != len(m.Vertices) {
		return Degeneratef("mesh.Validate", "%d normal floats for %d vertex floats", len(m.Normals), len(m.Vertices))
	}
	if len(m.UVs) != 0 && len(m.UVs) != m.VertexCount()*2 {
		return Degeneratef("mesh.Validate", "%d uv floats for %d vertices", len(m.UVs), m.VertexCount())
	}
	return checkIndices(m.Indices, m.VertexCount())
}

func checkIndices(indices []uint32, vertexCount int) error {
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return Degeneratef("mesh.Validate", "index %d at position %d out of range (%d vertices)", idx, i, vertexCount)
		}
	}
	return nil
}

// SetPositions overwrites the vertex positions of m in place and
// recomputes normals and bounds. The vertex count must match.
func (m *Mesh) SetPositions(positions []v3.Vec) error {
	if len(positions) != m.VertexCount() {
		return fmt.Errorf("mesh %q: %d positions for %d vertices: %w", m.PartName, len(positions), m.VertexCount(), ErrInsufficientInput)
	}
	for i, p := range positions {
		m.Vertices[i*3] = float32(p.X)
		m.Vertices[i*3+1] = float32(p.Y)
		m.Vertices[i*3+2] = float32(p.Z)
	}
	normals := RecalculateNormals(positions, m.Indices, nil)
	m.Normals = resizeFloats(m.Normals, len(normals)*3)
	for i, n := range normals {
		m.Normals[i*3] = float32(n.X)
		m.Normals[i*3+1] = float32(n.Y)
		m.Normals[i*3+2] = float32(n.Z)
	}
	m.setBounds(geom.BoundsOf(positions))
	return nil
}

func (m *Mesh) setBounds(b geom.Bounds) {
	m.Min = [3]float32{float32(b.Min.X), float32(b.Min.Y), float32(b.Min.Z)}
	m.Max = [3]float32{float32(b.Max.X), float32(b.Max.Y), float32(b.Max.Z)}
}

// resizeFloats returns buf with length n, reallocating only when the
// capacity is too small.
func resizeFloats(buf []float32, n int) []float32 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float32, n)
}

func resizeIndices(buf []uint32, n int) []uint32 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]uint32, n)
}
