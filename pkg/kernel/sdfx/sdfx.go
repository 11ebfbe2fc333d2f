// Package sdfx connects render meshes to the github.com/deadsy/sdfx SDF
// library. SDF solids are polygonized into indexed source meshes for the
// topology builder, and generated meshes are converted back into sdf
// triangles for STL export.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/kernel"
)

// DefaultCells controls marching cubes resolution for source meshes. Every
// welded vertex becomes a physics node, so this stays coarse.
const DefaultCells = 6

// weldScale quantizes positions when merging the per-triangle vertices
// that marching cubes emits.
const weldScale = 1e6

// SphereSource polygonizes an SDF sphere of the given radius.
func SphereSource(radius float64, cells int) (*kernel.Mesh, error) {
	if radius <= 0 {
		return nil, kernel.Configf("sdfx.SphereSource", "radius must be positive, got %g", radius)
	}
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Sphere3D: %w", err)
	}
	return FromSDF(s, cells)
}

// BoxSource polygonizes an SDF box centered on the origin, with edges
// rounded by round.
func BoxSource(size v3.Vec, round float64, cells int) (*kernel.Mesh, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, kernel.Configf("sdfx.BoxSource", "box size must be positive, got %v", size)
	}
	s, err := sdf.Box3D(size, round)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Box3D: %w", err)
	}
	return FromSDF(s, cells)
}

// FromSDF converts a solid to an indexed triangle mesh using marching
// cubes. Coincident triangle corners are welded so that each surface
// point appears once.
func FromSDF(s sdf.SDF3, cells int) (*kernel.Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, kernel.Insufficientf("sdfx.FromSDF", "marching cubes produced no triangles at %d cells", cells)
	}

	var b kernel.Builder
	welded := make(map[[3]int64]uint32)
	for _, tri := range triangles {
		var idx [3]uint32
		for j := 0; j < 3; j++ {
			v := tri[j]
			key := [3]int64{
				int64(math.Round(v.X * weldScale)),
				int64(math.Round(v.Y * weldScale)),
				int64(math.Round(v.Z * weldScale)),
			}
			i, ok := welded[key]
			if !ok {
				i = b.AddVertex(v3.Vec{X: v.X, Y: v.Y, Z: v.Z})
				welded[key] = i
			}
			idx[j] = i
		}
		if idx[0] == idx[1] || idx[1] == idx[2] || idx[0] == idx[2] {
			continue
		}
		b.AddTriangle(idx[0], idx[1], idx[2])
	}

	m := &kernel.Mesh{}
	if err := b.Publish(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Triangles converts a render mesh to sdf triangles.
func Triangles(m *kernel.Mesh) []*sdf.Triangle3 {
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		tris = append(tris, &sdf.Triangle3{
			m.Vertex(int(m.Indices[t])),
			m.Vertex(int(m.Indices[t+1])),
			m.Vertex(int(m.Indices[t+2])),
		})
	}
	return tris
}

// SaveSTL writes the given meshes to a single STL file.
func SaveSTL(path string, meshes ...*kernel.Mesh) error {
	var tris []*sdf.Triangle3
	for _, m := range meshes {
		tris = append(tris, Triangles(m)...)
	}
	if len(tris) == 0 {
		return kernel.Insufficientf("sdfx.SaveSTL", "no triangles to write to %s", path)
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
