package sdfx

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/kernel"
)

func TestSphereSource(t *testing.T) {
	mesh, err := SphereSource(0.5, DefaultCells)
	if err != nil {
		t.Fatalf("SphereSource failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	// Welding should share corners between neighbouring triangles.
	if mesh.VertexCount() >= triCount*3 {
		t.Errorf("vertices were not welded: %d vertices for %d triangles", mesh.VertexCount(), triCount)
	}
	if err := mesh.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// Marching cubes places vertices on the surface to within a cell.
	cell := 1.0 / DefaultCells
	for i := 0; i < mesh.VertexCount(); i++ {
		r := mesh.Vertex(i).Length()
		if math.Abs(r-0.5) > cell {
			t.Errorf("vertex %d at radius %v, want about 0.5", i, r)
			break
		}
	}
	t.Logf("sphere source: %d vertices, %d triangles", mesh.VertexCount(), triCount)
}

func TestBoxSource(t *testing.T) {
	mesh, err := BoxSource(v3.Vec{X: 1, Y: 0.5, Z: 0.5}, 0, 4)
	if err != nil {
		t.Fatalf("BoxSource failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("box source triangle count: %d", mesh.TriangleCount())
}

func TestSourceRejectsBadSize(t *testing.T) {
	if _, err := SphereSource(0, 4); !errors.Is(err, kernel.ErrConfiguration) {
		t.Errorf("SphereSource(0) error = %v, want configuration error", err)
	}
	if _, err := BoxSource(v3.Vec{X: 1, Y: 0, Z: 1}, 0, 4); !errors.Is(err, kernel.ErrConfiguration) {
		t.Errorf("BoxSource(flat) error = %v, want configuration error", err)
	}
}

func TestTriangles(t *testing.T) {
	var b kernel.Builder
	b.AddVertex(v3.Vec{X: 0, Y: 0, Z: 0})
	b.AddVertex(v3.Vec{X: 1, Y: 0, Z: 0})
	b.AddVertex(v3.Vec{X: 0, Y: 1, Z: 0})
	b.AddTriangle(0, 1, 2)
	var m kernel.Mesh
	if err := b.Publish(&m); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	tris := Triangles(&m)
	if len(tris) != 1 {
		t.Fatalf("got %d triangles, want 1", len(tris))
	}
	if tris[0][1].X != 1 || tris[0][2].Y != 1 {
		t.Errorf("triangle corners = %v", *tris[0])
	}
	n := tris[0].Normal()
	if math.Abs(n.Z-1) > 1e-9 {
		t.Errorf("triangle normal = %v, want +Z", n)
	}
}

func TestSaveSTL(t *testing.T) {
	mesh, err := SphereSource(0.5, 4)
	if err != nil {
		t.Fatalf("SphereSource failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sphere.stl")
	if err := SaveSTL(path, mesh); err != nil {
		t.Fatalf("SaveSTL: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("STL file is empty")
	}
	t.Logf("wrote %d bytes for %d triangles", info.Size(), mesh.TriangleCount())
}

func TestSaveSTLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	if err := SaveSTL(path, &kernel.Mesh{}); !errors.Is(err, kernel.ErrInsufficientInput) {
		t.Errorf("SaveSTL(empty) error = %v, want insufficient input", err)
	}
}
