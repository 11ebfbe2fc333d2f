// Package tessellate turns a scene into render meshes: one skin mesh per
// soft body and one mesh per cone. It is read-only with respect to the
// scene.
package tessellate

import (
	"fmt"

	"github.com/chazu/slime/pkg/cone"
	"github.com/chazu/slime/pkg/config"
	"github.com/chazu/slime/pkg/kernel"
	"github.com/chazu/slime/pkg/kernel/sdfx"
	"github.com/chazu/slime/pkg/skin"
	"github.com/chazu/slime/pkg/slime"
	"github.com/chazu/slime/pkg/topology"
)

// Tessellate generates every entry of scene, slimes first, in file order.
// The first failure aborts the walk.
func Tessellate(scene *config.Scene) ([]*kernel.Mesh, error) {
	if scene == nil {
		return nil, nil
	}
	meshes := make([]*kernel.Mesh, 0, scene.Len())
	for _, s := range scene.Slimes {
		body, err := Body(s)
		if err != nil {
			return nil, fmt.Errorf("tessellate: slime %q: %w", s.Name, err)
		}
		m := &kernel.Mesh{}
		if err := body.Generate(m); err != nil {
			return nil, fmt.Errorf("tessellate: slime %q: %w", s.Name, err)
		}
		meshes = append(meshes, m)
	}
	for _, c := range scene.Cones {
		gen, err := cone.New(c.Params())
		if err != nil {
			return nil, fmt.Errorf("tessellate: cone %q: %w", c.Name, err)
		}
		m := &kernel.Mesh{}
		if err := gen.Generate(m); err != nil {
			return nil, fmt.Errorf("tessellate: cone %q: %w", c.Name, err)
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// Body builds the soft body described by s. Its topology is built lazily
// on first use.
func Body(s config.Slime) (*slime.Body, error) {
	src, err := SourceMesh(s.Source)
	if err != nil {
		return nil, err
	}
	builder := topology.NewBuilder(s.TopologyConfig())
	builder.SetPrototype(s.Prototype())
	sk, err := skin.New(s.SkinParams())
	if err != nil {
		return nil, err
	}
	return slime.New(s.Name, src, builder, sk)
}

// SourceMesh builds the local-space mesh a soft body's nodes come from.
func SourceMesh(src config.Source) (*kernel.Mesh, error) {
	switch src.Kind {
	case config.SourceUVSphere:
		return topology.UVSphere(src.Radius, src.Rings, src.Segments)
	case config.SourceSDFSphere:
		return sdfx.SphereSource(src.Radius, src.Cells)
	case config.SourceSDFBox:
		if src.Size == nil {
			return nil, kernel.Configf("tessellate.SourceMesh", "sdf-box has no size")
		}
		return sdfx.BoxSource(src.Size.Vec(), src.Round, src.Cells)
	case config.SourceVertices:
		var b kernel.Builder
		for _, v := range src.Vertices {
			b.AddVertex(v.Vec())
		}
		m := &kernel.Mesh{PartName: "vertices"}
		if err := b.Publish(m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, kernel.Configf("tessellate.SourceMesh", "unknown source kind %q", src.Kind)
	}
}
