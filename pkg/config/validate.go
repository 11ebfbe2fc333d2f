package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/slime/pkg/kernel"
	"github.com/chazu/slime/pkg/topology"
)

// Validate range-checks every entry. Entry names must be unique since
// they name the generated parts, and must be usable as file names. All
// findings are returned joined; each matches kernel.ErrConfiguration.
func (s *Scene) Validate() error {
	var errs []error
	seen := make(map[string]bool, s.Len())
	checkName := func(kind string, i int, name string) {
		if name == "" {
			errs = append(errs, kernel.Configf("config", "%s %d has no name", kind, i))
			return
		}
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			errs = append(errs, kernel.Configf("config", "%s name %q is not a valid file name", kind, name))
		}
		if seen[name] {
			errs = append(errs, kernel.Configf("config", "duplicate name %q", name))
		}
		seen[name] = true
	}

	for i, sl := range s.Slimes {
		checkName("slime", i, sl.Name)
		if err := sl.Source.validate(); err != nil {
			errs = append(errs, fmt.Errorf("slime %q: %w", sl.Name, err))
		}
		if _, err := topology.ParsePolicy(sl.Topology.Policy); err != nil {
			errs = append(errs, fmt.Errorf("slime %q: %w", sl.Name, kernel.Configf("config", "%v", err)))
		} else if err := sl.TopologyConfig().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("slime %q: %w", sl.Name, err))
		}
		if err := sl.SkinParams().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("slime %q: %w", sl.Name, err))
		}
		if sl.Node.Radius < 0 || sl.Node.Mass < 0 {
			errs = append(errs, fmt.Errorf("slime %q: %w", sl.Name,
				kernel.Configf("config", "node radius and mass must be non-negative")))
		}
	}

	for i, c := range s.Cones {
		checkName("cone", i, c.Name)
		if err := c.Params().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("cone %q: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (s Source) validate() error {
	switch s.Kind {
	case SourceUVSphere:
		if s.Radius <= 0 {
			return kernel.Configf("config", "uv-sphere radius must be positive, got %g", s.Radius)
		}
		if s.Rings < 2 || s.Segments < 3 {
			return kernel.Configf("config", "uv-sphere needs at least 2 rings and 3 segments, got %d and %d", s.Rings, s.Segments)
		}
	case SourceSDFSphere:
		if s.Radius <= 0 {
			return kernel.Configf("config", "sdf-sphere radius must be positive, got %g", s.Radius)
		}
		if s.Cells < 1 {
			return kernel.Configf("config", "sdf-sphere cells must be positive, got %d", s.Cells)
		}
	case SourceSDFBox:
		if s.Size == nil || s.Size[0] <= 0 || s.Size[1] <= 0 || s.Size[2] <= 0 {
			return kernel.Configf("config", "sdf-box size must be positive, got %v", s.Size)
		}
		if limit := 0.5 * min(s.Size[0], s.Size[1], s.Size[2]); s.Round < 0 || s.Round > limit {
			return kernel.Configf("config", "sdf-box round %g outside [0, %g]", s.Round, limit)
		}
		if s.Cells < 1 {
			return kernel.Configf("config", "sdf-box cells must be positive, got %d", s.Cells)
		}
	case SourceVertices:
		if len(s.Vertices) == 0 {
			return kernel.Configf("config", "vertices source lists no vertices")
		}
	default:
		return kernel.Configf("config", "unknown source kind %q", s.Kind)
	}
	return nil
}
