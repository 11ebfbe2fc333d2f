package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/slime/pkg/kernel"
	"github.com/chazu/slime/pkg/skin"
	"github.com/chazu/slime/pkg/topology"
)

const sample = `
[[slime]]
name = "blob"
position = [0, 1, 0]
  [slime.source]
  kind = "uv-sphere"
  radius = 0.75
  rings = 5
  segments = 8
  [slime.topology]
  policy = "hub"
  recover_spring_strength = 0.0
  [slime.skin]
  radial_segments = 32
  tension = 0.0
  mesh_offset = [0, 0.1, 0]

[[cone]]
name = "horn"
control_points = [[0, 0, 0], [0, 3, 1], [-0.5, 4.5, 0.5]]
base_radius = 0.0
use_rounded_tip = false
`

// --- Parse ---

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Slimes) != 1 || len(s.Cones) != 1 {
		t.Fatalf("got %d slimes and %d cones", len(s.Slimes), len(s.Cones))
	}

	sl := s.Slimes[0]
	cfg := sl.TopologyConfig()
	if cfg.Policy != topology.PolicyHub {
		t.Errorf("Policy = %v, want hub", cfg.Policy)
	}
	// Explicit zeros survive; omitted values take defaults.
	if cfg.Recover.Stiffness != 0 {
		t.Errorf("Recover.Stiffness = %v, want 0", cfg.Recover.Stiffness)
	}
	if cfg.Peer.Stiffness != topology.DefaultSpringStrength {
		t.Errorf("Peer.Stiffness = %v, want default", cfg.Peer.Stiffness)
	}
	if cfg.Transform.Position.Y != 1 {
		t.Errorf("Transform.Position = %v", cfg.Transform.Position)
	}

	sp := sl.SkinParams()
	if sp.RadialSegments != 32 || sp.Tension != 0 || sp.SphereFactor != skin.DefaultSphereFactor {
		t.Errorf("SkinParams = %+v", sp)
	}
	if sp.MeshOffset.Y != 0.1 {
		t.Errorf("MeshOffset = %v", sp.MeshOffset)
	}

	cp := s.Cones[0].Params()
	if cp.BaseRadius != 0 || cp.UseRoundedTip {
		t.Errorf("cone params = %+v", cp)
	}
	if len(cp.ControlPoints) != 3 || cp.ControlPoints[2].X != -0.5 {
		t.Errorf("ControlPoints = %v", cp.ControlPoints)
	}
	if cp.RadialSegments != 16 || cp.SplineResolution != 10 {
		t.Errorf("cone defaults not applied: %+v", cp)
	}
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("[[slime]]\n[[cone]]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sl := s.Slimes[0]
	if sl.Name != "slime_0" || s.Cones[0].Name != "cone_0" {
		t.Errorf("names = %q, %q", sl.Name, s.Cones[0].Name)
	}
	if sl.Source.Kind != SourceUVSphere || sl.Source.Rings != DefaultSourceRings {
		t.Errorf("Source = %+v", sl.Source)
	}
	if sl.TopologyConfig().Policy != topology.PolicyAllPairsWithHub {
		t.Errorf("Policy = %v", sl.TopologyConfig().Policy)
	}
	if len(s.Cones[0].ControlPoints) != 4 {
		t.Errorf("default control points = %v", s.Cones[0].ControlPoints)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unknown key", "[[slime]]\ncolour = \"green\"\n", "colour"},
		{"syntax", "[[slime]\n", "line"},
		{"bad policy", "[[slime]]\n[slime.topology]\npolicy = \"mesh\"\n", "policy"},
		{"segments out of range", "[[slime]]\n[slime.skin]\nradial_segments = 8\n", "radial segments"},
		{"tension out of range", "[[slime]]\n[slime.skin]\ntension = 1.5\n", "tension"},
		{"negative spring", "[[slime]]\n[slime.topology]\nspring_damper = -1.0\n", "non-negative"},
		{"unknown source", "[[slime]]\n[slime.source]\nkind = \"torus\"\n", "torus"},
		{"empty vertices", "[[slime]]\n[slime.source]\nkind = \"vertices\"\n", "no vertices"},
		{"duplicate names", "[[slime]]\nname = \"a\"\n[[cone]]\nname = \"a\"\n", "duplicate"},
		{"cone segments", "[[cone]]\nradial_segments = 2\n", "radial segments"},
		{"name with separator", "[[slime]]\nname = \"../x\"\n", "valid file name"},
		{"dot name", "[[cone]]\nname = \"..\"\n", "valid file name"},
		{"box size", "[[slime]]\n[slime.source]\nkind = \"sdf-box\"\nsize = [1, 0, 1]\n", "sdf-box size"},
		{"box round", "[[slime]]\n[slime.source]\nkind = \"sdf-box\"\nsize = [1, 1, 1]\nround = 0.6\n", "sdf-box round"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, kernel.ErrConfiguration) {
				t.Errorf("error %v does not match ErrConfiguration", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestVerticesSource(t *testing.T) {
	in := "[[slime]]\n[slime.source]\nkind = \"vertices\"\nvertices = [[0, 0, 0], [1, 0, 0], [0, 1, 0]]\n"
	s, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pts := s.Slimes[0].Source.Points()
	if pts.VertexCount() != 3 || pts.Vertex(1).X != 1 {
		t.Errorf("Points = %v", pts)
	}
}

// --- Files ---

func TestSaveLoad(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Slimes[0].TopologyConfig() != s.Slimes[0].TopologyConfig() {
		t.Errorf("topology changed across save: %+v", back.Slimes[0].Topology)
	}
	if back.Slimes[0].SkinParams() != s.Slimes[0].SkinParams() {
		t.Errorf("skin changed across save: %+v", back.Slimes[0].Skin)
	}
	if back.Cones[0].Params().BaseRadius != 0 {
		t.Errorf("explicit zero base radius lost: %+v", back.Cones[0])
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load succeeded on a missing file")
	}
}
