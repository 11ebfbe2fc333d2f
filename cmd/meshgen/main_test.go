package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/slime/pkg/engine"
	"github.com/chazu/slime/pkg/kernel"
	"github.com/chazu/slime/pkg/logging"
)

func newGenerator(t *testing.T, format string) *generator {
	t.Helper()
	return &generator{
		out:    filepath.Join(t.TempDir(), "out"),
		format: format,
		engine: engine.NewEngine(),
		logger: logging.Discard(),
	}
}

func TestRunScriptSTL(t *testing.T) {
	g := newGenerator(t, formatSTL)
	files, err := g.run("../../examples/scene.slime")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("wrote %d files, want 3: %v", len(files), files)
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Size() == 0 || filepath.Ext(f) != ".stl" {
			t.Errorf("%s: size %d", f, info.Size())
		}
	}
}

func TestRunTOMLJSON(t *testing.T) {
	g := newGenerator(t, formatJSON)
	files, err := g.run("../../examples/scene.toml")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := filepath.Join(g.out, "horn.json")
	var found bool
	for _, f := range files {
		found = found || f == want
	}
	if !found {
		t.Fatalf("files = %v, want %s", files, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	var m kernel.Mesh
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decoding %s: %v", want, err)
	}
	if m.PartName != "horn" || m.TriangleCount() == 0 {
		t.Errorf("decoded mesh %q with %d triangles", m.PartName, m.TriangleCount())
	}
}

func TestRunScriptErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.slime")
	if err := os.WriteFile(path, []byte(`(slime "a" :node-radius 5)`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := newGenerator(t, formatSTL).run(path)
	if err == nil || !strings.Contains(err.Error(), "bad.slime") {
		t.Errorf("run error = %v, want one naming the file", err)
	}
}

func TestRunMissingFile(t *testing.T) {
	if _, err := newGenerator(t, formatSTL).run("missing.toml"); err == nil {
		t.Error("expected an error for a missing scene")
	}
}

func TestRunRejectsPathNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "escape.toml")
	if err := os.WriteFile(path, []byte("[[cone]]\nname = \"../escape\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g := newGenerator(t, formatSTL)
	if _, err := g.run(path); err == nil {
		t.Fatal("expected an error for a part name with a path separator")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(g.out), "escape.stl")); !os.IsNotExist(err) {
		t.Errorf("file written outside the output directory: %v", err)
	}
}
