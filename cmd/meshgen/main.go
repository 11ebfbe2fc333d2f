// Command meshgen renders a scene file to mesh files without the desktop
// shell. Scenes are read from .slime scripts or .toml files; every entry
// is written as <name>.stl or <name>.json in the output directory.
//
//	meshgen -in examples/scene.slime -out build/meshes -format stl
//	meshgen -in examples/scene.toml -watch
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/chazu/slime/pkg/config"
	"github.com/chazu/slime/pkg/engine"
	"github.com/chazu/slime/pkg/kernel"
	"github.com/chazu/slime/pkg/kernel/sdfx"
	"github.com/chazu/slime/pkg/logging"
	"github.com/chazu/slime/pkg/tessellate"
	"github.com/chazu/slime/pkg/watch"
)

const (
	formatSTL  = "stl"
	formatJSON = "json"
)

func main() {
	in := flag.String("in", "", "scene file (.slime or .toml)")
	out := flag.String("out", "meshes", "output directory")
	format := flag.String("format", formatSTL, "output format: stl or json")
	watchMode := flag.Bool("watch", false, "regenerate whenever the scene file changes")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.New("meshgen", *level)
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *format != formatSTL && *format != formatJSON {
		logger.Fatal("unknown format", "format", *format)
	}

	g := &generator{out: *out, format: *format, engine: engine.NewEngine(), logger: logger}
	if _, err := g.run(*in); err != nil {
		if !*watchMode {
			logger.Fatal("generate failed", "err", err)
		}
		logger.Error("generate failed", "err", err)
	}
	if !*watchMode {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := g.watch(ctx, *in); err != nil {
		logger.Fatal("watch failed", "err", err)
	}
}

type generator struct {
	out    string
	format string
	engine *engine.Engine
	logger *log.Logger
}

// run generates every mesh in the scene at path and returns the files
// written.
func (g *generator) run(path string) ([]string, error) {
	scene, err := g.load(path)
	if err != nil {
		return nil, err
	}
	meshes, err := tessellate.Tessellate(scene)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(g.out, 0o755); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(meshes))
	for _, m := range meshes {
		file := filepath.Join(g.out, m.PartName+"."+g.format)
		if err := g.write(file, m); err != nil {
			return files, fmt.Errorf("writing %s: %w", m.PartName, err)
		}
		g.logger.Info("mesh written", "part", m.PartName, "path", file,
			"vertices", m.VertexCount(), "triangles", m.TriangleCount())
		files = append(files, file)
	}
	return files, nil
}

func (g *generator) load(path string) (*config.Scene, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return config.Load(path)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scene, evalErrs, err := g.engine.Evaluate(string(source))
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = fmt.Errorf("%s: %w", path, e)
		}
		return nil, errors.Join(errs...)
	}
	return scene, nil
}

func (g *generator) write(file string, m *kernel.Mesh) error {
	if g.format == formatSTL {
		return sdfx.SaveSTL(file, m)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

// watch regenerates on every change to the scene file until ctx is done.
func (g *generator) watch(ctx context.Context, path string) error {
	w, err := watch.New(func(_ context.Context, _ []string) error {
		_, err := g.run(path)
		return err
	}, g.logger)
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		return err
	}
	g.logger.Info("watching", "path", path)
	return w.Run(ctx)
}
