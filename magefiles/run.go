//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders every scene under examples/ to STL files in build/meshes.
func (Run) Meshes() error {
	mg.Deps(Build.Meshgen)
	for _, pattern := range []string{"examples/*.slime", "examples/*.toml"} {
		scenes, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		for _, scene := range scenes {
			out := filepath.Join("build", "meshes", filepath.Base(scene))
			fmt.Printf("Rendering %s...\n", scene)
			if _, err := executeCmd("bin/meshgen", withArgs("-in", scene, "-out", out)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Starts the desktop app in wails dev mode.
func (Run) Dev() error {
	_, err := executeCmd("wails", withArgs("dev"), withDir("."), withStream())
	return err
}
