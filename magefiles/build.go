//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles every package and the meshgen tool into bin/.
func (Build) All() error {
	if _, err := executeCmd("go", withArgs("build", "./..."), withStream()); err != nil {
		return err
	}
	return Build{}.Meshgen()
}

// Builds bin/meshgen.
func (Build) Meshgen() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/meshgen", "./cmd/meshgen"), withStream())
	return err
}

// Builds the desktop app with the wails CLI.
func (Build) App() error {
	_, err := executeCmd("wails", withArgs("build"), withStream())
	return err
}

// Runs the test suite.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
