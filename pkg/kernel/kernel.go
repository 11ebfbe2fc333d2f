// Package kernel defines the render mesh that every generator in this
// module produces, the reusable buffers they build it in, and the error
// kinds they report. Backends that consume meshes (sdfx STL export, the
// desktop frontend) depend only on this package.
package kernel

// Generator rebuilds a render mesh from its current inputs. Generate
// replaces the contents of dst entirely or, on error, leaves dst cleared
// or untouched; it never leaves a partially written mesh.
type Generator interface {
	// Name identifies the part the generated mesh belongs to.
	Name() string

	// Generate rebuilds dst.
	Generate(dst *Mesh) error
}
