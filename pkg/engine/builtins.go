package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/slime/pkg/config"
)

// ---------------------------------------------------------------------------
// Go values carried through the interpreter
// ---------------------------------------------------------------------------

type sexpVec3 struct {
	vec config.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpSource is a source mesh description, consumed by slime.
type sexpSource struct {
	src config.Source
}

func (s *sexpSource) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s :radius %g)", s.src.Kind, s.src.Radius)
}
func (s *sexpSource) Type() *zygo.RegisteredType { return nil }

// sexpEntry is what slime and cone return: a handle on the scene entry.
type sexpEntry struct {
	kind string
	name string
}

func (e *sexpEntry) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", e.kind, e.name)
}
func (e *sexpEntry) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Arguments
// ---------------------------------------------------------------------------

// isKW reports whether s is a keyword rewritten by preprocessSource and
// returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits args into keyword and positional arguments. A keyword
// with no value is recorded with SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	a := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			a.positional = append(a.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			a.kw[name] = args[i+1]
			i++
		} else {
			a.kw[name] = zygo.SexpNull
		}
	}
	return a
}

// argReader reads keyword arguments for one builtin call, keeping the
// first error.
type argReader struct {
	fn   string
	args kwArgs
	err  error
}

func newArgReader(fn string, args []zygo.Sexp, allowed ...string) *argReader {
	r := &argReader{fn: fn, args: parseArgs(args)}
	for _, k := range slices.Sorted(maps.Keys(r.args.kw)) {
		if !slices.Contains(allowed, k) {
			r.err = fmt.Errorf("%s: unknown keyword :%s", fn, k)
			break
		}
	}
	return r
}

func (r *argReader) get(key string) (zygo.Sexp, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.args.kw[key]
	return v, ok
}

func (r *argReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %s: %w", r.fn, key, err)
	}
}

func (r *argReader) float(key string, dst *float64) {
	if v, ok := r.get(key); ok {
		f, err := toFloat64(v)
		if err != nil {
			r.fail(key, err)
			return
		}
		*dst = f
	}
}

// optFloat sets *dst only when the keyword is present, so an explicit zero
// is kept apart from an omitted value.
func (r *argReader) optFloat(key string, dst **float64) {
	if _, ok := r.get(key); ok {
		var f float64
		r.float(key, &f)
		*dst = &f
	}
}

func (r *argReader) integer(key string, dst *int) {
	if v, ok := r.get(key); ok {
		n, err := toInt(v)
		if err != nil {
			r.fail(key, err)
			return
		}
		*dst = n
	}
}

func (r *argReader) flag(key string, dst **bool) {
	if v, ok := r.get(key); ok {
		b, err := toBool(v)
		if err != nil {
			r.fail(key, err)
			return
		}
		*dst = &b
	}
}

func (r *argReader) vec(key string, dst *config.Vec3) {
	if v, ok := r.get(key); ok {
		vec, err := toVec3(v)
		if err != nil {
			r.fail(key, err)
			return
		}
		*dst = vec
	}
}

func (r *argReader) vecs(key string, dst *[]config.Vec3) {
	if v, ok := r.get(key); ok {
		items, err := sexpListToSlice(v)
		if err != nil {
			r.fail(key, err)
			return
		}
		out := make([]config.Vec3, 0, len(items))
		for i, item := range items {
			vec, err := toVec3(item)
			if err != nil {
				r.fail(fmt.Sprintf("%s[%d]", key, i), err)
				return
			}
			out = append(out, vec)
		}
		*dst = out
	}
}

func (r *argReader) keyword(key string, dst *string) {
	if v, ok := r.get(key); ok {
		s, err := toKeywordString(v)
		if err != nil {
			r.fail(key, err)
			return
		}
		*dst = s
	}
}

// name returns the leading string argument of a named builtin.
func (r *argReader) name() string {
	if r.err != nil {
		return ""
	}
	if len(r.args.positional) < 1 {
		r.err = fmt.Errorf("%s requires a name argument", r.fn)
		return ""
	}
	s, err := toString(r.args.positional[0])
	if err != nil {
		r.fail("name", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts a keyword (:hub) or a plain string ("hub").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func toVec3(s zygo.Sexp) (config.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return config.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice accepts a list, an array or nil.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene builtins into env; slime and cone
// append to scene. Kebab-case names are registered in the snake_case form
// preprocessSource produces.
func registerBuiltins(env *zygo.Zlisp, scene *config.Scene) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v config.Vec3
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// (uv-sphere :radius 0.5 :rings 4 :segments 6)
	env.AddFunction("uv_sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := newArgReader("uv-sphere", args, "radius", "rings", "segments")
		src := config.Source{Kind: config.SourceUVSphere}
		r.float("radius", &src.Radius)
		r.integer("rings", &src.Rings)
		r.integer("segments", &src.Segments)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		return &sexpSource{src: src}, nil
	})

	// (sdf-sphere :radius 0.5 :cells 4)
	env.AddFunction("sdf_sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := newArgReader("sdf-sphere", args, "radius", "cells")
		src := config.Source{Kind: config.SourceSDFSphere}
		r.float("radius", &src.Radius)
		r.integer("cells", &src.Cells)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		return &sexpSource{src: src}, nil
	})

	// (sdf-box :size (vec3 1 1 1) :round 0.1 :cells 4)
	env.AddFunction("sdf_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := newArgReader("sdf-box", args, "size", "round", "cells")
		src := config.Source{Kind: config.SourceSDFBox}
		if _, ok := r.get("size"); ok {
			src.Size = new(config.Vec3)
			r.vec("size", src.Size)
		}
		r.float("round", &src.Round)
		r.integer("cells", &src.Cells)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		return &sexpSource{src: src}, nil
	})

	// (vertices (vec3 0 0 0) (vec3 1 0 0) ...) or (vertices (list ...))
	env.AddFunction("vertices", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		items := args
		if len(args) == 1 {
			if list, err := sexpListToSlice(args[0]); err == nil {
				items = list
			}
		}
		src := config.Source{Kind: config.SourceVertices}
		for i, item := range items {
			v, err := toVec3(item)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vertices: %d: %w", i, err)
			}
			src.Vertices = append(src.Vertices, v)
		}
		return &sexpSource{src: src}, nil
	})

	// (slime "blob" :source (uv-sphere ...) :policy :all-pairs-hub
	//        :spring-strength 100 :radial-segments 24 ... :at (vec3 0 1 0))
	env.AddFunction("slime", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := newArgReader("slime", args,
			"source", "policy", "center-node",
			"spring-strength", "spring-damper", "recover-strength", "recover-damper",
			"radial-segments", "node-radius", "sphere-factor", "tension", "mesh-offset",
			"node-size", "node-mass", "at")
		s := config.Slime{Name: r.name()}
		if v, ok := r.get("source"); ok {
			src, isSrc := v.(*sexpSource)
			if !isSrc {
				r.fail("source", fmt.Errorf("expected uv-sphere, sdf-sphere or vertices, got %s", v.SexpString(nil)))
			} else {
				s.Source = src.src
			}
		}
		r.keyword("policy", &s.Topology.Policy)
		var center *bool
		r.flag("center-node", &center)
		if center != nil {
			s.Topology.CenterNode = *center
		}
		r.optFloat("spring-strength", &s.Topology.SpringStrength)
		r.optFloat("spring-damper", &s.Topology.SpringDamper)
		r.optFloat("recover-strength", &s.Topology.RecoverSpringStrength)
		r.optFloat("recover-damper", &s.Topology.RecoverSpringDamper)
		r.integer("radial-segments", &s.Skin.RadialSegments)
		r.float("node-radius", &s.Skin.NodeRadius)
		r.optFloat("sphere-factor", &s.Skin.SphereFactor)
		r.optFloat("tension", &s.Skin.Tension)
		r.vec("mesh-offset", &s.Skin.MeshOffset)
		r.float("node-size", &s.Node.Radius)
		r.float("node-mass", &s.Node.Mass)
		r.vec("at", &s.Position)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		scene.Slimes = append(scene.Slimes, s)
		return &sexpEntry{kind: "slime", name: s.Name}, nil
	})

	// (cone "horn" :points (list (vec3 0 0 0) ...) :base-radius 1
	//       :radial-segments 16 :resolution 10 :rounded-tip true
	//       :tip-radius 0.2 :tip-segments 8)
	env.AddFunction("cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := newArgReader("cone", args,
			"points", "base-radius", "radial-segments", "resolution",
			"rounded-tip", "tip-radius", "tip-segments")
		c := config.Cone{Name: r.name()}
		r.vecs("points", &c.ControlPoints)
		r.optFloat("base-radius", &c.BaseRadius)
		r.integer("radial-segments", &c.RadialSegments)
		r.integer("resolution", &c.SplineResolution)
		r.flag("rounded-tip", &c.UseRoundedTip)
		r.optFloat("tip-radius", &c.TipCapRadius)
		r.integer("tip-segments", &c.TipCapLatitudeSegments)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		scene.Cones = append(scene.Cones, c)
		return &sexpEntry{kind: "cone", name: c.Name}, nil
	})
}
