package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEvaluateEmptyString(t *testing.T) {
	for _, src := range []string{"", "   \n\t  \n  "} {
		scene, evalErrs, err := NewEngine().Evaluate(src)
		if err != nil {
			t.Fatalf("unexpected fatal error: %v", err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("unexpected eval errors: %v", evalErrs)
		}
		if scene == nil || scene.Len() != 0 {
			t.Errorf("Evaluate(%q) = %+v, want an empty scene", src, scene)
		}
	}
}

func TestEvaluatePlainExpression(t *testing.T) {
	// Valid Lisp that declares nothing yields an empty scene.
	scene, evalErrs, err := NewEngine().Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if scene.Len() != 0 {
		t.Errorf("expected empty scene, got %d entries", scene.Len())
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	scene, evalErrs, err := NewEngine().Evaluate("(slime \"a\"\n(vec3 1 2")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if scene != nil {
		t.Error("expected nil scene on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unbalanced parens")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate("(undefined-function 1 2 3)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for undefined function")
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	var err error = EvalError{Line: 3, Message: "bad"}
	if err.Error() != "line 3: bad" {
		t.Errorf("Error() = %q", err.Error())
	}
	err = EvalError{Message: "no line"}
	if err.Error() != "no line" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	src := `(slime "a" :source (uv-sphere :radius 0.5)) (cone "c")`
	eng := NewEngine()
	first, _, err := eng.Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, _, err := eng.Evaluate(src)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if again.Slimes[0].SkinParams() != first.Slimes[0].SkinParams() || again.Cones[0].Name != first.Cones[0].Name {
			t.Fatalf("evaluation %d differs", i)
		}
	}
}

func TestEvaluateTimeout(t *testing.T) {
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult) // never sends

	start := time.Now()
	_, _, err := waitWithTimeout(ch, 1, 50*time.Millisecond, &mu, &gen)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2)

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	_, _, err := waitWithTimeout(ch, 1, time.Second, &mu, &gen)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected superseded error, got %v", err)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line format", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"no line info", "some generic error", 0, "some generic error"},
		{"line format lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"short line format", "line 7: bad vec3", 7, "bad vec3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			e := errs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", e.Line, tt.wantLine)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }
