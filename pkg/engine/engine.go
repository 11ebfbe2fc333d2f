// Package engine evaluates scene scripts: a small Lisp dialect on top of
// zygomys whose builtins (slime, cone, vec3, uv-sphere, ...) describe the
// soft bodies and cones of a config.Scene.
package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/slime/pkg/config"
)

// EvalError is a problem with the user's script: a parse error, a runtime
// error or an invalid scene. It is reported, not returned as a Go error.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalResult bundles the output of one evaluation for the UI bindings.
type EvalResult struct {
	Scene  *config.Scene `json:"scene"`
	Errors []EvalError   `json:"errors"`
}

// Engine evaluates scene scripts. Each call to Evaluate gets a fresh
// sandbox, so results only depend on the source. Engine is safe for
// concurrent use; only the newest evaluation's result is delivered.
type Engine struct {
	// Timeout bounds a single evaluation. Zero means EvalTimeout.
	Timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewEngine returns an engine with the default timeout.
func NewEngine() *Engine {
	return &Engine{Timeout: EvalTimeout}
}

// Evaluate runs source and returns the scene it describes, with defaults
// applied and validated.
//
//   - success: scene, nil, nil
//   - script or scene errors: nil, eval errors, nil
//   - timeout, panic or a newer evaluation: nil, nil, error
func (e *Engine) Evaluate(source string) (*config.Scene, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		s, evalErrs, err := evaluate(source)
		ch <- evalResult{scene: s, errors: evalErrs, err: err}
	}()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = EvalTimeout
	}
	return waitWithTimeout(ch, gen, timeout, &e.mu, &e.generation)
}

func evaluate(source string) (*config.Scene, []EvalError, error) {
	scene := &config.Scene{}
	if strings.TrimSpace(source) == "" {
		return scene, nil, nil
	}

	// The sandbox has no filesystem or system call access.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, scene)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	scene.ApplyDefaults()
	if err := scene.Validate(); err != nil {
		return nil, sceneErrors(err), nil
	}
	return scene, nil, nil
}

// sceneErrors flattens joined validation findings.
func sceneErrors(err error) []EvalError {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []EvalError
		for _, e := range joined.Unwrap() {
			out = append(out, EvalError{Message: e.Error()})
		}
		return out
	}
	return []EvalError{{Message: err.Error()}}
}

var (
	// "Error on line N: ..." from the zygomys parser.
	linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	// "line N: ..."
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

// parseZygomysError turns a zygomys error into an EvalError, pulling out
// the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
