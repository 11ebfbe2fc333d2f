package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/slime/pkg/config"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// ErrSuperseded is returned to an evaluation that finished after a newer
// one was started.
var ErrSuperseded = errors.New("evaluation superseded by newer request")

type evalResult struct {
	scene  *config.Scene
	errors []EvalError
	err    error
}

// waitWithTimeout waits for the result on ch for at most timeout. A result
// whose generation is no longer current is discarded. On timeout the
// evaluating goroutine keeps running; its late result is dropped into the
// buffered channel and never read.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
) (*config.Scene, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()
		if gen != current {
			return nil, nil, ErrSuperseded
		}
		return res.scene, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
