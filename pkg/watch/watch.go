// Package watch re-runs mesh generation when scene files change. Events
// are debounced so an editor's write-rename-chmod burst triggers one
// rebuild.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before the
// handler runs.
const DefaultDebounce = 150 * time.Millisecond

// Handler is called with the changed paths, sorted. Its error is logged
// and watching continues.
type Handler func(ctx context.Context, paths []string) error

// Watcher watches files and directories for scene changes.
type Watcher struct {
	// Debounce is the quiet period; zero means DefaultDebounce.
	Debounce time.Duration
	// Extensions limits directory watches to these file extensions,
	// e.g. ".toml". Empty means every file.
	Extensions []string

	fs      *fsnotify.Watcher
	handler Handler
	logger  *log.Logger

	mu    sync.Mutex
	files map[string]bool // explicitly watched files
	dirs  map[string]bool // explicitly watched directories
}

// New returns a watcher calling handler on changes.
func New(handler Handler, logger *log.Logger) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: nil handler")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	return &Watcher{
		fs:      fsw,
		handler: handler,
		logger:  logger,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
	}, nil
}

// Add watches a file or a directory (not recursively). A file is watched
// through its parent directory so that editors replacing it by rename are
// still seen.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	dir := abs
	if info.IsDir() {
		w.dirs[abs] = true
	} else {
		w.files[abs] = true
		dir = filepath.Dir(abs)
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch: %s: %w", dir, err)
	}
	return nil
}

// wanted reports whether an event on name concerns a watched file.
func (w *Watcher) wanted(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[name] {
		return true
	}
	if !w.dirs[filepath.Dir(name)] {
		return false
	}
	return len(w.Extensions) == 0 || slices.Contains(w.Extensions, filepath.Ext(name))
}

// Run delivers debounced changes to the handler until ctx is done, then
// closes the underlying watcher. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(e.Name)
			if err != nil || !w.wanted(name) {
				continue
			}
			w.debug("file changed", "path", name, "op", e.Op.String())
			pending[name] = true
			timer.Reset(debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.warn("watch error", "err", err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			if err := w.handler(ctx, paths); err != nil {
				w.warn("rebuild failed", "err", err)
			}
		}
	}
}

func (w *Watcher) debug(msg string, kv ...any) {
	if w.logger != nil {
		w.logger.Debug(msg, kv...)
	}
}

func (w *Watcher) warn(msg string, kv ...any) {
	if w.logger != nil {
		w.logger.Warn(msg, kv...)
	}
}
