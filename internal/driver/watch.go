package driver

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used by Watcher.Run when debounce <= 0.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changed expression and metadata files.
type Watcher struct {
	w *fsnotify.Watcher
}

// NewWatcher starts watching paths (files or directories, not recursive).
// Events are delivered only by Run.
func NewWatcher(paths []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			_ = w.Close() //nolint:errcheck
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
	}
	return &Watcher{w: w}, nil
}

// Run calls onChange with the sorted set of *.xn and *.toml paths that changed,
// after debounce passes without further events. It returns nil when ctx is done
// and an error when the underlying watcher fails.
func (wt *Watcher) Run(ctx context.Context, debounce time.Duration, onChange func(ctx context.Context, changed []string)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-wt.w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			timer.Reset(debounce)
		case err, ok := <-wt.w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := slices.Sorted(maps.Keys(pending))
			clear(pending)
			onChange(ctx, changed)
		}
	}
}

// Close stops watching.
func (wt *Watcher) Close() error {
	return wt.w.Close()
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Ext(ev.Name) {
	case ExprExt, ".toml":
		return true
	default:
		return false
	}
}
