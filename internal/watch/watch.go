// Package watch re-runs a callback when any of a set of files changes.
//
// Parent directories are watched rather than the files themselves, the way
// viper watches its config file: TeX rewrites .aux files by replacing them,
// and a watch on the old inode would go quiet after the first rebuild.
package watch

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/agentstation/floataudit/pkg/constants"
	"github.com/agentstation/floataudit/pkg/errors"
	"github.com/agentstation/floataudit/pkg/logging"
)

// ChangeFunc is called once per settled burst of changes with the changed paths, sorted.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher tracks a set of files through their parent directories.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *zerolog.Logger

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long events must be quiet before the callback runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a Watcher with no files.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapResource("create", "watcher", "fsnotify", err)
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: constants.WatchDebounce,
		logger:   logging.Default(),
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// SetFiles replaces the watched file set. Directories that no longer hold a
// watched file are released.
func (w *Watcher) SetFiles(paths []string) error {
	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]int)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.WrapIO("resolve", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)]++
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range dirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return errors.WrapIO("watch", dir, err)
		}
	}
	for dir := range w.dirs {
		if _, ok := dirs[dir]; !ok {
			_ = w.fsw.Remove(dir)
		}
	}

	w.files = files
	w.dirs = dirs
	w.logger.Debug().Int("files", len(files)).Int("dirs", len(dirs)).Msg("Updated watch set")
	return nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func (w *Watcher) relevant(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	path := filepath.Clean(ev.Name)
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path]
	return path, ok
}

// Run delivers debounced change batches to fn until ctx is cancelled.
// Errors from fn are logged and the loop keeps going. Run returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			path, ok := w.relevant(ev)
			if !ok {
				continue
			}
			w.logger.Trace().Str("file", path).Str("op", ev.Op.String()).Msg("File changed")
			pending[path] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)

			if err := fn(ctx, changed); err != nil {
				w.logger.Warn().Err(err).Strs("changed", changed).Msg("Change handler failed")
			}
		}
	}
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
