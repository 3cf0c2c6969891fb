package watcher

import (
	"context"
	"io/fs"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/comfortmap/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the quiet period after the last change before a batch is reported.
const DefaultDebounceWindow = 500 * time.Millisecond

// skippedDirectories are never watched.
var skippedDirectories = map[string]bool{
	".git":             true,
	".jj":              true,
	"node_modules":     true,
	domain.MetaDirName: true,
}

// Watcher implements ports.Watcher with fsnotify.
type Watcher struct {
	logger ports.Logger
	window time.Duration
}

// NewWatcher creates a watcher that reports batches after window of quiet.
func NewWatcher(logger ports.Logger, window time.Duration) *Watcher {
	return &Watcher{logger: logger, window: window}
}

// Watch watches root recursively until ctx is done. Calls to onChange never
// overlap, and none is in flight once Watch returns.
func (w *Watcher) Watch(ctx context.Context, root string, onChange func(paths []string)) error {
	if _, err := os.Stat(root); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWatchFailed, err.Error()), "path", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWatchFailed, err.Error()), "path", root)
	}
	defer func() { _ = fsw.Close() }()

	for dir := range watchableDirs(root) {
		if err := fsw.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrWatchFailed, err.Error()), "path", dir)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	queue := newBatchQueue()
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	debouncer := NewDebouncer(w.window, queue.push)
	defer debouncer.Stop()

	// Rounds run outside the event loop so fsnotify keeps draining while onChange is busy.
	wg.Go(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-queue.ready:
				if paths := queue.take(); len(paths) > 0 {
					onChange(paths)
				}
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			debouncer.Add(event.Name)

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for dir := range watchableDirs(event.Name) {
						_ = fsw.Add(dir)
					}
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("watcher: " + err.Error())
			}
		}
	}
}

// batchQueue merges batches that arrive while a round is still running.
type batchQueue struct {
	mu    sync.Mutex
	paths map[string]struct{}
	ready chan struct{}
}

func newBatchQueue() *batchQueue {
	return &batchQueue{
		paths: make(map[string]struct{}),
		ready: make(chan struct{}, 1),
	}
}

func (q *batchQueue) push(paths []string) {
	q.mu.Lock()
	for _, path := range paths {
		q.paths[path] = struct{}{}
	}
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *batchQueue) take() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	paths := slices.Sorted(maps.Keys(q.paths))
	clear(q.paths)
	return paths
}

// relevant drops chmod-only events and anything in or inside a skipped directory.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	for dir := event.Name; ; dir = filepath.Dir(dir) {
		if skippedDirectories[filepath.Base(dir)] {
			return false
		}
		if parent := filepath.Dir(dir); parent == dir {
			return true
		}
	}
}

// watchableDirs yields root and every directory below it that is not skipped.
func watchableDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Unreadable directories are not watched.
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skippedDirectories[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
