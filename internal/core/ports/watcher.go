package ports

import "context"

// Watcher reports file changes below a directory tree.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch blocks until ctx is done. onChange is called with the paths that
	// changed during each quiet period, never concurrently with itself.
	Watch(ctx context.Context, root string, onChange func(paths []string)) error
}
