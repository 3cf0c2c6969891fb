// Package fs provides file system adapters for staging task inputs and collecting outputs.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Walker provides file walking functionality.
type Walker struct {
	walkDir func(root string, fn fs.WalkDirFunc) error
}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{walkDir: filepath.WalkDir}
}

// WalkFiles yields every file below root, skipping VCS and metadata directories.
// Yielded paths include root. A directory that cannot be read ends the walk
// with a final non-nil error.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := w.walkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", path)
			}

			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

func skipDir(name string) bool {
	return name == ".git" || name == ".jj" || name == domain.MetaDirName
}
