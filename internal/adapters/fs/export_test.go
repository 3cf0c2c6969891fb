package fs

import (
	"io/fs"
	"path/filepath"
)

// NewWalkerFailingAt returns a walker that reports err when it reaches the
// directory named name, as if reading it failed.
func NewWalkerFailingAt(name string, err error) *Walker {
	return &Walker{walkDir: func(root string, fn fs.WalkDirFunc) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr == nil && d.IsDir() && d.Name() == name {
				return fn(path, d, err)
			}
			return fn(path, d, walkErr)
		})
	}}
}
