package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Hasher computes content digests of artifacts.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Digest returns the hex digest and total size of a file or folder.
// A folder digest covers the sorted relative paths and contents of every file below it.
func (h *Hasher) Digest(path string) (string, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if !info.IsDir() {
		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", 0, err
		}
		return fmt.Sprintf("%016x", sum), info.Size(), nil
	}

	var files []string
	for file, err := range h.walker.WalkFiles(path) {
		if err != nil {
			return "", 0, err
		}
		files = append(files, file)
	}
	slices.Sort(files)

	hasher := xxhash.New()
	var size int64
	for _, file := range files {
		rel, err := filepath.Rel(path, file)
		if err != nil {
			return "", 0, zerr.With(zerr.Wrap(err, "failed to resolve relative path"), "path", file)
		}
		_, _ = hasher.WriteString(filepath.ToSlash(rel))
		_, _ = hasher.Write([]byte{0})

		sum, err := h.ComputeFileHash(file)
		if err != nil {
			return "", 0, err
		}
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return "", 0, zerr.Wrap(err, "failed to write hash to digest")
		}

		fi, err := os.Stat(file)
		if err != nil {
			return "", 0, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", file)
		}
		size += fi.Size()
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), size, nil
}
