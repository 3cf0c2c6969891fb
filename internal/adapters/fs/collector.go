package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Collector verifies declared outputs and records them as artifacts.
type Collector struct {
	hasher *Hasher
}

// NewCollector creates a new Collector.
func NewCollector(hasher *Hasher) *Collector {
	return &Collector{hasher: hasher}
}

// Collect checks every declared output of d inside workDir and digests it.
func (c *Collector) Collect(ctx context.Context, d *domain.Descriptor, workDir string) ([]domain.Artifact, error) {
	root, err := filepath.Abs(workDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "path", workDir)
	}

	var missing []string
	for _, out := range d.Outputs {
		path := filepath.Join(root, out.Path)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, out.Name)
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
		}
		if info.IsDir() != (out.Kind == domain.KindFolder) {
			err := zerr.With(zerr.Wrap(domain.ErrOutputKindMismatch, "output kind mismatch"), "task", d.Name)
			err = zerr.With(err, "output", out.Name)
			err = zerr.With(err, "expected", string(out.Kind))
			return nil, zerr.With(err, "path", path)
		}
	}

	if len(missing) > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrOutputMissing, "outputs not produced"), "task", d.Name)
		err = zerr.With(err, "outputs", strings.Join(missing, ", "))
		return nil, zerr.With(err, "work_dir", root)
	}

	artifacts := make([]domain.Artifact, len(d.Outputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, out := range d.Outputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(root, out.Path)
			digest, size, err := c.hasher.Digest(path)
			if err != nil {
				return zerr.With(zerr.Wrap(domain.ErrOutputHashFailed, err.Error()), "output", out.Name)
			}
			artifacts[i] = domain.Artifact{
				Name:   out.Name,
				Kind:   out.Kind,
				Path:   path,
				Size:   size,
				Digest: digest,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
