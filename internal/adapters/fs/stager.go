package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Stager copies bound file and folder sources to their declared paths.
type Stager struct {
	walker *Walker
}

// NewStager creates a new Stager.
func NewStager(walker *Walker) *Stager {
	return &Stager{walker: walker}
}

// Stage materializes every bound path input inside workDir.
// String bindings pass through untouched. An empty source means the input
// must already be present at its declared path.
func (s *Stager) Stage(
	ctx context.Context,
	d *domain.Descriptor,
	bindings domain.Bindings,
	workDir string,
) (domain.Bindings, error) {
	staged := bindings.Merge(nil)

	for i := range d.Inputs {
		in := &d.Inputs[i]
		if !in.IsPath() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dest := filepath.Join(workDir, in.Path)
		src, bound := bindings[in.Name]
		if !bound {
			if present(dest, in.Kind) {
				staged[in.Name] = in.Path
			}
			continue
		}

		if src == "" {
			if !present(dest, in.Kind) {
				return nil, inputErr(domain.ErrInputNotFound, "declared path is empty", d.Name, in.Name, dest)
			}
			staged[in.Name] = in.Path
			continue
		}

		if err := s.stageInput(in, src, dest, d.Name); err != nil {
			return nil, err
		}
		staged[in.Name] = in.Path
	}

	return staged, nil
}

func (s *Stager) stageInput(in *domain.InputSpec, src, dest, task string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return inputErr(domain.ErrInputNotFound, "source does not exist", task, in.Name, src)
		}
		return inputErr(domain.ErrInputStageFailed, err.Error(), task, in.Name, src)
	}

	switch {
	case in.Kind == domain.KindFile && info.IsDir():
		return inputErr(domain.ErrInputStageFailed, "expected a file, got a folder", task, in.Name, src)
	case in.Kind == domain.KindFolder && !info.IsDir():
		return inputErr(domain.ErrInputStageFailed, "expected a folder, got a file", task, in.Name, src)
	}

	if in.Kind == domain.KindFile && !in.AllowsExtension(src) {
		err := inputErr(domain.ErrInvalidExtension, "extension not allowed", task, in.Name, src)
		return zerr.With(err, "allowed", strings.Join(in.Extensions, ", "))
	}

	if destInfo, err := os.Stat(dest); err == nil && os.SameFile(info, destInfo) {
		return nil
	}

	if in.Kind == domain.KindFolder {
		err = s.copyTree(src, dest)
	} else {
		err = copyFile(src, dest)
	}
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInputStageFailed, err.Error()), "input", in.Name), "path", src)
	}
	return nil
}

// Discover reports the path inputs already present at their declared paths.
func (s *Stager) Discover(d *domain.Descriptor, workDir string) domain.Bindings {
	found := domain.Bindings{}
	for i := range d.Inputs {
		in := &d.Inputs[i]
		if in.IsPath() && present(filepath.Join(workDir, in.Path), in.Kind) {
			found[in.Name] = in.Path
		}
	}
	return found
}

func (s *Stager) copyTree(src, dest string) error {
	if err := os.RemoveAll(dest); err != nil {
		return err
	}
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return err
	}
	for file, err := range s.walker.WalkFiles(src) {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, file)
		if err != nil {
			return err
		}
		if err := copyFile(file, filepath.Join(dest, rel)); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func present(path string, kind domain.Kind) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir() == (kind == domain.KindFolder)
}

func inputErr(sentinel error, msg, task, input, path string) error {
	err := zerr.With(zerr.Wrap(sentinel, msg), "task", task)
	err = zerr.With(err, "input", input)
	return zerr.With(err, "path", path)
}
