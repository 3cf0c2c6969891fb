package ports

import (
	"context"

	"go.trai.ch/comfortmap/internal/core/domain"
)

// Stager materializes file and folder inputs at their declared paths.
//
//go:generate mockgen -source=stager.go -destination=mocks/mock_stager.go -package=mocks
type Stager interface {
	// Stage copies every bound file or folder source to its declared path inside
	// workDir. It returns the bindings with path inputs pointing at the declared
	// paths, including inputs that were already present there.
	Stage(ctx context.Context, d *domain.Descriptor, bindings domain.Bindings, workDir string) (domain.Bindings, error)

	// Discover reports the path inputs already present at their declared paths.
	Discover(d *domain.Descriptor, workDir string) domain.Bindings
}
