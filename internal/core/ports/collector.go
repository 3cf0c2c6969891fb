package ports

import (
	"context"

	"go.trai.ch/comfortmap/internal/core/domain"
)

// Collector verifies declared outputs after a task ran.
//
//go:generate mockgen -source=collector.go -destination=mocks/mock_collector.go -package=mocks
type Collector interface {
	// Collect returns one artifact per declared output, in declaration order.
	// It fails with domain.ErrOutputMissing listing every absent output.
	Collect(ctx context.Context, d *domain.Descriptor, workDir string) ([]domain.Artifact, error)
}
