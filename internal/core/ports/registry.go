package ports

import "go.trai.ch/comfortmap/internal/core/domain"

// Registry is the read-only catalog of task descriptors.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// Lookup returns a copy of the descriptor with the given name.
	// It returns domain.ErrUnknownOperation when no descriptor matches.
	Lookup(name string) (*domain.Descriptor, error)

	// List returns copies of all descriptors in catalog order.
	List() []*domain.Descriptor
}
