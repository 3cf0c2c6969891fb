package ports

import "go.trai.ch/comfortmap/internal/core/domain"

// ConfigLoader defines the interface for loading the project file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to the nearest project file and parses it.
	Load(cwd string) (*domain.Project, error)
}
