package ports

import "go.trai.ch/comfortmap/internal/core/domain"

// CommandRenderer turns a descriptor and bound values into a concrete invocation.
//
//go:generate mockgen -source=command_renderer.go -destination=mocks/mock_command_renderer.go -package=mocks
type CommandRenderer interface {
	// Render applies defaults, validates the bindings and renders the argument list.
	Render(d *domain.Descriptor, bindings domain.Bindings, workDir string) (*domain.Invocation, error)
}
