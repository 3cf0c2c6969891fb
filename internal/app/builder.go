package app

import "go.trai.ch/comfortmap/internal/core/ports"

// Components holds the application components resolved by the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{
		App:    app,
		Logger: logger,
	}
}
