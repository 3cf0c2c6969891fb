// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/comfortmap/internal/core/domain"
)

// Executor defines the interface for running rendered invocations.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the invocation in its working directory.
	//
	// The env parameter contains environment variables in "KEY=VALUE" format
	// that are added to the allow-listed system environment.
	//
	// A non-zero exit is returned as an error carrying exit_code metadata.
	Execute(ctx context.Context, inv *domain.Invocation, env []string, stdout, stderr io.Writer) error
}
