package ports

import (
	"context"
	"io"
)

// SpanConfig holds optional span settings.
type SpanConfig struct {
	Attributes map[string]any
}

// SpanOption configures a span.
type SpanOption func(*SpanConfig)

// WithAttribute sets an attribute on the span when it starts.
func WithAttribute(key string, value any) SpanOption {
	return func(c *SpanConfig) {
		if c.Attributes == nil {
			c.Attributes = make(map[string]any)
		}
		c.Attributes[key] = value
	}
}

// Span is a unit of traced work. Writes are forwarded as log output of the span.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError marks the span as failed.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Tracer starts spans.
type Tracer interface {
	// Start creates a span as a child of any span in ctx.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan announces the names of the work items about to run.
	EmitPlan(ctx context.Context, names []string)
}
