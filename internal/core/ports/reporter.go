package ports

import (
	"context"
	"time"
)

// Reporter presents task progress to the user.
// It is driven by span start and end events rather than called directly.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Start initializes the reporter.
	Start(ctx context.Context) error

	// Stop flushes any buffered output.
	Stop() error

	// OnPlanEmit is called with the names of the work items about to run.
	OnPlanEmit(names []string)

	// OnTaskStart is called when a span begins.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called with raw output of a span. Data may contain partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a span ends; err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
