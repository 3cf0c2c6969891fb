package telemetry

import (
	"time"
)

// MsgTaskStart indicates a span has started.
type MsgTaskStart struct {
	SpanID    string
	ParentID  string // Empty for a job's root span.
	Name      string
	StartTime time.Time
}

// MsgTaskComplete indicates a span has finished.
type MsgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// MsgTaskLog carries a chunk of tool output for a span.
type MsgTaskLog struct {
	SpanID string
	Data   []byte
}

// MsgInitTasks resets the UI to the planned jobs.
type MsgInitTasks struct {
	Tasks []string
}
