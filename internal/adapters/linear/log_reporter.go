package linear

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.trai.ch/comfortmap/internal/core/ports"
)

// LogReporter implements ports.Reporter on top of a structured logger.
// It is used when logs are machine-read, e.g. JSON output in CI.
type LogReporter struct {
	logger ports.Logger

	mu    sync.Mutex
	tasks map[string]*taskState
}

// NewLogReporter creates a LogReporter writing through logger.
func NewLogReporter(logger ports.Logger) *LogReporter {
	return &LogReporter{
		logger: logger,
		tasks:  make(map[string]*taskState),
	}
}

// Start is a no-op; the reporter is synchronous.
func (r *LogReporter) Start(_ context.Context) error {
	return nil
}

// Stop flushes partial lines of tasks that never completed.
func (r *LogReporter) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		r.flushLocked(task)
	}
	return nil
}

// OnPlanEmit logs the work about to run.
func (r *LogReporter) OnPlanEmit(names []string) {
	r.logger.Info(fmt.Sprintf("planning to run %d task(s): %s", len(names), strings.Join(names, ", ")))
}

// OnTaskStart logs a start message. Child spans are labelled parent/child.
func (r *LogReporter) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := name
	if parent, ok := r.tasks[parentID]; ok {
		label = parent.label + "/" + name
	}
	r.tasks[spanID] = &taskState{label: label, startTime: startTime}

	r.logger.Info(fmt.Sprintf("[%s] started", label))
}

// OnTaskLog logs every complete line and keeps the partial tail.
func (r *LogReporter) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	task.buf.Write(data)
	for {
		i := bytes.IndexByte(task.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		r.logLineLocked(task.label, task.buf.Next(i+1))
	}
}

// OnTaskComplete flushes remaining output and logs the outcome.
func (r *LogReporter) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	r.flushLocked(task)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	if err != nil {
		r.logger.Warn(fmt.Sprintf("[%s] failed after %v: %v", task.label, duration, err))
	} else {
		r.logger.Info(fmt.Sprintf("[%s] completed in %v", task.label, duration))
	}

	delete(r.tasks, spanID)
}

// flushLocked must be called with r.mu held.
func (r *LogReporter) flushLocked(task *taskState) {
	if task.buf.Len() > 0 {
		r.logLineLocked(task.label, task.buf.Bytes())
		task.buf.Reset()
	}
}

// logLineLocked must be called with r.mu held.
func (r *LogReporter) logLineLocked(label string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	r.logger.Info(fmt.Sprintf("[%s] %s", label, line))
}
