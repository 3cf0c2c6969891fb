// Package linear provides a synchronous, line-buffered progress reporter for
// terminals and CI logs.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/comfortmap/internal/ui/output"
	"go.trai.ch/comfortmap/internal/ui/style"
)

// Reporter implements ports.Reporter with chronological, prefixed log lines.
// Progress goes to stderr and tool output to stdout.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu    sync.Mutex
	tasks map[string]*taskState
}

type taskState struct {
	label     string
	startTime time.Time
	buf       bytes.Buffer
}

// NewReporter creates a new Reporter. Nil writers default to os.Stdout and os.Stderr.
func NewReporter(stdout, stderr io.Writer) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Reporter{
		stdout: stdout,
		stderr: stderr,
		output: output.NewANSI(stderr),
		tasks:  make(map[string]*taskState),
	}
}

// Start is a no-op; the reporter is synchronous.
func (r *Reporter) Start(_ context.Context) error {
	return nil
}

// Stop flushes partial lines of tasks that never completed.
func (r *Reporter) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		r.flushLocked(task)
	}
	return nil
}

// OnPlanEmit prints the work about to run.
func (r *Reporter) OnPlanEmit(names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning to run %d task(s): %s\n", len(names), strings.Join(names, ", "))
}

// OnTaskStart prints a start line. Child spans are labelled parent/child.
func (r *Reporter) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := name
	if parent, ok := r.tasks[parentID]; ok {
		label = parent.label + "/" + name
	}
	r.tasks[spanID] = &taskState{label: label, startTime: startTime}

	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(label))
}

// OnTaskLog prints complete lines with the task prefix and keeps the partial tail.
func (r *Reporter) OnTaskLog(spanID string, data []byte) {
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
		line := task.buf.Next(i + 1)
		r.printLineLocked(task.label, line)
	}
}

// OnTaskComplete flushes remaining output and prints the outcome.
func (r *Reporter) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	r.flushLocked(task)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	prefix := r.prefix(task.label)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(r.output.Color(string(style.Red))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
	} else {
		symbol := r.output.String(style.Check).Foreground(r.output.Color(string(style.Green))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
	}

	delete(r.tasks, spanID)
}

func (r *Reporter) prefix(label string) string {
	return r.output.String("[" + label + "]").Faint().String()
}

// flushLocked prints a buffered partial line. Must be called with r.mu held.
func (r *Reporter) flushLocked(task *taskState) {
	if task.buf.Len() > 0 {
		r.printLineLocked(task.label, task.buf.Bytes())
		task.buf.Reset()
	}
}

// printLineLocked must be called with r.mu held.
func (r *Reporter) printLineLocked(label string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", label, line)
}
