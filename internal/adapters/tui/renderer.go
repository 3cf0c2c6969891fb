package tui

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/comfortmap/internal/adapters/telemetry"
	"go.trai.ch/comfortmap/internal/core/ports"
)

// Renderer runs the Bubble Tea model as a ports.Reporter. It is also a
// ports.TerminalSizer reporting the size of the log pane.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stopErr   error

	mu          sync.Mutex
	size        ports.TerminalSize
	sized       bool
	subscribers map[int]chan ports.TerminalSize
	nextSub     int
}

// NewRenderer creates a renderer for model. It takes over model.OnResize.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	r := &Renderer{
		model:       model,
		errCh:       make(chan error, 1),
		subscribers: make(map[int]chan ports.TerminalSize),
	}
	model.OnResize = r.resize
	r.program = tea.NewProgram(model, opts...)
	return r
}

// Start launches the program in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	r.startOnce.Do(func() {
		r.started = true
		go func() {
			_, err := r.program.Run()
			r.errCh <- err
		}()
	})
	return nil
}

// Stop quits the program and waits for it to restore the terminal.
func (r *Renderer) Stop() error {
	r.stopOnce.Do(func() {
		if !r.started {
			return
		}
		r.program.Quit()
		err := <-r.errCh
		if errors.Is(err, tea.ErrProgramKilled) {
			err = nil
		}
		r.stopErr = err
	})
	return r.stopErr
}

// OnPlanEmit resets the list to the planned jobs.
func (r *Renderer) OnPlanEmit(names []string) {
	r.program.Send(telemetry.MsgInitTasks{Tasks: names})
}

// OnTaskStart forwards span starts to the model.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(telemetry.MsgTaskStart{
		SpanID:    spanID,
		ParentID:  parentID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnTaskLog forwards tool output to the model.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.program.Send(telemetry.MsgTaskLog{
		SpanID: spanID,
		Data:   bytes.Clone(data),
	})
}

// OnTaskComplete forwards span ends to the model.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(telemetry.MsgTaskComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Err:     err,
	})
}

// TerminalSize returns the size of the log pane once the window has been laid out.
func (r *Renderer) TerminalSize() (ports.TerminalSize, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size, r.sized
}

// SubscribeResize returns a channel receiving later log pane sizes. Only the
// latest undelivered size is kept.
func (r *Renderer) SubscribeResize() (<-chan ports.TerminalSize, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan ports.TerminalSize, 1)
	r.subscribers[id] = ch

	return ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
	}
}

func (r *Renderer) resize(rows, cols int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := ports.TerminalSize{Rows: rows, Cols: cols}
	if r.sized && r.size == size {
		return
	}
	r.size = size
	r.sized = true

	for _, ch := range r.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- size
	}
}
