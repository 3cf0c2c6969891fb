// Package scheduler runs project jobs with bounded parallelism.
package scheduler

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/comfortmap/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// JobStatus represents the status of a job.
type JobStatus string

const (
	// StatusPending indicates the job is waiting to be executed.
	StatusPending JobStatus = "Pending"
	// StatusRunning indicates the job is currently executing.
	StatusRunning JobStatus = "Running"
	// StatusCompleted indicates the job has finished successfully.
	StatusCompleted JobStatus = "Completed"
	// StatusFailed indicates the job execution failed.
	StatusFailed JobStatus = "Failed"
	// StatusSkipped indicates the job never started because an earlier job failed or the run was canceled.
	StatusSkipped JobStatus = "Skipped"
)

// RunFunc executes one job. The context carries the job's span.
type RunFunc func(ctx context.Context, job *domain.Job) error

// Scheduler manages the execution of jobs.
type Scheduler struct {
	tracer ports.Tracer

	mu        sync.RWMutex
	jobStatus map[string]JobStatus
}

// NewScheduler creates a new Scheduler reporting through tracer.
func NewScheduler(tracer ports.Tracer) *Scheduler {
	return &Scheduler{
		tracer:    tracer,
		jobStatus: make(map[string]JobStatus),
	}
}

// Status returns the status of the named job in the latest run.
func (s *Scheduler) Status(name string) (JobStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.jobStatus[name]
	return status, ok
}

func (s *Scheduler) initJobStatuses(jobs []*domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.jobStatus)
	for _, job := range jobs {
		s.jobStatus[job.Name] = StatusPending
	}
}

func (s *Scheduler) updateStatus(name string, status JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobStatus[name] = status
}

// Run executes the jobs with at most parallelism running at once.
// A parallelism of zero or less uses the number of CPUs.
//
// Jobs run independently: a failure does not cancel jobs already running,
// but jobs that have not started yet are skipped. The returned error joins
// one *JobError per failed job and, if the run was canceled, the context error.
func (s *Scheduler) Run(ctx context.Context, jobs []*domain.Job, parallelism int, run RunFunc) error {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	names := make([]string, len(jobs))
	for i, job := range jobs {
		names[i] = job.Name
	}
	s.tracer.EmitPlan(ctx, names)
	s.initJobStatuses(jobs)

	var (
		failed atomic.Bool
		errs   = make([]error, len(jobs))
	)

	var g errgroup.Group
	g.SetLimit(parallelism)

	for i, job := range jobs {
		g.Go(func() error {
			if failed.Load() || ctx.Err() != nil {
				s.updateStatus(job.Name, StatusSkipped)
				return nil
			}

			s.updateStatus(job.Name, StatusRunning)
			if err := s.executeJob(ctx, job, run); err != nil {
				failed.Store(true)
				s.updateStatus(job.Name, StatusFailed)
				errs[i] = &JobError{Job: job.Name, Task: job.Task, Err: err}
				return nil
			}

			s.updateStatus(job.Name, StatusCompleted)
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(errs...)
	if ctx.Err() != nil {
		err = errors.Join(err, ctx.Err())
	}
	return err
}

func (s *Scheduler) executeJob(ctx context.Context, job *domain.Job, run RunFunc) error {
	ctx, span := s.tracer.Start(ctx, job.Name, ports.WithAttribute("comfortmap.task", job.Task))
	defer span.End()

	if err := run(ctx, job); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// JobError reports the failure of one job. It matches domain.ErrJobFailed
// and unwraps to the cause.
type JobError struct {
	Job  string
	Task string
	Err  error
}

// Error returns the job name followed by the cause.
func (e *JobError) Error() string {
	return "job " + e.Job + " failed: " + e.Err.Error()
}

// Unwrap returns the cause.
func (e *JobError) Unwrap() error {
	return e.Err
}

// Is reports whether target is domain.ErrJobFailed.
func (e *JobError) Is(target error) bool {
	return target == domain.ErrJobFailed
}

// Message returns the error's own message without the cause.
func (e *JobError) Message() string {
	return domain.ErrJobFailed.Error()
}

// Metadata returns the job and task names.
func (e *JobError) Metadata() map[string]any {
	return map[string]any{"job": e.Job, "task": e.Task}
}
