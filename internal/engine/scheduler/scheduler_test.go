package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/comfortmap/internal/core/ports"
	"go.trai.ch/comfortmap/internal/core/ports/mocks"
	"go.trai.ch/comfortmap/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

// setupSchedulerTest creates a scheduler with an optimistic tracer mock.
func setupSchedulerTest(t *testing.T) (*scheduler.Scheduler, *mocks.MockTracer, *mocks.MockSpan) {
	t.Helper()
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()

	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()

	return scheduler.NewScheduler(tracer), tracer, span
}

func jobs(names ...string) []*domain.Job {
	out := make([]*domain.Job, len(names))
	for i, name := range names {
		out[i] = &domain.Job{Name: name, Task: "tcp", WorkDir: "/work/" + name}
	}
	return out
}

func TestScheduler_Run_AllSucceed(t *testing.T) {
	s, tracer, _ := setupSchedulerTest(t)
	tracer.EXPECT().EmitPlan(gomock.Any(), []string{"a", "b", "c"}).Times(1)

	var mu sync.Mutex
	var ran []string
	err := s.Run(context.Background(), jobs("a", "b", "c"), 2, func(_ context.Context, job *domain.Job) error {
		mu.Lock()
		defer mu.Unlock()
		ran = append(ran, job.Name)
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ran)

	for _, name := range []string{"a", "b", "c"} {
		status, ok := s.Status(name)
		require.True(t, ok)
		assert.Equal(t, scheduler.StatusCompleted, status)
	}
	_, ok := s.Status("missing")
	assert.False(t, ok)
}

func TestScheduler_Run_RespectsParallelism(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, tracer, _ := setupSchedulerTest(t)
		tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

		var active, peak atomic.Int32
		err := s.Run(t.Context(), jobs("a", "b", "c", "d", "e"), 2, func(context.Context, *domain.Job) error {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Second)
			active.Add(-1)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, int32(2), peak.Load())
	})
}

func TestScheduler_Run_FailureSkipsPendingJobs(t *testing.T) {
	s, tracer, _ := setupSchedulerTest(t)
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

	var ran []string
	err := s.Run(context.Background(), jobs("a", "b"), 1, func(_ context.Context, job *domain.Job) error {
		ran = append(ran, job.Name)
		if job.Name == "a" {
			return domain.ErrTaskExecutionFailed
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, ran)

	assert.True(t, errors.Is(err, domain.ErrJobFailed))
	assert.True(t, errors.Is(err, domain.ErrTaskExecutionFailed))

	var jobErr *scheduler.JobError
	require.True(t, errors.As(err, &jobErr))
	assert.Equal(t, "a", jobErr.Job)
	assert.Equal(t, map[string]any{"job": "a", "task": "tcp"}, jobErr.Metadata())
	assert.Equal(t, domain.ErrJobFailed.Error(), jobErr.Message())

	status, _ := s.Status("a")
	assert.Equal(t, scheduler.StatusFailed, status)
	status, _ = s.Status("b")
	assert.Equal(t, scheduler.StatusSkipped, status)
}

func TestScheduler_Run_StartedJobsFinishAfterFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, tracer, _ := setupSchedulerTest(t)
		tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

		var slowFinished atomic.Bool
		err := s.Run(t.Context(), jobs("fast-fail", "slow"), 2, func(_ context.Context, job *domain.Job) error {
			if job.Name == "fast-fail" {
				time.Sleep(time.Second)
				return domain.ErrTaskExecutionFailed
			}
			time.Sleep(time.Minute)
			slowFinished.Store(true)
			return nil
		})
		require.Error(t, err)
		assert.True(t, slowFinished.Load())

		status, _ := s.Status("slow")
		assert.Equal(t, scheduler.StatusCompleted, status)
	})
}

func TestScheduler_Run_CollectsEveryFailure(t *testing.T) {
	s, tracer, _ := setupSchedulerTest(t)
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		wg.Wait()
		close(started)
	}()

	err := s.Run(context.Background(), jobs("a", "b"), 2, func(context.Context, *domain.Job) error {
		wg.Done()
		<-started
		return domain.ErrOutputMissing
	})
	require.Error(t, err)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 2)
}

func TestScheduler_Run_Canceled(t *testing.T) {
	s, tracer, _ := setupSchedulerTest(t)
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, jobs("a"), 1, func(context.Context, *domain.Job) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, errors.Is(err, context.Canceled))

	status, _ := s.Status("a")
	assert.Equal(t, scheduler.StatusSkipped, status)
}

func TestScheduler_Run_SpanPerJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().EmitPlan(gomock.Any(), []string{"office"})
	tracer.EXPECT().Start(gomock.Any(), "office", gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, opts ...ports.SpanOption) (context.Context, ports.Span) {
			var cfg ports.SpanConfig
			for _, opt := range opts {
				opt(&cfg)
			}
			assert.Equal(t, "pmv-map", cfg.Attributes["comfortmap.task"])
			return ctx, span
		},
	)
	span.EXPECT().RecordError(domain.ErrInputNotFound)
	span.EXPECT().End()

	s := scheduler.NewScheduler(tracer)
	job := &domain.Job{Name: "office", Task: "pmv-map"}
	err := s.Run(context.Background(), []*domain.Job{job}, 0, func(context.Context, *domain.Job) error {
		return domain.ErrInputNotFound
	})
	require.Error(t, err)
}
