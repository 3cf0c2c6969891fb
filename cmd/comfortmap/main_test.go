package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/comfortmap/internal/adapters/catalog"
	"go.trai.ch/comfortmap/internal/app"
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/comfortmap/internal/core/ports/mocks"
	"go.trai.ch/comfortmap/internal/engine/render"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
}

func newTestApp(t *testing.T) (*app.App, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	registry, err := catalog.NewBuiltin()
	require.NoError(t, err)

	m := &testMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}

	application := app.New(
		m.loader,
		registry,
		render.NewRenderer(),
		mocks.NewMockStager(ctrl),
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockCollector(ctrl),
		mocks.NewMockReceiptStore(ctrl),
		m.logger,
		mocks.NewMockReporter(ctrl),
	)
	return application, m
}

func providerFor(a *app.App, m *testMocks) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: m.logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	application, m := newTestApp(t)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, io.Discard, providerFor(application, m))
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "comfortmap version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, io.Discard, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	application, m := newTestApp(t)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.True(t, errors.Is(err, domain.ErrUnknownOperation))
	}).Times(1)

	exitCode := run(context.Background(), []string{"describe", "pmv"}, io.Discard, io.Discard, providerFor(application, m))
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	application, m := newTestApp(t)
	blockCh := make(chan struct{})

	m.loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(_ string) (*domain.Project, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})
	// Allow logging of the error when context is canceled
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"run", "office"}, io.Discard, io.Discard, providerFor(application, m))
	}()

	// Wait a bit to ensure run() reaches Load()
	time.Sleep(100 * time.Millisecond)

	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
