package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/comfortmap/internal/adapters/telemetry"
	"go.trai.ch/comfortmap/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_ReportsSpanLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	var rootID string
	gomock.InOrder(
		reporter.EXPECT().OnTaskStart(gomock.Any(), "", "office-tcp", gomock.Any()).
			Do(func(spanID, _, _ string, _ any) { rootID = spanID }),
		reporter.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), "execute", gomock.Any()).
			Do(func(_, parentID, _ string, _ any) { assert.Equal(t, rootID, parentID) }),
		reporter.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil),
		reporter.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil),
	)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(reporter)))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := tp.Tracer("test")

	ctx, root := tracer.Start(context.Background(), "office-tcp")
	_, child := tracer.Start(ctx, "execute")
	child.End()
	root.End()
}

func TestBridge_ReportsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	reporter.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), "collect", gomock.Any())
	reporter.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ any, err error) {
			require.Error(t, err)
			assert.Equal(t, "declared output missing", err.Error())
		})

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(reporter)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "collect")
	span.SetStatus(codes.Error, "declared output missing")
	span.End()
}

func TestBridge_NilReporter(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	require.NotPanics(t, func() {
		_, span := tp.Tracer("test").Start(context.Background(), "render")
		span.End()
	})
}

func TestBridge_FlushAndShutdown(t *testing.T) {
	bridge := telemetry.NewBridge(nil)
	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}
