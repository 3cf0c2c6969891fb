package app_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/comfortmap/internal/adapters/catalog"
	"go.trai.ch/comfortmap/internal/adapters/detector"
	"go.trai.ch/comfortmap/internal/app"
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/comfortmap/internal/core/ports"
	"go.trai.ch/comfortmap/internal/core/ports/mocks"
	"go.trai.ch/comfortmap/internal/engine/render"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var t0 = time.Date(2026, 6, 21, 8, 0, 0, 0, time.UTC)

var tcpBindings = domain.Bindings{
	"condition_csv":     "condition.csv",
	"enclosure_info":    "enclosure_info.json",
	"occ_schedule_json": "occ_schedule.json",
}

type appTestMocks struct {
	loader    *mocks.MockConfigLoader
	stager    *mocks.MockStager
	executor  *mocks.MockExecutor
	collector *mocks.MockCollector
	receipts  *mocks.MockReceiptStore
	logger    *mocks.MockLogger
	reporter  *mocks.MockReporter

	mu    sync.Mutex
	spans []string
}

func (m *appTestMocks) startedSpans() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.spans...)
}

// setupAppTest wires the real catalog and renderer with mocks for every side effect.
func setupAppTest(t *testing.T) (*app.App, *appTestMocks) {
	t.Helper()
	// Auto output mode stays linear under an interactive go test.
	t.Setenv("CI", "true")
	ctrl := gomock.NewController(t)
	m := &appTestMocks{
		loader:    mocks.NewMockConfigLoader(ctrl),
		stager:    mocks.NewMockStager(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		collector: mocks.NewMockCollector(ctrl),
		receipts:  mocks.NewMockReceiptStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		reporter:  mocks.NewMockReporter(ctrl),
	}

	registry, err := catalog.NewBuiltin()
	require.NoError(t, err)

	m.reporter.EXPECT().Start(gomock.Any()).Return(nil).AnyTimes()
	m.reporter.EXPECT().Stop().Return(nil).AnyTimes()
	m.reporter.EXPECT().OnPlanEmit(gomock.Any()).AnyTimes()
	m.reporter.EXPECT().OnTaskLog(gomock.Any(), gomock.Any()).AnyTimes()
	m.reporter.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.reporter.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Do(
		func(_, _, name string, _ time.Time) {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.spans = append(m.spans, name)
		},
	).AnyTimes()

	a := app.New(
		m.loader,
		registry,
		render.NewRenderer(),
		m.stager,
		m.executor,
		m.collector,
		m.receipts,
		m.logger,
		m.reporter,
	).WithClock(func() time.Time { return t0 })

	return a, m
}

func notFound(dir string) error {
	return zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no project file"), "cwd", dir)
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr), "expected zerr.Error, got %T", err)
	return zErr.Metadata()
}

func TestApp_ListAndDescribe(t *testing.T) {
	a, _ := setupAppTest(t)

	list := a.List()
	require.Len(t, list, 9)
	assert.Equal(t, "pmv-map", list[0].Name)
	assert.Equal(t, "tcp", list[8].Name)

	d, err := a.Describe("utci-map")
	require.NoError(t, err)
	assert.Equal(t, "utci-map", d.Name)

	_, err = a.Describe("pmv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownOperation))
}

func TestApp_Render_UsesDiscoveredInputs(t *testing.T) {
	a, m := setupAppTest(t)
	workDir := t.TempDir()

	m.loader.EXPECT().Load(workDir).Return(nil, notFound(workDir))
	m.stager.EXPECT().Discover(gomock.Any(), workDir).Return(domain.Bindings{
		"condition_csv":  "condition.csv",
		"enclosure_info": "enclosure_info.json",
	})

	inv, err := a.Render(context.Background(), "tcp", domain.Bindings{"occ_schedule_json": "occ_schedule.json"},
		app.RenderOptions{WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, workDir, inv.WorkDir)
	assert.Equal(t, domain.TerminalPipe, inv.Terminal)
	assert.Equal(t,
		"ladybug-comfort map tcp condition.csv enclosure_info.json --schedule schedule.txt --occ-schedule-json occ_schedule.json --folder output",
		inv.Line())
}

func TestApp_Render_AppliesProject(t *testing.T) {
	a, m := setupAppTest(t)
	workDir := t.TempDir()

	m.loader.EXPECT().Load(workDir).Return(&domain.Project{
		Root:     workDir,
		Tool:     "/opt/ladybug/bin/ladybug-comfort",
		Terminal: domain.TerminalPTY,
	}, nil)
	m.stager.EXPECT().Discover(gomock.Any(), workDir).Return(tcpBindings)

	inv, err := a.Render(context.Background(), "tcp", nil, app.RenderOptions{WorkDir: workDir})
	require.NoError(t, err)
	assert.Equal(t, "/opt/ladybug/bin/ladybug-comfort", inv.Argv()[0])
	assert.Equal(t, domain.TerminalPTY, inv.Terminal)
}

func TestApp_Render_Errors(t *testing.T) {
	t.Run("unknown task", func(t *testing.T) {
		a, _ := setupAppTest(t)
		_, err := a.Render(context.Background(), "nope", nil, app.RenderOptions{})
		assert.True(t, errors.Is(err, domain.ErrUnknownOperation))
	})

	t.Run("broken project file", func(t *testing.T) {
		a, m := setupAppTest(t)
		workDir := t.TempDir()
		m.loader.EXPECT().Load(workDir).Return(nil, zerr.Wrap(domain.ErrConfigParseFailed, "bad yaml"))

		_, err := a.Render(context.Background(), "tcp", nil, app.RenderOptions{WorkDir: workDir})
		assert.True(t, errors.Is(err, domain.ErrConfigParseFailed))
	})

	t.Run("missing input", func(t *testing.T) {
		a, m := setupAppTest(t)
		workDir := t.TempDir()
		m.loader.EXPECT().Load(workDir).Return(nil, notFound(workDir))
		m.stager.EXPECT().Discover(gomock.Any(), workDir).Return(nil)

		_, err := a.Render(context.Background(), "tcp", nil, app.RenderOptions{WorkDir: workDir})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingRequiredInput))
		assert.Equal(t, "condition_csv, enclosure_info, occ_schedule_json", metadata(t, err)["inputs"])
	})
}

func TestApp_Exec_Success(t *testing.T) {
	a, m := setupAppTest(t)
	workDir := t.TempDir()
	values := domain.Bindings{"condition_csv": "/sim/condition.csv"}
	artifacts := []domain.Artifact{
		{Name: "tcp", Kind: domain.KindFile, Path: filepath.Join(workDir, "output", "tcp.csv"), Size: 3, Digest: "0000000000000001"},
		{Name: "hsp", Kind: domain.KindFile, Path: filepath.Join(workDir, "output", "hsp.csv"), Size: 3, Digest: "0000000000000002"},
		{Name: "csp", Kind: domain.KindFile, Path: filepath.Join(workDir, "output", "csp.csv"), Size: 3, Digest: "0000000000000003"},
	}

	m.loader.EXPECT().Load(workDir).Return(nil, notFound(workDir))
	gomock.InOrder(
		m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), values, workDir).Return(tcpBindings, nil),
		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv *domain.Invocation, _ []string, stdout, _ io.Writer) error {
				assert.Equal(t, "tcp", inv.Task)
				assert.Equal(t, workDir, inv.WorkDir)
				assert.Equal(t, domain.TerminalPipe, inv.Terminal)
				_, err := stdout.Write([]byte("Computing TCP\n"))
				return err
			},
		),
		m.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), workDir).Return(artifacts, nil),
		m.receipts.EXPECT().Put(workDir, gomock.Any()).DoAndReturn(
			func(_ string, r *domain.Receipt) (string, error) {
				assert.Equal(t, "tcp", r.Task)
				assert.Equal(t, []string{
					"ladybug-comfort", "map", "tcp", "condition.csv", "enclosure_info.json",
					"--schedule", "schedule.txt", "--occ-schedule-json", "occ_schedule.json", "--folder", "output",
				}, r.Argv)
				assert.Equal(t, artifacts, r.Artifacts)
				assert.Equal(t, t0, r.StartedAt)
				return filepath.Join(workDir, ".comfortmap", "receipts", "id.json"), nil
			},
		),
	)

	result, err := a.Exec(context.Background(), "tcp", values, app.ExecOptions{WorkDir: workDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, ".comfortmap", "receipts", "id.json"), result.ReceiptPath)
	assert.Equal(t, 0, result.Receipt.ExitCode)
	assert.Len(t, result.Receipt.Artifacts, 3)

	assert.Equal(t, []string{"tcp", "stage", "render", "execute", "collect", "record"}, m.startedSpans())
}

func TestApp_Exec_ProjectEnvironment(t *testing.T) {
	a, m := setupAppTest(t)
	workDir := t.TempDir()

	m.loader.EXPECT().Load(workDir).Return(&domain.Project{
		Root:        workDir,
		Tool:        "lbc",
		Environment: map[string]string{"PYTHONUNBUFFERED": "1", "LADYBUG_HOME": "/opt/lb"},
	}, nil)
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), workDir).Return(tcpBindings, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), []string{"LADYBUG_HOME=/opt/lb", "PYTHONUNBUFFERED=1"}, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inv *domain.Invocation, _ []string, _, _ io.Writer) error {
			assert.Equal(t, "lbc", inv.Program)
			return nil
		},
	)
	m.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), workDir).Return(nil, nil)
	m.receipts.EXPECT().Put(workDir, gomock.Any()).Return("receipt.json", nil)

	_, err := a.Exec(context.Background(), "tcp", nil, app.ExecOptions{WorkDir: workDir})
	require.NoError(t, err)
}

func TestApp_Exec_ExecutionFailureStopsPipeline(t *testing.T) {
	a, m := setupAppTest(t)
	workDir := t.TempDir()

	execErr := zerr.With(zerr.Wrap(domain.ErrTaskExecutionFailed, "command failed"), "exit_code", 2)
	m.loader.EXPECT().Load(workDir).Return(nil, notFound(workDir))
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), workDir).Return(tcpBindings, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(execErr)

	result, err := a.Exec(context.Background(), "tcp", nil, app.ExecOptions{WorkDir: workDir})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrTaskExecutionFailed))
	assert.Equal(t, 2, metadata(t, err)["exit_code"])

	assert.Equal(t, []string{"tcp", "stage", "render", "execute"}, m.startedSpans())
}

func TestApp_Exec_StageFailure(t *testing.T) {
	a, m := setupAppTest(t)
	workDir := t.TempDir()

	m.loader.EXPECT().Load(workDir).Return(nil, notFound(workDir))
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), workDir).
		Return(nil, zerr.Wrap(domain.ErrInvalidExtension, "bad extension"))

	_, err := a.Exec(context.Background(), "tcp", domain.Bindings{"condition_csv": "x.txt"}, app.ExecOptions{WorkDir: workDir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidExtension))
}

func TestApp_Exec_JSONFormatReportsThroughLogger(t *testing.T) {
	t.Setenv("CI", "true")

	a, m := setupAppTest(t)
	workDir := t.TempDir()

	format, err := a.SetLogFormat("json")
	require.NoError(t, err)
	assert.Equal(t, detector.FormatJSON, format)

	m.logger.EXPECT().Info("planning to run 1 task(s): air-map")
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.loader.EXPECT().Load(workDir).Return(nil, notFound(workDir))
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), workDir).Return(domain.Bindings{
		"result_sql":     "result.sql",
		"enclosure_info": "enclosure_info.json",
		"epw":            "weather.epw",
	}, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), workDir).Return(nil, nil)
	m.receipts.EXPECT().Put(workDir, gomock.Any()).Return("receipt.json", nil)

	_, err = a.Exec(context.Background(), "air-map", nil, app.ExecOptions{WorkDir: workDir})
	require.NoError(t, err)
	assert.Empty(t, m.startedSpans(), "injected reporter is bypassed in JSON mode")
}

func TestApp_SetLogFormat_RejectsUnknown(t *testing.T) {
	a, _ := setupAppTest(t)

	_, err := a.SetLogFormat("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidLogFormat))
	assert.Equal(t, "bogus", metadata(t, err)["log_format"])
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(cwd))
	})
}

func TestApp_RunJobs(t *testing.T) {
	a, m := setupAppTest(t)
	root := t.TempDir()
	chdir(t, root)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	project := &domain.Project{
		Root: root,
		Jobs: map[string]*domain.Job{
			"office-tcp": {
				Name:    "office-tcp",
				Task:    "tcp",
				WorkDir: filepath.Join(root, "runs", "office-tcp"),
				Inputs:  domain.Bindings{"condition_csv": "sim/condition.csv", "enclosure_info": "/abs/enclosure_info.json"},
			},
			"lobby-tcp": {
				Name:    "lobby-tcp",
				Task:    "tcp",
				WorkDir: filepath.Join(root, "runs", "lobby-tcp"),
			},
		},
	}

	m.loader.EXPECT().Load(cwd).Return(project, nil)
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), domain.Bindings{
		"condition_csv":  filepath.Join(root, "sim", "condition.csv"),
		"enclosure_info": "/abs/enclosure_info.json",
	}, filepath.Join(root, "runs", "office-tcp")).Return(tcpBindings, nil)
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), domain.Bindings{}, filepath.Join(root, "runs", "lobby-tcp")).
		Return(tcpBindings, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	m.receipts.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
		func(workDir string, _ *domain.Receipt) (string, error) {
			return filepath.Join(workDir, "receipt.json"), nil
		},
	).Times(2)

	results, err := a.RunJobs(context.Background(), []string{"office-tcp", "lobby-tcp", "office-tcp"}, app.RunOptions{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "office-tcp", results[0].Job)
	assert.Equal(t, filepath.Join(root, "runs", "office-tcp", "receipt.json"), results[0].ReceiptPath)
	assert.Equal(t, "lobby-tcp", results[1].Job)

	assert.DirExists(t, filepath.Join(root, "runs", "lobby-tcp"))
}

func TestApp_RunJobs_PartialFailure(t *testing.T) {
	a, m := setupAppTest(t)
	root := t.TempDir()
	chdir(t, root)

	project := &domain.Project{
		Root: root,
		Jobs: map[string]*domain.Job{
			"good": {Name: "good", Task: "tcp", WorkDir: filepath.Join(root, "good")},
			"bad":  {Name: "bad", Task: "tcp", WorkDir: filepath.Join(root, "bad")},
		},
	}

	m.loader.EXPECT().Load(gomock.Any()).Return(project, nil)
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), filepath.Join(root, "good")).Return(tcpBindings, nil)
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), filepath.Join(root, "bad")).
		Return(nil, zerr.Wrap(domain.ErrInputNotFound, "source does not exist"))
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.receipts.EXPECT().Put(gomock.Any(), gomock.Any()).Return("receipt.json", nil)

	results, err := a.RunJobs(context.Background(), []string{"good", "bad"}, app.RunOptions{Jobs: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrJobFailed))
	assert.True(t, errors.Is(err, domain.ErrInputNotFound))

	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].Job)
}

func TestApp_RunJobs_Errors(t *testing.T) {
	project := &domain.Project{
		Root: "/project",
		Jobs: map[string]*domain.Job{
			"office": {Name: "office", Task: "pmv-map", WorkDir: "/project/office"},
			"typo":   {Name: "typo", Task: "pmv", WorkDir: "/project/typo"},
		},
	}

	t.Run("no jobs", func(t *testing.T) {
		a, _ := setupAppTest(t)
		_, err := a.RunJobs(context.Background(), nil, app.RunOptions{})
		assert.True(t, errors.Is(err, domain.ErrNoJobsSpecified))
	})

	t.Run("no project file", func(t *testing.T) {
		a, m := setupAppTest(t)
		m.loader.EXPECT().Load(gomock.Any()).Return(nil, notFound("/"))
		_, err := a.RunJobs(context.Background(), []string{"office"}, app.RunOptions{})
		assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
	})

	t.Run("unknown job", func(t *testing.T) {
		a, m := setupAppTest(t)
		m.loader.EXPECT().Load(gomock.Any()).Return(project, nil)
		_, err := a.RunJobs(context.Background(), []string{"lobby"}, app.RunOptions{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrJobNotFound))
		meta := metadata(t, err)
		assert.Equal(t, "lobby", meta["job"])
		assert.Equal(t, "office, typo", meta["available"])
	})

	t.Run("unknown task", func(t *testing.T) {
		a, m := setupAppTest(t)
		m.loader.EXPECT().Load(gomock.Any()).Return(project, nil)
		_, err := a.RunJobs(context.Background(), []string{"office", "typo"}, app.RunOptions{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnknownOperation))
		assert.Equal(t, "typo", metadata(t, err)["job"])
	})
}

func TestApp_RunJobs_TUI(t *testing.T) {
	a, m := setupAppTest(t)
	a.WithTeaOptions(
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	root := t.TempDir()
	chdir(t, root)

	project := &domain.Project{
		Root: root,
		Jobs: map[string]*domain.Job{
			"office": {Name: "office", Task: "tcp", WorkDir: filepath.Join(root, "office")},
		},
	}

	m.loader.EXPECT().Load(gomock.Any()).Return(project, nil)
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tcpBindings, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *domain.Invocation, _ []string, stdout, _ io.Writer) error {
			_, ok := ports.TerminalSizerFrom(ctx)
			assert.True(t, ok, "the TUI sizes pseudo-terminals")
			_, err := stdout.Write([]byte("Computing TCP\n"))
			return err
		},
	)
	m.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.receipts.EXPECT().Put(gomock.Any(), gomock.Any()).Return("receipt.json", nil)

	results, err := a.RunJobs(context.Background(), []string{"office"}, app.RunOptions{OutputMode: "tui"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, m.startedSpans(), "injected reporter is bypassed by the TUI")
}

func TestApp_RunJobs_LinearHasNoTerminalSizer(t *testing.T) {
	a, m := setupAppTest(t)
	root := t.TempDir()
	chdir(t, root)

	project := &domain.Project{
		Root: root,
		Jobs: map[string]*domain.Job{
			"office": {Name: "office", Task: "tcp", WorkDir: filepath.Join(root, "office")},
		},
	}

	m.loader.EXPECT().Load(gomock.Any()).Return(project, nil)
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tcpBindings, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *domain.Invocation, _ []string, _, _ io.Writer) error {
			_, ok := ports.TerminalSizerFrom(ctx)
			assert.False(t, ok)
			return nil
		},
	)
	m.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.receipts.EXPECT().Put(gomock.Any(), gomock.Any()).Return("receipt.json", nil)

	_, err := a.RunJobs(context.Background(), []string{"office"}, app.RunOptions{OutputMode: "linear"})
	require.NoError(t, err)
	assert.Equal(t, []string{"office", "stage", "render", "execute", "collect", "record"}, m.startedSpans())
}

func TestApp_RunJobs_InvalidOutputMode(t *testing.T) {
	a, m := setupAppTest(t)
	root := t.TempDir()
	chdir(t, root)

	m.loader.EXPECT().Load(gomock.Any()).Return(&domain.Project{
		Root: root,
		Jobs: map[string]*domain.Job{
			"office": {Name: "office", Task: "tcp", WorkDir: filepath.Join(root, "office")},
		},
	}, nil)

	_, err := a.RunJobs(context.Background(), []string{"office"}, app.RunOptions{OutputMode: "fancy"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidOutputMode))
}
