// Package app implements the application layer for comfortmap.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/comfortmap/internal/adapters/detector"
	"go.trai.ch/comfortmap/internal/adapters/linear"
	"go.trai.ch/comfortmap/internal/adapters/telemetry"
	"go.trai.ch/comfortmap/internal/adapters/tui"
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/comfortmap/internal/core/ports"
	"go.trai.ch/comfortmap/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// TracerName is the OpenTelemetry instrumentation name.
const TracerName = "comfortmap"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	registry     ports.Registry
	renderer     ports.CommandRenderer
	stager       ports.Stager
	executor     ports.Executor
	collector    ports.Collector
	receipts     ports.ReceiptStore
	logger       ports.Logger
	reporter     ports.Reporter
	watcher      ports.Watcher

	format     detector.LogFormat
	now        func() time.Time
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	registry ports.Registry,
	renderer ports.CommandRenderer,
	stager ports.Stager,
	executor ports.Executor,
	collector ports.Collector,
	receipts ports.ReceiptStore,
	log ports.Logger,
	reporter ports.Reporter,
) *App {
	return &App{
		configLoader: loader,
		registry:     registry,
		renderer:     renderer,
		stager:       stager,
		executor:     executor,
		collector:    collector,
		receipts:     receipts,
		logger:       log,
		reporter:     reporter,
		format:       detector.FormatPretty,
		now:          time.Now,
	}
}

// WithClock replaces the clock used for receipt timestamps.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithWatcher sets the file watcher used by WatchJobs.
func (a *App) WithWatcher(w ports.Watcher) *App {
	a.watcher = w
	return a
}

// WithTeaOptions adds bubbletea program options used by the TUI.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// SetLogFormat resolves the --log-format flag against the detected environment
// and switches the logger and progress reporting accordingly.
func (a *App) SetLogFormat(flag string) (detector.LogFormat, error) {
	format, err := detector.ResolveFormat(detector.DetectEnvironment(), flag)
	if err != nil {
		return a.format, err
	}
	a.format = format
	if l, ok := a.logger.(interface{ SetJSON(enable bool) }); ok {
		l.SetJSON(a.format == detector.FormatJSON)
	}
	return a.format, nil
}

// List returns every task descriptor in catalog order.
func (a *App) List() []*domain.Descriptor {
	return a.registry.List()
}

// Describe returns the descriptor with the given name.
func (a *App) Describe(name string) (*domain.Descriptor, error) {
	return a.registry.Lookup(name)
}

// RenderOptions configures Render.
type RenderOptions struct {
	// WorkDir is the directory the command would run in. Defaults to the current directory.
	WorkDir string
}

// Render renders the task's command line without staging or running anything.
// File and folder inputs already present under the working directory count as bound.
func (a *App) Render(_ context.Context, name string, values domain.Bindings, opts RenderOptions) (*domain.Invocation, error) {
	d, err := a.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	workDir, err := absDir(opts.WorkDir)
	if err != nil {
		return nil, err
	}

	project, err := a.loadOptionalProject(workDir)
	if err != nil {
		return nil, err
	}

	bindings := a.stager.Discover(d, workDir).Merge(values)
	inv, err := a.renderer.Render(d, bindings, workDir)
	if err != nil {
		return nil, err
	}
	applyProject(inv, project)

	return inv, nil
}

// ExecOptions configures Exec.
type ExecOptions struct {
	// WorkDir is the directory the command runs in. Defaults to the current directory.
	WorkDir string
	// OutputMode is auto, tui or linear. Only applies to pretty logs.
	OutputMode string
}

// Result is the outcome of one successful invocation.
type Result struct {
	Receipt *domain.Receipt
	// ReceiptPath is where the receipt was written.
	ReceiptPath string
}

// Exec stages the inputs, renders and runs the command, collects the declared
// outputs and records a receipt in the working directory.
func (a *App) Exec(ctx context.Context, name string, values domain.Bindings, opts ExecOptions) (*Result, error) {
	d, err := a.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	workDir, err := absDir(opts.WorkDir)
	if err != nil {
		return nil, err
	}

	project, err := a.loadOptionalProject(workDir)
	if err != nil {
		return nil, err
	}

	ctx, tracer, stop, err := a.startTelemetry(ctx, opts.OutputMode)
	if err != nil {
		return nil, err
	}
	defer stop()

	tracer.EmitPlan(ctx, []string{d.Name})

	var result *Result
	err = traced(ctx, tracer, d.Name, func(ctx context.Context, _ ports.Span) error {
		var execErr error
		result, execErr = a.execTask(ctx, tracer, project, d, values, workDir)
		return execErr
	}, ports.WithAttribute("comfortmap.task", d.Name))
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RunOptions configures RunJobs.
type RunOptions struct {
	// Jobs bounds how many jobs run at once. Zero or less uses the number of CPUs.
	Jobs int
	// OutputMode is auto, tui or linear. Only applies to pretty logs.
	OutputMode string
}

// JobResult is the outcome of one successful job.
type JobResult struct {
	Job string
	*Result
}

// RunJobs runs the named jobs from the project file. Independent jobs run
// concurrently. Results of successful jobs are returned in request order
// even when other jobs failed.
func (a *App) RunJobs(ctx context.Context, jobNames []string, opts RunOptions) ([]JobResult, error) {
	set, err := a.loadJobs(jobNames)
	if err != nil {
		return nil, err
	}
	return a.runJobs(ctx, set, set.jobs, opts)
}

// jobSet is a resolved selection of project jobs.
type jobSet struct {
	project     *domain.Project
	jobs        []*domain.Job
	descriptors map[string]*domain.Descriptor
}

// loadJobs loads the project from the current directory and resolves the named jobs.
func (a *App) loadJobs(jobNames []string) (*jobSet, error) {
	if len(jobNames) == 0 {
		return nil, zerr.Wrap(domain.ErrNoJobsSpecified, "pass at least one job name")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}

	project, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, err
	}

	set := &jobSet{
		project:     project,
		jobs:        make([]*domain.Job, 0, len(jobNames)),
		descriptors: make(map[string]*domain.Descriptor, len(jobNames)),
	}

	for _, name := range jobNames {
		if _, seen := set.descriptors[name]; seen {
			continue
		}

		job, ok := project.Jobs[name]
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrJobNotFound, "no such job in "+domain.ProjectFileName), "job", name)
			return nil, zerr.With(err, "available", strings.Join(project.JobNames(), ", "))
		}

		d, err := a.registry.Lookup(job.Task)
		if err != nil {
			return nil, zerr.With(err, "job", name)
		}

		set.jobs = append(set.jobs, job)
		set.descriptors[name] = d
	}

	return set, nil
}

// values returns the job's bindings with path sources resolved against the project root.
func (s *jobSet) values(job *domain.Job) domain.Bindings {
	return resolveSources(s.descriptors[job.Name], job.Inputs, s.project.Root)
}

func (a *App) runJobs(ctx context.Context, set *jobSet, jobs []*domain.Job, opts RunOptions) ([]JobResult, error) {
	ctx, tracer, stop, err := a.startTelemetry(ctx, opts.OutputMode)
	if err != nil {
		return nil, err
	}
	defer stop()

	var (
		mu      sync.Mutex
		results = make(map[string]*Result, len(jobs))
	)

	sched := scheduler.NewScheduler(tracer)
	runErr := sched.Run(ctx, jobs, opts.Jobs, func(ctx context.Context, job *domain.Job) error {
		result, err := a.execTask(ctx, tracer, set.project, set.descriptors[job.Name], set.values(job), job.WorkDir)
		if err != nil {
			return err
		}

		mu.Lock()
		results[job.Name] = result
		mu.Unlock()
		return nil
	})

	ordered := make([]JobResult, 0, len(results))
	for _, job := range jobs {
		if r, ok := results[job.Name]; ok {
			ordered = append(ordered, JobResult{Job: job.Name, Result: r})
		}
	}

	return ordered, runErr
}

// execTask runs one invocation end to end. Every step gets its own span.
func (a *App) execTask(
	ctx context.Context,
	tracer ports.Tracer,
	project *domain.Project,
	d *domain.Descriptor,
	values domain.Bindings,
	workDir string,
) (*Result, error) {
	if err := os.MkdirAll(workDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInputStageFailed, err.Error()), "work_dir", workDir)
	}

	var bindings domain.Bindings
	err := traced(ctx, tracer, "stage", func(ctx context.Context, _ ports.Span) error {
		staged, err := a.stager.Stage(ctx, d, values, workDir)
		bindings = staged
		return err
	})
	if err != nil {
		return nil, err
	}

	var inv *domain.Invocation
	err = traced(ctx, tracer, "render", func(_ context.Context, span ports.Span) error {
		rendered, err := a.renderer.Render(d, bindings, workDir)
		if err != nil {
			return err
		}
		applyProject(rendered, project)
		span.SetAttribute("comfortmap.command", rendered.Line())
		inv = rendered
		return nil
	})
	if err != nil {
		return nil, err
	}

	receipt := &domain.Receipt{
		Task:    d.Name,
		Argv:    inv.Argv(),
		WorkDir: workDir,
	}

	err = traced(ctx, tracer, "execute", func(ctx context.Context, span ports.Span) error {
		receipt.StartedAt = a.now()
		err := a.executor.Execute(ctx, inv, environ(project), span, span)
		receipt.FinishedAt = a.now()
		return err
	})
	if err != nil {
		return nil, err
	}

	err = traced(ctx, tracer, "collect", func(ctx context.Context, span ports.Span) error {
		artifacts, err := a.collector.Collect(ctx, d, workDir)
		if err != nil {
			return err
		}
		span.SetAttribute("comfortmap.artifacts", len(artifacts))
		receipt.Artifacts = artifacts
		return nil
	})
	if err != nil {
		return nil, err
	}

	var path string
	err = traced(ctx, tracer, "record", func(context.Context, ports.Span) error {
		p, err := a.receipts.Put(workDir, receipt)
		path = p
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Result{Receipt: receipt, ReceiptPath: path}, nil
}

// traced runs fn inside a span, recording its error.
func traced(
	ctx context.Context,
	tracer ports.Tracer,
	name string,
	fn func(context.Context, ports.Span) error,
	opts ...ports.SpanOption,
) error {
	ctx, span := tracer.Start(ctx, name, opts...)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (a *App) loadOptionalProject(dir string) (*domain.Project, error) {
	project, err := a.configLoader.Load(dir)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return nil, nil
	}
	return project, err
}

// activeReporter picks the progress reporter for the log format and output mode.
// Quitting the TUI calls interrupt.
func (a *App) activeReporter(ctx context.Context, mode detector.OutputMode, interrupt func()) ports.Reporter {
	switch {
	case a.format == detector.FormatJSON:
		return linear.NewLogReporter(a.logger)
	case mode == detector.ModeTUI:
		model := tui.NewModel(os.Stderr)
		model.Interrupt = interrupt
		opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(os.Stderr)}, a.teaOptions...)
		return tui.NewRenderer(&model, opts...)
	default:
		return a.reporter
	}
}

// startTelemetry installs a tracer provider that reports spans to the active
// reporter. The returned context is canceled by stop, and carries the reporter
// when it can size pseudo-terminals.
func (a *App) startTelemetry(ctx context.Context, outputMode string) (context.Context, ports.Tracer, func(), error) {
	mode, err := detector.ResolveMode(detector.DetectOutputMode(), outputMode)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	reporter := a.activeReporter(ctx, mode, cancel)
	if err := reporter.Start(ctx); err != nil {
		cancel()
		return nil, nil, nil, err
	}
	if sizer, ok := reporter.(ports.TerminalSizer); ok {
		ctx = ports.WithTerminalSizer(ctx, sizer)
	}

	tp := setupOTel(telemetry.NewBridge(reporter))
	tracer := telemetry.NewOTelTracer(TracerName).WithRenderer(reporter)

	stop := func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
		_ = reporter.Stop()
		cancel()
	}
	return ctx, tracer, stop, nil
}

// setupOTel configures the OpenTelemetry SDK with the reporter bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}

// applyProject applies the project's executable override and terminal mode.
func applyProject(inv *domain.Invocation, project *domain.Project) {
	inv.Program = project.Program(inv.Program)
	inv.Terminal = domain.TerminalPipe
	if project != nil && project.Terminal != "" {
		inv.Terminal = project.Terminal
	}
}

// environ returns the project environment as sorted KEY=VALUE entries.
func environ(project *domain.Project) []string {
	if project == nil || len(project.Environment) == 0 {
		return nil
	}

	env := make([]string, 0, len(project.Environment))
	for k, v := range project.Environment {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)
	return env
}

// resolveSources makes relative file and folder sources relative to base.
func resolveSources(d *domain.Descriptor, values domain.Bindings, base string) domain.Bindings {
	resolved := values.Merge(nil)
	for _, in := range d.Inputs {
		src, ok := values[in.Name]
		if !ok || !in.IsPath() || src == "" || filepath.IsAbs(src) {
			continue
		}
		resolved[in.Name] = filepath.Join(base, src)
	}
	return resolved
}

func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "work_dir", dir)
	}
	return abs, nil
}
