// Package shell provides an os/exec based executor for rendered invocations.
package shell

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/comfortmap/internal/core/ports"
	"go.trai.ch/zerr"
)

// Process represents a running command.
type Process interface {
	Wait() error
	Resize(rows, cols int) error
}

type pipeProcess struct {
	cmd *exec.Cmd
}

func (p *pipeProcess) Wait() error {
	return p.cmd.Wait()
}

// Resize is a no-op for piped processes.
func (p *pipeProcess) Resize(_, _ int) error {
	return nil
}

type ptyProcess struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	ioDone <-chan struct{}
}

func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()

	// The copy loop drains the pty master and closes it.
	<-p.ioDone

	return err
}

func (p *ptyProcess) Resize(rows, cols int) error {
	if !validSize(rows, cols) {
		return errors.New("terminal size out of bounds")
	}

	return pty.Setsize(p.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
		X:    0,
		Y:    0,
	})
}

// Executor implements ports.Executor using os/exec and pty.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Start launches the invocation with plain pipes, or in a PTY when the
// invocation asks for one. It returns a Process to control and wait for the command.
func (e *Executor) Start(
	ctx context.Context,
	inv *domain.Invocation,
	env []string,
	stdout, stderr io.Writer,
) (Process, error) {
	cmd := command(ctx, inv, env)

	if inv.Terminal == domain.TerminalPTY {
		return startPTY(cmd, stdout, initialSize(ctx))
	}

	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return nil, zerr.Wrap(err, "failed to start command")
	}

	return &pipeProcess{cmd: cmd}, nil
}

func command(ctx context.Context, inv *domain.Invocation, env []string) *exec.Cmd {
	cmdEnv := resolveEnvironment(os.Environ(), env)

	executable := inv.Program
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, inv.Args()...) //nolint:gosec // command comes from the task catalog
	if len(cmd.Args) > 0 {
		cmd.Args[0] = inv.Program
	}
	if inv.WorkDir != "" {
		cmd.Dir = inv.WorkDir
	}
	cmd.Env = cmdEnv

	return cmd
}

// initialSize returns the pane size carried by ctx, or nil when none is known yet.
func initialSize(ctx context.Context) *pty.Winsize {
	sizer, ok := ports.TerminalSizerFrom(ctx)
	if !ok {
		return nil
	}
	size, ok := sizer.TerminalSize()
	if !ok || !validSize(size.Rows, size.Cols) {
		return nil
	}
	return &pty.Winsize{Rows: uint16(size.Rows), Cols: uint16(size.Cols)} //nolint:gosec // Bounds checked by validSize
}

func validSize(rows, cols int) bool {
	return rows >= 0 && cols >= 0 && rows <= math.MaxUint16 && cols <= math.MaxUint16
}

func startPTY(cmd *exec.Cmd, out io.Writer, size *pty.Winsize) (Process, error) {
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()

		// A PTY merges stdout and stderr.
		_, _ = io.Copy(out, ptmx)
	}()

	return &ptyProcess{
		cmd:    cmd,
		ptmx:   ptmx,
		ioDone: ioDone,
	}, nil
}

// Execute runs the invocation and waits for it to complete.
// A pseudo-terminal follows the size of the TerminalSizer carried by ctx.
func (e *Executor) Execute(
	ctx context.Context,
	inv *domain.Invocation,
	env []string,
	stdout, stderr io.Writer,
) error {
	var resizes <-chan ports.TerminalSize
	if sizer, ok := ports.TerminalSizerFrom(ctx); ok && inv.Terminal == domain.TerminalPTY {
		ch, unsubscribe := sizer.SubscribeResize()
		defer unsubscribe()
		resizes = ch
	}

	proc, err := e.Start(ctx, inv, env, stdout, stderr)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.With(zerr.Wrap(ctxErr, "command canceled"), "task", inv.Task)
		}
		err = zerr.With(zerr.Wrap(domain.ErrTaskExecutionFailed, err.Error()), "task", inv.Task)
		err = zerr.With(err, "program", inv.Program)
		return zerr.With(err, "exit_code", -1)
	}

	if resizes != nil {
		stop := forwardResizes(proc, resizes)
		defer stop()
	}

	if err := proc.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.With(zerr.Wrap(ctxErr, "command canceled"), "task", inv.Task)
		}
		err = zerr.With(zerr.Wrap(domain.ErrTaskExecutionFailed, "command failed"), "task", inv.Task)
		return zerr.With(err, "exit_code", exitCode)
	}

	return nil
}

// forwardResizes applies every size from sizes to proc until the returned stop function is called.
func forwardResizes(proc Process, sizes <-chan ports.TerminalSize) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for {
			select {
			case <-done:
				return
			case size, ok := <-sizes:
				if !ok {
					return
				}
				_ = proc.Resize(size.Rows, size.Cols)
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

// allowListedEnvVars are the system environment variables inherited by the tool.
// Everything else comes from the project environment.
var allowListedEnvVars = map[string]struct{}{
	"HOME":   {},
	"TERM":   {},
	"USER":   {},
	"PATH":   {},
	"LANG":   {},
	"TMPDIR": {},
}

// resolveEnvironment overlays the project environment on the allow-listed system environment.
func resolveEnvironment(sysEnv, projectEnv []string) []string {
	envMap := filterSystemEnv(sysEnv)

	for _, entry := range projectEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}
	return envMap
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
