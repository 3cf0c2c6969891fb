// Package config provides the project file loader for comfortmap.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/comfortmap/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML project file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

var validJobNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Load finds the nearest project file above cwd and returns the parsed project.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var file ProjectFile
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	return l.buildProject(configPath, &file)
}

// DiscoverRoot returns the directory containing the nearest project file above cwd.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)

	for {
		candidate := filepath.Join(currentDir, domain.ProjectFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no project file above working directory"), "cwd", cwd)
}

func (l *Loader) buildProject(configPath string, file *ProjectFile) (*domain.Project, error) {
	if file.Version != "" && file.Version != SupportedVersion && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ProjectFileName, file.Version, SupportedVersion))
	}

	terminal, err := resolveTerminal(file.Terminal)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	root := filepath.Clean(filepath.Dir(configPath))
	project := &domain.Project{
		Root:        root,
		Tool:        resolveTool(root, file.Tool),
		Terminal:    terminal,
		Environment: file.Environment,
		Jobs:        make(map[string]*domain.Job, len(file.Jobs)),
	}

	for name, dto := range file.Jobs {
		job, err := buildJob(root, name, dto)
		if err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		project.Jobs[name] = job
	}

	return project, nil
}

func buildJob(root, name string, dto *JobDTO) (*domain.Job, error) {
	if err := validateJobName(name); err != nil {
		return nil, err
	}
	if dto == nil || dto.Task == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "job has no task"), "job", name)
	}

	return &domain.Job{
		Name:    name,
		Task:    dto.Task,
		WorkDir: resolveJobWorkDir(root, name, dto.WorkDir),
		Inputs:  domain.Bindings(dto.Inputs),
	}, nil
}

// readAndUnmarshalYAML reads a YAML file and decodes it into target, rejecting unknown keys.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *ProjectFile) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", configPath)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if parseErr := decoder.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error()), "path", configPath)
	}

	return nil
}

// validateJobName checks that the job name is usable as a directory and command argument.
func validateJobName(name string) error {
	if !validJobNameRegex.MatchString(name) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidJobName, "allowed characters are letters, digits, '_' and '-'"), "job", name)
	}
	return nil
}

// resolveTerminal maps the configured terminal mode, defaulting to pipes.
func resolveTerminal(configured string) (domain.Terminal, error) {
	switch domain.Terminal(configured) {
	case "", domain.TerminalPipe:
		return domain.TerminalPipe, nil
	case domain.TerminalPTY:
		return domain.TerminalPTY, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidTerminal, "unsupported terminal"), "terminal", configured)
	}
}

// resolveJobWorkDir resolves the working directory for a job.
// If configured is empty, the job runs in <root>/<name>.
// If configured is absolute, it is used directly.
// Otherwise, it is joined with root.
func resolveJobWorkDir(root, name, configured string) string {
	if configured == "" {
		return filepath.Join(root, name)
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(root, configured))
}

// resolveTool joins a relative tool path with root. Bare program names are
// left for a PATH lookup.
func resolveTool(root, tool string) string {
	if tool == "" || filepath.IsAbs(tool) || !strings.ContainsRune(filepath.ToSlash(tool), '/') {
		return tool
	}
	return filepath.Join(root, tool)
}
