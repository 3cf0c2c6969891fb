package domain

import "slices"

// Terminal selects how the external tool's output is captured.
type Terminal string

const (
	// TerminalPipe connects stdout and stderr through pipes.
	TerminalPipe Terminal = "pipe"
	// TerminalPTY runs the tool under a pseudo-terminal.
	TerminalPTY Terminal = "pty"
)

// Job is a named, pre-bound task invocation from the project file.
type Job struct {
	Name    string
	Task    string
	WorkDir string
	Inputs  Bindings
}

// Project is the loaded project file.
type Project struct {
	// Root is the directory containing the project file.
	Root        string
	Tool        string
	Terminal    Terminal
	Environment map[string]string
	Jobs        map[string]*Job
}

// JobNames returns the defined job names in sorted order.
func (p *Project) JobNames() []string {
	names := make([]string, 0, len(p.Jobs))
	for name := range p.Jobs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Program returns the configured executable, falling back to the descriptor's own.
func (p *Project) Program(fallback string) string {
	if p == nil || p.Tool == "" {
		return fallback
	}
	return p.Tool
}
