package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Kind is the type of a descriptor input or output.
type Kind string

const (
	// KindFile is a single file bound to a declared path.
	KindFile Kind = "file"
	// KindFolder is a directory bound to a declared path.
	KindFolder Kind = "folder"
	// KindString is a literal value rendered into the command.
	KindString Kind = "string"
)

// InputSpec declares one named input of a task descriptor.
type InputSpec struct {
	Name        string   `yaml:"name" json:"name"`
	Kind        Kind     `yaml:"kind" json:"kind"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Path        string   `yaml:"path,omitempty" json:"path,omitempty"`
	Extensions  []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Default     *string  `yaml:"default,omitempty" json:"default,omitempty"`
	Enum        []string `yaml:"enum,omitempty" json:"enum,omitempty"`
	Optional    bool     `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// DefaultValue returns the input's default and whether one is declared.
// An explicit empty default is reported as ("", true).
func (in *InputSpec) DefaultValue() (string, bool) {
	if in.Default == nil {
		return "", false
	}
	return *in.Default, true
}

// Allows reports whether value is acceptable for an enum-constrained input.
// Inputs without an enum accept any value.
func (in *InputSpec) Allows(value string) bool {
	if len(in.Enum) == 0 {
		return true
	}
	return slices.Contains(in.Enum, value)
}

// AllowsExtension reports whether a file name carries one of the declared extensions.
// Inputs without declared extensions accept any file name.
func (in *InputSpec) AllowsExtension(name string) bool {
	if len(in.Extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, allowed := range in.Extensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// IsPath reports whether the input is materialized on disk.
func (in *InputSpec) IsPath() bool {
	return in.Kind == KindFile || in.Kind == KindFolder
}

// OutputSpec declares one named output the external command is expected to produce.
type OutputSpec struct {
	Name        string `yaml:"name" json:"name"`
	Kind        Kind   `yaml:"kind" json:"kind"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Path        string `yaml:"path" json:"path"`
}

// Descriptor is the declarative description of one external-tool subcommand.
// Descriptors are immutable once registered; use Clone before handing one out.
type Descriptor struct {
	Name    string       `yaml:"name" json:"name"`
	Summary string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Program string       `yaml:"program" json:"program"`
	Inputs  []InputSpec  `yaml:"inputs" json:"inputs"`
	Command []Arg        `yaml:"command" json:"command"`
	Outputs []OutputSpec `yaml:"outputs" json:"outputs"`
}

// Input returns the declared input with the given name.
func (d *Descriptor) Input(name string) (*InputSpec, bool) {
	for i := range d.Inputs {
		if d.Inputs[i].Name == name {
			return &d.Inputs[i], true
		}
	}
	return nil, false
}

// Output returns the declared output with the given name.
func (d *Descriptor) Output(name string) (*OutputSpec, bool) {
	for i := range d.Outputs {
		if d.Outputs[i].Name == name {
			return &d.Outputs[i], true
		}
	}
	return nil, false
}

// Template returns the command as a single readable template line.
func (d *Descriptor) Template() string {
	parts := make([]string, 0, len(d.Command)+1)
	parts = append(parts, d.Program)
	for _, arg := range d.Command {
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, " ")
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	c := &Descriptor{
		Name:    d.Name,
		Summary: d.Summary,
		Program: d.Program,
		Inputs:  make([]InputSpec, len(d.Inputs)),
		Command: slices.Clone(d.Command),
		Outputs: slices.Clone(d.Outputs),
	}
	for i, in := range d.Inputs {
		in.Extensions = slices.Clone(in.Extensions)
		in.Enum = slices.Clone(in.Enum)
		if in.Default != nil {
			v := *in.Default
			in.Default = &v
		}
		c.Inputs[i] = in
	}
	return c
}

// Validate checks the descriptor for authoring errors: unknown or mistyped input
// references, unreferenced required inputs, duplicate names and malformed specs.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return zerr.Wrap(ErrMalformedDescriptor, "descriptor has no name")
	}
	if d.Program == "" {
		return d.malformed("descriptor has no program")
	}

	if err := d.validateInputs(); err != nil {
		return err
	}
	if err := d.validateOutputs(); err != nil {
		return err
	}
	return d.validateCommand()
}

func (d *Descriptor) validateInputs() error {
	seen := make(map[string]struct{}, len(d.Inputs))
	for i := range d.Inputs {
		in := &d.Inputs[i]
		if in.Name == "" {
			return d.malformed("input has no name")
		}
		if _, dup := seen[in.Name]; dup {
			return zerr.With(zerr.With(zerr.Wrap(ErrDuplicateName, "input declared twice"), "task", d.Name), "input", in.Name)
		}
		seen[in.Name] = struct{}{}

		switch in.Kind {
		case KindFile, KindFolder:
			if in.Path == "" {
				return zerr.With(d.malformed("path input has no path"), "input", in.Name)
			}
			if err := checkRelative(in.Path); err != nil {
				return zerr.With(zerr.With(d.malformed(err.Error()), "input", in.Name), "path", in.Path)
			}
			if in.Default != nil || len(in.Enum) > 0 {
				return zerr.With(d.malformed("path input cannot declare a default or enum"), "input", in.Name)
			}
			if in.Kind == KindFolder && len(in.Extensions) > 0 {
				return zerr.With(d.malformed("folder input cannot declare extensions"), "input", in.Name)
			}
		case KindString:
			if in.Path != "" || len(in.Extensions) > 0 {
				return zerr.With(d.malformed("string input cannot declare a path or extensions"), "input", in.Name)
			}
			if def, ok := in.DefaultValue(); ok && !in.Allows(def) {
				return zerr.With(zerr.With(d.malformed("default is outside the enum"), "input", in.Name), "default", def)
			}
		default:
			return zerr.With(zerr.With(d.malformed("unknown input kind"), "input", in.Name), "kind", string(in.Kind))
		}
	}
	return nil
}

func (d *Descriptor) validateOutputs() error {
	seen := make(map[string]struct{}, len(d.Outputs))
	for _, out := range d.Outputs {
		if out.Name == "" {
			return d.malformed("output has no name")
		}
		if _, dup := seen[out.Name]; dup {
			return zerr.With(zerr.With(zerr.Wrap(ErrDuplicateName, "output declared twice"), "task", d.Name), "output", out.Name)
		}
		seen[out.Name] = struct{}{}

		if out.Kind != KindFile && out.Kind != KindFolder {
			return zerr.With(zerr.With(d.malformed("outputs must be files or folders"), "output", out.Name), "kind", string(out.Kind))
		}
		if out.Path == "" {
			return zerr.With(d.malformed("output has no path"), "output", out.Name)
		}
		if err := checkRelative(out.Path); err != nil {
			return zerr.With(zerr.With(d.malformed(err.Error()), "output", out.Name), "path", out.Path)
		}
	}
	return nil
}

func (d *Descriptor) validateCommand() error {
	referenced := make(map[string]struct{}, len(d.Inputs))

	for i, arg := range d.Command {
		if arg.Flag != "" && !strings.HasPrefix(arg.Flag, "-") {
			return zerr.With(zerr.With(d.malformed("flag must start with '-'"), "position", i), "flag", arg.Flag)
		}

		name, ok := arg.Input()
		if !ok {
			if arg.Text == "" {
				return zerr.With(d.malformed("literal argument is empty"), "position", i)
			}
			continue
		}

		in, declared := d.Input(name)
		if !declared {
			err := zerr.Wrap(ErrUnknownInputReference, "command cannot be rendered")
			return zerr.With(zerr.With(zerr.With(err, "task", d.Name), "input", name), "position", i)
		}
		referenced[name] = struct{}{}

		switch arg.Source {
		case SourcePath:
			if !in.IsPath() {
				return zerr.With(d.malformed("path argument references a string input"), "input", name)
			}
		case SourceValue:
			if in.Kind != KindString {
				return zerr.With(d.malformed("value argument references a path input"), "input", name)
			}
		case SourceSwitch:
			if in.Kind != KindString || len(in.Enum) == 0 {
				return zerr.With(d.malformed("switch argument requires an enum-constrained string input"), "input", name)
			}
		case SourceLiteral:
		}
	}

	for _, in := range d.Inputs {
		if _, ok := referenced[in.Name]; !ok && !in.Optional {
			err := zerr.Wrap(ErrUnreferencedInput, "command does not use every required input")
			return zerr.With(zerr.With(err, "task", d.Name), "input", in.Name)
		}
	}
	return nil
}

func (d *Descriptor) malformed(reason string) error {
	return zerr.With(zerr.Wrap(ErrMalformedDescriptor, reason), "task", d.Name)
}

func checkRelative(p string) error {
	if filepath.IsAbs(p) {
		return zerr.New("declared path must be relative")
	}
	clean := filepath.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return zerr.New("declared path escapes the working directory")
	}
	return nil
}
