// Package render turns task descriptors and bound values into concrete invocations.
package render

import (
	"slices"
	"strings"

	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Renderer implements ports.CommandRenderer.
// It is stateless and safe for concurrent use.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render resolves every input of d against bindings, applying defaults, and
// renders the typed argument list into argv tokens. Values are inserted
// verbatim as single tokens; no shell parsing takes place.
func (r *Renderer) Render(d *domain.Descriptor, bindings domain.Bindings, workDir string) (*domain.Invocation, error) {
	values, err := resolve(d, bindings)
	if err != nil {
		return nil, err
	}

	tokens := make([]domain.Token, 0, len(d.Command)*2)
	for _, arg := range d.Command {
		if arg.Source == domain.SourceValue {
			if _, bound := values[arg.Text]; !bound {
				// Optional string input without a value: drop the flag with it.
				continue
			}
		}
		if arg.Flag != "" {
			tokens = append(tokens, domain.Token{Text: arg.Flag})
		}
		tokens = append(tokens, operand(d, arg, values))
	}

	return &domain.Invocation{
		Task:    d.Name,
		Program: d.Program,
		Tokens:  tokens,
		WorkDir: workDir,
	}, nil
}

func operand(d *domain.Descriptor, arg domain.Arg, values map[string]string) domain.Token {
	switch arg.Source {
	case domain.SourcePath:
		in, _ := d.Input(arg.Text)
		return domain.Token{Text: in.Path}
	case domain.SourceValue:
		// Flag operands are shown quoted, bare positional values are not.
		return domain.Token{Text: values[arg.Text], Quoted: arg.Flag != ""}
	case domain.SourceSwitch:
		return domain.Token{Text: "--" + values[arg.Text]}
	default:
		return domain.Token{Text: arg.Text}
	}
}

// resolve returns the effective value of every bound or defaulted string input.
// Path inputs only need to be bound; their token is the declared path.
func resolve(d *domain.Descriptor, bindings domain.Bindings) (map[string]string, error) {
	for _, name := range bindings.Names() {
		if _, ok := d.Input(name); !ok {
			err := zerr.With(zerr.Wrap(domain.ErrUnknownInput, "binding names an undeclared input"), "task", d.Name)
			return nil, zerr.With(zerr.With(err, "input", name), "declared", inputNames(d))
		}
	}

	values := make(map[string]string, len(d.Inputs))
	var missing []string

	for i := range d.Inputs {
		in := &d.Inputs[i]
		v, bound := bindings.Lookup(in.Name)

		if in.IsPath() {
			if !bound && !in.Optional {
				missing = append(missing, in.Name)
			}
			continue
		}

		if !bound {
			v, bound = in.DefaultValue()
		}
		if !bound {
			if !in.Optional {
				missing = append(missing, in.Name)
			}
			continue
		}

		if !in.Allows(v) {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidEnumValue, "value is not one of the allowed choices"), "task", d.Name)
			err = zerr.With(zerr.With(err, "input", in.Name), "value", v)
			return nil, zerr.With(err, "allowed", strings.Join(in.Enum, ", "))
		}
		values[in.Name] = v
	}

	if len(missing) > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrMissingRequiredInput, "inputs have no value and no default"), "task", d.Name)
		return nil, zerr.With(err, "inputs", strings.Join(missing, ", "))
	}

	return values, nil
}

func inputNames(d *domain.Descriptor) string {
	names := make([]string, 0, len(d.Inputs))
	for _, in := range d.Inputs {
		names = append(names, in.Name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
