// Package catalog provides the read-only registry of task descriptors.
package catalog

import (
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry implements ports.Registry over a fixed, validated set of descriptors.
type Registry struct {
	order  []string
	byName map[string]*domain.Descriptor
}

// New builds a registry from the given descriptors. Every descriptor is
// validated and names must be unique.
func New(descriptors ...*domain.Descriptor) (*Registry, error) {
	r := &Registry{
		order:  make([]string, 0, len(descriptors)),
		byName: make(map[string]*domain.Descriptor, len(descriptors)),
	}

	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateName, "descriptor registered twice"), "task", d.Name)
		}
		r.byName[d.Name] = d.Clone()
		r.order = append(r.order, d.Name)
	}

	return r, nil
}

// NewBuiltin builds the registry of every supported ladybug-comfort map subcommand.
func NewBuiltin() (*Registry, error) {
	return New(Builtin()...)
}

// Lookup returns a copy of the descriptor with the given name.
func (r *Registry) Lookup(name string) (*domain.Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		err := zerr.Wrap(domain.ErrUnknownOperation, "no task descriptor with this name")
		return nil, zerr.With(err, "task", name)
	}
	return d.Clone(), nil
}

// List returns copies of all descriptors in catalog order.
func (r *Registry) List() []*domain.Descriptor {
	out := make([]*domain.Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name].Clone())
	}
	return out
}

// Names returns the registered task names in catalog order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
