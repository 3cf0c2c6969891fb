package domain

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Bindings maps input names to bound values. For string inputs the value is
// rendered into the command; for file and folder inputs it is the source path
// the stager copies from. A present key counts as bound even when empty.
type Bindings map[string]string

// ParseBindings parses name=value pairs. Later pairs override earlier ones.
func ParseBindings(pairs []string) (Bindings, error) {
	b := make(Bindings, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, zerr.With(zerr.Wrap(ErrInvalidBinding, "cannot parse binding"), "binding", pair)
		}
		b[name] = value
	}
	return b, nil
}

// Lookup returns the value bound to name.
func (b Bindings) Lookup(name string) (string, bool) {
	v, ok := b[name]
	return v, ok
}

// Names returns the bound input names in sorted order.
func (b Bindings) Names() []string {
	return slices.Sorted(maps.Keys(b))
}

// Merge returns a new set with other's values layered over b.
func (b Bindings) Merge(other Bindings) Bindings {
	out := maps.Clone(b)
	if out == nil {
		out = make(Bindings, len(other))
	}
	maps.Copy(out, other)
	return out
}
