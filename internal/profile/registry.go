package profile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Registry holds the compiled profiles in registration order. Registration
// order is detection priority: when a directory satisfies indicators for
// more than one type, the earliest registered profile wins.
type Registry struct {
	order    []string
	profiles map[string]*Profile
}

// New compiles the given definitions into a registry. Definitions are
// registered in argument order. A duplicate type id or a malformed pattern
// fails the whole load.
func New(defs ...Definition) (*Registry, error) {
	r := &Registry{
		profiles: make(map[string]*Profile, len(defs)),
	}
	for _, def := range defs {
		if def.Type == "" {
			return nil, fmt.Errorf("profile definition missing type id")
		}
		if _, dup := r.profiles[def.Type]; dup {
			return nil, fmt.Errorf("duplicate profile type %q", def.Type)
		}
		p, err := compile(def)
		if err != nil {
			return nil, err
		}
		r.order = append(r.order, def.Type)
		r.profiles[def.Type] = p
	}
	return r, nil
}

// Default returns a registry with the built-in definitions. The built-ins
// are maintained alongside this package, so a compile failure is a
// programming error and panics.
func Default() *Registry {
	r, err := New(BuiltinDefinitions()...)
	if err != nil {
		panic(fmt.Sprintf("builtin profiles: %v", err))
	}
	return r
}

// Get returns the profile for a type id.
func (r *Registry) Get(typeID string) (*Profile, error) {
	p, ok := r.profiles[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, typeID)
	}
	return p, nil
}

// TypeIDs returns the registered type ids in registration order.
func (r *Registry) TypeIDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DetectType inspects dir for each profile's indicator files and returns the
// first type with at least one indicator present, or TypeUnknown when none
// match. Indicators may be plain file names or relative paths; both files
// and directories satisfy them.
func (r *Registry) DetectType(dir string) string {
	for _, id := range r.order {
		p := r.profiles[id]
		for _, indicator := range p.Indicators {
			if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(indicator))); err == nil {
				return id
			}
		}
	}
	return TypeUnknown
}
