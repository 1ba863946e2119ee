package level

import "math"

// DefaultName is the material name stored at id 1
const DefaultName = "DEFAULT"

// Registry is an append-only material name table. Id 0 is empty, id 1 the default.
// It is filled while rasterizing and read-only afterwards.
type Registry struct {
	names []string
	ids   map[string]uint16
}

// NewRegistry returns a registry holding only the reserved ids
func NewRegistry() *Registry {
	return &Registry{
		names: []string{"", DefaultName},
		ids:   map[string]uint16{DefaultName: Default},
	}
}

// Intern returns the id for name, appending it on first sight. Once every
// uint16 id is taken, new names share the default id.
func (r *Registry) Intern(name string) uint16 {
	if name == "" {
		return Empty
	}
	if id, ok := r.ids[name]; ok {
		return id
	}
	if len(r.names) > math.MaxUint16 {
		return Default
	}
	id := uint16(len(r.names))
	r.names = append(r.names, name)
	r.ids[name] = id
	return id
}

// Lookup returns the id of an already-interned name
func (r *Registry) Lookup(name string) (uint16, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Name resolves an id; unknown ids resolve to ""
func (r *Registry) Name(id uint16) string {
	if int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

// Len returns the number of ids including the reserved ones
func (r *Registry) Len() int { return len(r.names) }
