package status

import (
	"fmt"
	"strings"
)

// Registry interns status descriptors by ID. Registration happens once,
// at init time, so lookups need no locking afterwards.
type Registry struct {
	descriptors map[ID]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[ID]*Descriptor)}
}

// Register interns desc and returns it for convenient package-level
// wiring. It panics on the zero ID or a duplicate registration;
// colliding IDs are a programming error caught at init.
func (r *Registry) Register(desc *Descriptor) *Descriptor {
	if desc.ID == 0 {
		panic("status: descriptor registered with zero ID")
	}
	if existing, ok := r.descriptors[desc.ID]; ok {
		panic(fmt.Sprintf("status: duplicate descriptor ID %d (%s and %s)", desc.ID, existing.Name, desc.Name))
	}
	r.descriptors[desc.ID] = desc
	return desc
}

// Get returns the descriptor interned for id.
func (r *Registry) Get(id ID) (*Descriptor, bool) {
	desc, ok := r.descriptors[id]
	return desc, ok
}

// MustGet returns the descriptor interned for id and panics when the id
// was never registered.
func (r *Registry) MustGet(id ID) *Descriptor {
	desc, ok := r.descriptors[id]
	if !ok {
		panic(fmt.Sprintf("status: no descriptor registered for ID %d", id))
	}
	return desc
}

// Find returns the descriptor whose name matches, ignoring case.
// Scenario scripts and tools resolve display names with it; hot paths
// use Get.
func (r *Registry) Find(name string) (*Descriptor, bool) {
	for _, desc := range r.descriptors {
		if strings.EqualFold(desc.Name, name) {
			return desc, true
		}
	}
	return nil, false
}

// DefaultRegistry holds the descriptors of every linked job package.
var DefaultRegistry = NewRegistry()

// Register interns desc in the DefaultRegistry.
func Register(desc *Descriptor) *Descriptor {
	return DefaultRegistry.Register(desc)
}

// Lookup fetches id from the DefaultRegistry.
func Lookup(id ID) (*Descriptor, bool) {
	return DefaultRegistry.Get(id)
}

// Find resolves name against the DefaultRegistry.
func Find(name string) (*Descriptor, bool) {
	return DefaultRegistry.Find(name)
}
