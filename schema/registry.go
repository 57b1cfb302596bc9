package schema

import (
	"sort"
	"sync"

	"github.com/wippyai/classy/errors"
)

// Registry is a concurrency-safe Source keyed by class name.
type Registry struct {
	classes    map[string]*Class
	interfaces map[string]*Interface
	mu         sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes:    make(map[string]*Class),
		interfaces: make(map[string]*Interface),
	}
}

// Add registers class descriptors. Re-adding the same descriptor is a no-op;
// a different descriptor under a taken name is a collision.
func (r *Registry) Add(classes ...*Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range classes {
		if c == nil || c.IsRoot() {
			return errors.InvalidInput(errors.PhaseRuntime, "cannot register nil or root class")
		}
		if prev, ok := r.classes[c.name]; ok {
			if prev == c {
				continue
			}
			return errors.Collision(RootName, c.name, "registry")
		}
		r.classes[c.name] = c
		for _, i := range c.interfaces {
			r.interfaces[i.name] = i
		}
	}
	return nil
}

// Lookup returns the class registered under name.
func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// Interface returns an interface seen on any registered class.
func (r *Registry) Interface(name string) (*Interface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.interfaces[name]
	return i, ok
}

// Names returns the registered class names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
