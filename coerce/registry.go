// Package coerce holds the closed set of element types an argument may be annotated with.
// Annotations never evaluate code: every type or choice-set name must be registered here.
package coerce

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mwantia/argtree/arg"
)

// Func converts one raw command line token into a typed value.
type Func func(string) (any, error)

type Registry struct {
	mu      sync.RWMutex
	types   map[string]Func
	choices map[string][]any
	actions map[string]arg.CustomFunc
}

// NewRegistry returns a registry that already knows the builtin types.
func NewRegistry() *Registry {
	r := &Registry{
		types:   make(map[string]Func),
		choices: make(map[string][]any),
		actions: make(map[string]arg.CustomFunc),
	}
	for name, fn := range builtins() {
		r.types[name] = fn
	}
	return r
}

// Register adds or replaces a named type. It returns the registry for chaining.
func (r *Registry) Register(name string, fn Func) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[name] = fn
	return r
}

// RegisterChoices names a fixed set of values usable inside choice lists.
func (r *Registry) RegisterChoices(name string, values ...any) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.choices[name] = append([]any(nil), values...)
	return r
}

// RegisterAction names a custom action usable as CustomAction[name] in annotations.
func (r *Registry) RegisterAction(name string, fn arg.CustomFunc) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.actions[name] = fn
	return r
}

// Action resolves a registered custom action by name.
func (r *Registry) Action(name string) (arg.CustomFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.actions[name]
	return fn, ok
}

// Lookup resolves a type name.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown type '%s'", name)
	}
	return fn, nil
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.types[name]
	return ok
}

// Choices resolves a registered choice set by name.
func (r *Registry) Choices(name string) ([]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values, ok := r.choices[name]
	return values, ok
}

// Names returns all registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
