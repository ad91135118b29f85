package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a backend engine. Construction may fail at run time,
// for example when a native library cannot be loaded.
type Factory func() (Engine, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a backend factory under the given name. Backends call it
// from their package init, so the set of available engines is fixed once
// imports are resolved. Registering a duplicate or empty name is an error.
func Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("engine: cannot register empty name")
	}
	if f == nil {
		return fmt.Errorf("engine: cannot register nil factory for %q", name)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		return fmt.Errorf("engine: backend %q already registered", name)
	}
	registry[name] = f
	return nil
}

// New constructs the backend registered under name.
func New(name string) (Engine, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("engine: unknown backend %q", name)
	}
	return f()
}

// Engines returns the sorted names of all registered backends.
func Engines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
