// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package display

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/term"
)

// Factory creates a new Sink with the given options.
type Factory func(opts Options) (Sink, error)

// RegistryEntry represents a registered sink backend.
type RegistryEntry struct {
	// Name is the unique identifier for this sink.
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// Factory creates sink instances.
	Factory Factory

	// Available reports if the sink can be used in this process.
	Available func() bool
}

// Registry manages registered display sinks.
//
// Example usage:
//
//	sink, err := display.Open("terminal", display.Options{Width: 640, Height: 360})
//	// or auto-select best available:
//	sink, err := display.OpenBest(display.Options{Width: 640, Height: 360})
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// globalRegistry holds the built-in sinks.
var globalRegistry = NewRegistry()

func init() {
	globalRegistry.Register("terminal", 50, func(opts Options) (Sink, error) {
		return NewTerminal(opts)
	}, stdoutIsTerminal)
	globalRegistry.Register("png", 10, func(opts Options) (Sink, error) {
		return NewPNG(opts), nil
	}, nil)
}

// stdoutIsTerminal reports whether the process can draw to a terminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
}

// Register adds a sink to the global registry.
// If available is nil, the sink is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a sink from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered sink names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Open creates a sink using a specific named backend.
func Open(name string, opts Options) (Sink, error) {
	return globalRegistry.Open(name, opts)
}

// OpenBest creates a sink using the best available backend.
func OpenBest(opts Options) (Sink, error) {
	return globalRegistry.OpenBest(opts)
}

// Register adds a sink to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}
	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a sink from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered sink names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available sinks sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the entry registered under name.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// Open creates a sink using a specific backend.
// Factory failures are wrapped with ErrInit.
func (r *Registry) Open(name string, opts Options) (Sink, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, name)
	}
	if !entry.Available() {
		return nil, fmt.Errorf("%w: %q is not available", ErrInit, name)
	}

	s, err := entry.Factory(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInit, name, err)
	}
	return s, nil
}

// OpenBest tries every available sink in priority order and returns the
// first that opens.
func (r *Registry) OpenBest(opts Options) (Sink, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoSinkAvailable
	}

	var lastErr error
	for _, name := range available {
		s, err := r.Open(name, opts)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// sortedNames returns sink names sorted by priority (highest first), ties
// broken by name. If onlyAvailable is true, filters to available sinks only.
// Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
