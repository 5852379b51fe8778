// Package registry provides a global registry for simulation factories.
// Simulations register themselves in init() functions, allowing the CLI and
// the SSH server to discover and instantiate them without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridloop/internal/engine"
)

// Sim is a simulation that can be picked by name.
type Sim interface {
	engine.Game

	// ID returns a unique identifier for this simulation (e.g., "maze").
	// Used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name used as the window title.
	Title() string

	// Configure applies the simulation's preferred grid and colors.
	// Settings loaded from a config file are applied after it.
	Configure(b *engine.Builder)
}

// Options tune a simulation at creation. Zero values select the
// simulation's defaults.
type Options struct {
	Seed   int64 // RNG seed for reproducible runs
	Width  int   // Simulation-specific width (e.g., maze cells)
	Height int   // Simulation-specific height
}

// SimInfo contains metadata about a registered simulation.
type SimInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a simulation.
type Factory func(opts Options) Sim

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a simulation factory to the registry.
// Typically called from a simulation's init() function.
// Panics if a simulation with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: sim %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(Options{}).Title()
}

// List returns information about all registered simulations, sorted by ID.
func List() []SimInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SimInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SimInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new simulation by its ID.
// Returns an error if the ID is not registered.
func Create(id string, opts Options) (Sim, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown sim %q", id)
	}

	return f(opts), nil
}

// Exists checks if a simulation with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
