// Package registry keeps the playable board variants. Variants register
// themselves in init() functions, so front ends can list and create them
// without importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tetris-arcade/internal/core"
)

// Game is a playable board. Implementations hold pure simulation state; the
// platform maps keys to actions, drives the tick and draws the screen.
type Game interface {
	// ID returns the variant identifier (e.g., "tetris", "tetris_wide").
	// Used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset prepares a new run sized to the screen, seeded from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns score, game-over and pause flags.
	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID     string
	Title  string
	Format string // Board format from core.StatsReporter, "" when not reported
}

// Factory creates a new instance of a variant.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a variant factory. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Describe the variant from a throwaway instance
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if r, ok := g.(core.StatsReporter); ok {
		info.Format = r.RunStats().Format
	}

	factories[id] = f
	infos[id] = info
}

// List returns all registered variants, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the description of a registered variant.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a variant by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
