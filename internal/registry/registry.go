// Package registry keeps the board variants a player can pick.
// Variants register a factory from init(); the CLI, the menu and the SSH
// server look them up by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Game is one playable board variant driven by the platform's fixed tick.
// Implementations hold no terminal state; the platform maps input and renders.
type Game interface {
	// ID is the stable key used on the command line and in session history.
	ID() string
	Title() string

	// Reset starts a fresh board. It is called before the first Step and
	// again on restart or when a non-resizable game sees a new screen size.
	Reset(cfg core.RuntimeConfig)

	// Step advances the board by one tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizable is implemented by games that can follow a terminal resize
// without losing their state. Other games are reset on resize.
type Resizable interface {
	Resize(screenW, screenH int)
}

// Describer is implemented by games that carry a one-line description for listings.
type Describer interface {
	Description() string
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory under id. It panics if id is taken.
// The factory is called once to read the variant's title and description.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	defer Release(g)

	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns every registered variant, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Lookup returns the metadata registered under id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Release frees whatever g holds, if it has a Close method.
// It is safe to call with a nil game.
func Release(g Game) {
	if c, ok := g.(interface{ Close() }); ok {
		c.Close()
	}
}
