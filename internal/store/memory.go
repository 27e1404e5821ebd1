// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is the default backend: lobbies live for the lifetime of the process.
//
// Characteristics:
//   - Stores *game.Game objects keyed by lobby code in a map.
//   - A single mutex serializes writers, so two moves against the same lobby
//     can never both apply to a stale board.
//   - Games are cloned on the way in and out.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/1oridevs/5-in-a-row/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map and the games in it
	games map[string]*game.Game // keyed by Game.Code
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Create adds the game unless its code is already live.
func (m *memory) Create(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.Code]; ok {
		return ErrExists
	}
	m.games[g.Code] = g.Clone()
	return nil
}

// Get looks up a game by code.
func (m *memory) Get(ctx context.Context, code string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[code]; ok {
		return g.Clone(), nil
	}
	return nil, game.ErrNotFound
}

// Update applies fn under the write lock.
func (m *memory) Update(ctx context.Context, code string, fn func(g *game.Game) error) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.games[code]
	if !ok {
		return nil, game.ErrNotFound
	}
	g := cur.Clone()
	err := fn(g)
	m.games[code] = g
	return g.Clone(), err
}

// Reap drops idle lobbies.
func (m *memory) Reap(ctx context.Context, idleSince time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for code, g := range m.games {
		if g.UpdatedAt.Before(idleSince) {
			delete(m.games, code)
			n++
		}
	}
	return n, nil
}
