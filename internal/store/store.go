// internal/store/store.go
//
// Persistence interface for lobbies.
// Backends:
//   - memory (this package, default): map guarded by a mutex, lost on restart.
//   - sqlite: one row per lobby holding the JSON-encoded game.
//   - redis:  one key per lobby with an idle TTL.
//
// Every backend hands out private copies: callers never hold a pointer into
// the store's own state, so all writes go through Create or Update.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/1oridevs/5-in-a-row/internal/game"
)

// ErrExists is returned by Create when the lobby code is already live.
var ErrExists = errors.New("lobby code already in use")

// Store defines the persistence interface for lobbies.
type Store interface {
	// Create persists a new game under g.Code.
	// Returns ErrExists if the code is taken.
	Create(ctx context.Context, g *game.Game) error

	// Get retrieves a copy of the game for code.
	// Returns game.ErrNotFound if the code is unknown.
	Get(ctx context.Context, code string) (*game.Game, error)

	// Update runs fn against the game for code with all other writers to
	// that lobby excluded, then persists the result and returns a copy.
	// The game is persisted even when fn returns an error; fn must leave
	// the game as it found it for anything it rejects.
	Update(ctx context.Context, code string, fn func(g *game.Game) error) (*game.Game, error)

	// Reap deletes lobbies whose last update is before idleSince and
	// reports how many were removed.
	Reap(ctx context.Context, idleSince time.Time) (int, error)
}

func encode(g *game.Game) ([]byte, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode lobby %s: %w", g.Code, err)
	}
	return b, nil
}

func decode(code string, b []byte) (*game.Game, error) {
	var g game.Game
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, fmt.Errorf("decode lobby %s: %w", code, err)
	}
	if g.Spectators == nil {
		g.Spectators = map[string]string{}
	}
	return &g, nil
}
