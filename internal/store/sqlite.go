// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Each lobby is one row in the lobbies table holding the JSON-encoded game.
// Expects the schema from internal/database migrations and a handle opened
// by database.Open (immediate transactions).

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/1oridevs/5-in-a-row/internal/game"
)

type sqliteStore struct {
	db *sql.DB
	mu sync.Mutex // serializes writers inside this process
}

// NewSQLiteStore wraps a migrated SQLite handle.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Create(ctx context.Context, g *game.Game) error {
	b, err := encode(g)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lobbies (code, state, updated_at) VALUES (?, ?, ?)`,
		g.Code, string(b), g.UpdatedAt.UnixMilli())
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrExists
		}
		return fmt.Errorf("insert lobby %s: %w", g.Code, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, code string) (*game.Game, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM lobbies WHERE code=?`, code).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select lobby %s: %w", code, err)
	}
	return decode(code, []byte(state))
}

func (s *sqliteStore) Update(ctx context.Context, code string, fn func(g *game.Game) error) (*game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var state string
	err = tx.QueryRowContext(ctx, `SELECT state FROM lobbies WHERE code=?`, code).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select lobby %s: %w", code, err)
	}
	g, err := decode(code, []byte(state))
	if err != nil {
		return nil, err
	}

	fnErr := fn(g)

	b, err := encode(g)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE lobbies SET state=?, updated_at=? WHERE code=?`,
		string(b), g.UpdatedAt.UnixMilli(), code); err != nil {
		return nil, fmt.Errorf("update lobby %s: %w", code, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit lobby %s: %w", code, err)
	}
	return g, fnErr
}

func (s *sqliteStore) Reap(ctx context.Context, idleSince time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM lobbies WHERE updated_at < ?`, idleSince.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("reap lobbies: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}
