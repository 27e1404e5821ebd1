// internal/results/store.go
//
// Finished-match history backed by SQLite.
//   - Record: one row per game that reached a terminal phase.
//   - Leaderboard: nicknames ranked by wins.
//
// Expects the match_results table from internal/database migrations.

package results

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/1oridevs/5-in-a-row/internal/game"
)

// Outcome is how a match ended.
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeTimeout Outcome = "timeout"
	OutcomeDraw    Outcome = "draw"
)

const defaultLimit = 20

// Store persists finished matches.
type Store struct{ db *sql.DB }

// NewStore wraps a migrated SQLite handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record stores the outcome of a finished game. Games still in play are
// ignored.
func (s *Store) Record(ctx context.Context, g *game.Game) error {
	if !g.GameOver() {
		return nil
	}

	outcome := OutcomeDraw
	var winnerID, winnerNick, loserID, loserNick sql.NullString
	if g.Status.Phase == game.PhaseFinished {
		// A run is won on the winner's own turn; a time forfeit leaves the
		// turn frozen on the player who ran out of time.
		outcome = OutcomeWin
		if g.Status.CurrentPlayer != g.Status.Winner {
			outcome = OutcomeTimeout
		}
		for _, seat := range g.Players {
			if seat.ID == g.Status.Winner {
				winnerID = sql.NullString{String: seat.ID, Valid: true}
				winnerNick = sql.NullString{String: seat.Nickname, Valid: true}
			} else {
				loserID = sql.NullString{String: seat.ID, Valid: true}
				loserNick = sql.NullString{String: seat.Nickname, Valid: true}
			}
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO match_results
			(id, lobby_code, outcome, winner_id, winner_nickname, loser_id, loser_nickname, moves, rows_n, cols_n, target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), g.Code, string(outcome), winnerID, winnerNick, loserID, loserNick,
		g.Moves, g.Rules.Rows, g.Rules.Cols, g.Rules.Target,
	)
	if err != nil {
		return fmt.Errorf("insert result for lobby %s: %w", g.Code, err)
	}
	return nil
}

// LBRow is one leaderboard entry.
type LBRow struct {
	Nickname string `json:"nickname"`
	Wins     int    `json:"wins"`
}

// Leaderboard returns the top nicknames by wins (ties broken by name).
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT winner_nickname, COUNT(1) AS wins
		FROM match_results
		WHERE winner_nickname IS NOT NULL
		GROUP BY winner_nickname
		ORDER BY wins DESC, winner_nickname ASC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Nickname, &r.Wins); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
