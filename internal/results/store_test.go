package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1oridevs/5-in-a-row/internal/database"
	"github.com/1oridevs/5-in-a-row/internal/game"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewStore(db)
}

// playedGame seats winner first, then loser, and has winner stack column 0.
func playedGame(t *testing.T, code string, winner, loser game.Seat) *game.Game {
	t.Helper()
	rules, err := game.RulesForVariant(game.VariantConnectFour)
	require.NoError(t, err)
	g, err := game.New(code, rules, winner.ID, winner.Nickname, t0)
	require.NoError(t, err)
	require.NoError(t, g.AddPlayer(loser.ID, loser.Nickname, t0))
	for i := 0; i < 7; i++ {
		id, col := winner.ID, 0
		if i%2 == 1 {
			id, col = loser.ID, 1
		}
		_, err := g.ApplyMove(id, col, t0)
		require.NoError(t, err)
	}
	require.True(t, g.GameOver())
	return g
}

func TestRecordAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	alice := game.Seat{ID: "p1", Nickname: "Alice"}
	bob := game.Seat{ID: "p2", Nickname: "Bob"}

	require.NoError(t, s.Record(ctx, playedGame(t, "100001", alice, bob)))
	require.NoError(t, s.Record(ctx, playedGame(t, "100002", alice, bob)))
	require.NoError(t, s.Record(ctx, playedGame(t, "100003", bob, alice)))

	rows, err := s.Leaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{{Nickname: "Alice", Wins: 2}, {Nickname: "Bob", Wins: 1}}, rows)

	rows, err = s.Leaderboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRecord_Outcomes(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	won := playedGame(t, "200001", game.Seat{ID: "p1", Nickname: "Alice"}, game.Seat{ID: "p2", Nickname: "Bob"})
	require.NoError(t, s.Record(ctx, won))

	rules, err := game.RulesForVariant(game.VariantConnectFour)
	require.NoError(t, err)
	rules.OnTimeout = game.ForfeitGame
	timedOut, err := game.New("200002", rules, "p1", "Alice", t0)
	require.NoError(t, err)
	require.NoError(t, timedOut.AddPlayer("p2", "Bob", t0))
	require.True(t, timedOut.Tick(t0.Add(time.Hour)))
	require.NoError(t, s.Record(ctx, timedOut))

	draw := &game.Game{Code: "200003", Rules: rules, Status: game.Status{Phase: game.PhaseDraw}}
	require.NoError(t, s.Record(ctx, draw))

	live, err := game.New("200004", rules, "p1", "Alice", t0)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, live))

	got := map[string]string{}
	rows, err := s.db.QueryContext(ctx, `SELECT lobby_code, outcome FROM match_results`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var code, outcome string
		require.NoError(t, rows.Scan(&code, &outcome))
		got[code] = outcome
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, map[string]string{
		"200001": string(OutcomeWin),
		"200002": string(OutcomeTimeout),
		"200003": string(OutcomeDraw),
	}, got)
}
