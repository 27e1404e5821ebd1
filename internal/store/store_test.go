package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1oridevs/5-in-a-row/internal/database"
	"github.com/1oridevs/5-in-a-row/internal/game"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newGame(t *testing.T, code string, at time.Time) *game.Game {
	t.Helper()
	rules, err := game.RulesForVariant(game.VariantConnectFour)
	require.NoError(t, err)
	g, err := game.New(code, rules, "p1", "Alice", at)
	require.NoError(t, err)
	return g
}

func backends(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store {
			db, err := database.Open(filepath.Join(t.TempDir(), "app.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			require.NoError(t, database.Migrate(db))
			return NewSQLiteStore(db)
		},
		"redis": func(t *testing.T) Store {
			mr := miniredis.RunT(t)
			rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = rdb.Close() })
			return NewRedisStore(rdb, time.Hour)
		},
	}
}

func TestStore_CreateGet(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := open(t)

			g := newGame(t, "111111", t0)
			require.NoError(t, st.Create(ctx, g))
			assert.ErrorIs(t, st.Create(ctx, newGame(t, "111111", t0)), ErrExists)

			got, err := st.Get(ctx, "111111")
			require.NoError(t, err)
			assert.Equal(t, g.Board, got.Board)
			assert.Equal(t, g.Players, got.Players)
			assert.Equal(t, g.Rules, got.Rules)
			assert.NotNil(t, got.Spectators)

			_, err = st.Get(ctx, "999999")
			assert.ErrorIs(t, err, game.ErrNotFound)
		})
	}
}

func TestStore_GetReturnsPrivateCopy(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := open(t)
			require.NoError(t, st.Create(ctx, newGame(t, "222222", t0)))

			got, err := st.Get(ctx, "222222")
			require.NoError(t, err)
			got.Board[0][0] = "p1"
			got.Spectators["s1"] = "Sam"

			again, err := st.Get(ctx, "222222")
			require.NoError(t, err)
			assert.Equal(t, game.EmptyCell, again.Board[0][0])
			assert.Empty(t, again.Spectators)
		})
	}
}

func TestStore_UpdatePersistsEvenOnError(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := open(t)
			require.NoError(t, st.Create(ctx, newGame(t, "333333", t0)))

			out, err := st.Update(ctx, "333333", func(g *game.Game) error {
				return g.AddPlayer("p2", "Bob", t0)
			})
			require.NoError(t, err)
			assert.Equal(t, game.PhaseInProgress, out.Status.Phase)

			// A rejected move after a clock transition keeps the transition.
			late := t0.Add(time.Minute)
			_, err = st.Update(ctx, "333333", func(g *game.Game) error {
				g.Tick(late)
				g.UpdatedAt = late
				_, err := g.ApplyMove("p1", 0, late)
				return err
			})
			assert.ErrorIs(t, err, game.ErrNotYourTurn)

			got, err := st.Get(ctx, "333333")
			require.NoError(t, err)
			assert.Equal(t, "p2", got.Status.CurrentPlayer)
			assert.True(t, got.UpdatedAt.Equal(late))

			_, err = st.Update(ctx, "404404", func(g *game.Game) error { return nil })
			assert.ErrorIs(t, err, game.ErrNotFound)
		})
	}
}

func TestStore_UpdateSerializesWriters(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := open(t)
			require.NoError(t, st.Create(ctx, newGame(t, "444444", t0)))

			const writers = 8
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := st.Update(ctx, "444444", func(g *game.Game) error {
						g.Moves++
						return nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			got, err := st.Get(ctx, "444444")
			require.NoError(t, err)
			assert.Equal(t, writers, got.Moves, "no lost updates")
		})
	}
}

func TestStore_Reap(t *testing.T) {
	for _, name := range []string{"memory", "sqlite"} {
		open := backends(t)[name]
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := open(t)
			require.NoError(t, st.Create(ctx, newGame(t, "555555", t0)))
			require.NoError(t, st.Create(ctx, newGame(t, "666666", t0.Add(time.Hour))))

			n, err := st.Reap(ctx, t0.Add(time.Minute))
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			_, err = st.Get(ctx, "555555")
			assert.ErrorIs(t, err, game.ErrNotFound)
			_, err = st.Get(ctx, "666666")
			assert.NoError(t, err)
		})
	}
}

func TestRedisStore_KeysExpire(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	st := NewRedisStore(rdb, 10*time.Minute)

	require.NoError(t, st.Create(ctx, newGame(t, "777777", t0)))
	assert.Equal(t, 10*time.Minute, mr.TTL(lobbyKey("777777")))

	mr.FastForward(11 * time.Minute)
	_, err := st.Get(ctx, "777777")
	assert.ErrorIs(t, err, game.ErrNotFound)
}
