// internal/store/redis.go
//
// Redis implementation of the Store interface.
// Each lobby is a JSON string at "lobby:<code>" with an idle TTL that is
// refreshed on every write, so Redis expires abandoned lobbies itself.
// Update is an optimistic WATCH/MULTI transaction retried on conflict.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/1oridevs/5-in-a-row/internal/game"
)

const maxTxRetries = 16

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore stores lobbies in rdb; ttl is the idle lifetime of a lobby.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func lobbyKey(code string) string { return "lobby:" + code }

func (s *redisStore) Create(ctx context.Context, g *game.Game) error {
	b, err := encode(g)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, lobbyKey(g.Code), b, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("setnx lobby %s: %w", g.Code, err)
	}
	if !ok {
		return ErrExists
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, code string) (*game.Game, error) {
	b, err := s.rdb.Get(ctx, lobbyKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lobby %s: %w", code, err)
	}
	return decode(code, b)
}

func (s *redisStore) Update(ctx context.Context, code string, fn func(g *game.Game) error) (*game.Game, error) {
	key := lobbyKey(code)
	var (
		out   *game.Game
		fnErr error
	)
	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return game.ErrNotFound
		}
		if err != nil {
			return err
		}
		g, err := decode(code, b)
		if err != nil {
			return err
		}
		fnErr = fn(g)
		nb, err := encode(g)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, nb, s.ttl)
			return nil
		})
		if err == nil {
			out = g
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, game.ErrNotFound) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("update lobby %s: %w", code, err)
		}
		return out, fnErr
	}
	return nil, fmt.Errorf("update lobby %s: too much contention", code)
}

// Reap is a no-op: keys carry their own TTL.
func (s *redisStore) Reap(ctx context.Context, idleSince time.Time) (int, error) {
	return 0, nil
}
