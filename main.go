package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/1oridevs/5-in-a-row/internal/config"
	"github.com/1oridevs/5-in-a-row/internal/database"
	"github.com/1oridevs/5-in-a-row/internal/httpserver"
	"github.com/1oridevs/5-in-a-row/internal/lobby"
	"github.com/1oridevs/5-in-a-row/internal/results"
	"github.com/1oridevs/5-in-a-row/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	st, err := openStore(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open lobby store")
	}

	res := results.NewStore(db)
	svc := lobby.NewService(st, cfg.Rules, lobby.WithRecorder(res))

	reaper, err := svc.StartReaper(cfg.ReapSchedule, cfg.LobbyIdleTTL)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ReapSchedule).Msg("failed to start reaper")
	}
	defer reaper.Stop()

	srv := httpserver.New(svc, res, cfg.ClientOrigin)
	rules := svc.Rules()
	log.Info().
		Str("port", cfg.Port).
		Str("store", cfg.StoreDriver).
		Int("rows", rules.Rows).
		Int("cols", rules.Cols).
		Int("target", rules.Target).
		Dur("turn", rules.TurnDuration).
		Str("onTimeout", string(rules.OnTimeout)).
		Msg("starting lobby server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func openStore(cfg config.Config, db *sql.DB) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		return store.NewSQLiteStore(db), nil
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		return store.NewRedisStore(rdb, cfg.LobbyIdleTTL), nil
	default:
		return store.NewMemoryStore(), nil
	}
}
