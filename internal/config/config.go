// internal/config/config.go
//
// Environment-driven configuration for the lobby server.
// main loads a .env file (godotenv) before calling Load.
//
// Environment variables (defaults in parentheses):
//   PORT            listen port (10000)
//   LOG_LEVEL       zerolog level (info)
//   CLIENT_ORIGIN   allowed CORS origin (*)
//   STORE_DRIVER    memory | sqlite | redis (memory)
//   DB_PATH         SQLite file for results and the sqlite store (./data/app.db)
//   REDIS_ADDR      redis address (localhost:6379)
//   REDIS_PASSWORD  redis password ("")
//   REDIS_DB        redis database number (0)
//   BOARD_VARIANT   connect4 | gomoku (connect4)
//   TURN_SECONDS    per-turn clock (30)
//   ON_TIMEOUT      skip_turn | forfeit_game (skip_turn)
//   LOBBY_IDLE_TTL  idle lifetime of a lobby (2h)
//   REAP_SCHEDULE   cron spec for the idle reaper (@every 5m)

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/1oridevs/5-in-a-row/internal/game"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the resolved server configuration.
type Config struct {
	Port          string
	LogLevel      string
	ClientOrigin  string
	StoreDriver   string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Rules         game.Rules
	LobbyIdleTTL  time.Duration
	ReapSchedule  string
}

// Load reads the environment.
func Load() (Config, error) {
	c := Config{
		Port:          getEnv("PORT", "10000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "*"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
		DBPath:        getEnv("DB_PATH", "./data/app.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		ReapSchedule:  getEnv("REAP_SCHEDULE", "@every 5m"),
	}

	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverRedis:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER: unknown driver %q", c.StoreDriver)
	}

	var err error
	if c.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}
	if c.LobbyIdleTTL, err = time.ParseDuration(getEnv("LOBBY_IDLE_TTL", "2h")); err != nil {
		return Config{}, fmt.Errorf("LOBBY_IDLE_TTL: %w", err)
	}
	if c.LobbyIdleTTL <= 0 {
		return Config{}, fmt.Errorf("LOBBY_IDLE_TTL: want a positive duration, got %s", c.LobbyIdleTTL)
	}

	if c.Rules, err = game.RulesForVariant(os.Getenv("BOARD_VARIANT")); err != nil {
		return Config{}, fmt.Errorf("BOARD_VARIANT: %w", err)
	}
	secs, err := strconv.Atoi(getEnv("TURN_SECONDS", "30"))
	if err != nil || secs <= 0 {
		return Config{}, fmt.Errorf("TURN_SECONDS: want a positive integer, got %q", os.Getenv("TURN_SECONDS"))
	}
	c.Rules.TurnDuration = time.Duration(secs) * time.Second
	if c.Rules.OnTimeout, err = game.ParseTimeoutPolicy(os.Getenv("ON_TIMEOUT")); err != nil {
		return Config{}, fmt.Errorf("ON_TIMEOUT: %w", err)
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
