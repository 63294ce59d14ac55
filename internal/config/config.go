// Package config loads runtime configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultDBPath          = "./data/ledger.db"
	defaultTokenDuration   = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	devJWTSecret           = "dev-secret-change-me"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	Storage     string
	DBPath      string
	DatabaseURL string

	RedisURL string
	// RedisChannel is the pub/sub channel for ledger events; empty selects
	// the notifier default.
	RedisChannel string

	JWTSecret     string
	TokenDuration time.Duration

	StrictParticipants bool
	RailOverdraft      bool
	// RailFunds are opening balances of the in-memory rail, read from
	// RAIL_FUNDS as "member=amount,member=amount". Without overdraft only
	// funded accounts can settle.
	RailFunds map[string]int64

	ShutdownTimeout time.Duration
}

// Load reads an optional .env file from the working directory, then
// populates a Config from the environment. Variables already set in the
// environment take precedence over the file.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an
// error.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	cfg := Config{
		Port:         getEnv("PORT", defaultPort),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", defaultLogFormat)),
		Storage:      strings.ToLower(getEnv("STORAGE", StorageSQLite)),
		DBPath:       getEnv("DB_PATH", defaultDBPath),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		RedisChannel: os.Getenv("REDIS_CHANNEL"),
		JWTSecret:    getEnv("JWT_SECRET", devJWTSecret),
	}

	var err error
	if cfg.TokenDuration, err = getDuration("TOKEN_DURATION", defaultTokenDuration); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.StrictParticipants, err = getBool("STRICT_PARTICIPANTS", false); err != nil {
		return Config{}, err
	}
	if cfg.RailOverdraft, err = getBool("RAIL_OVERDRAFT", true); err != nil {
		return Config{}, err
	}
	if cfg.RailFunds, err = getFunds("RAIL_FUNDS"); err != nil {
		return Config{}, err
	}

	switch cfg.Storage {
	case StorageSQLite, StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when STORAGE=%s", StoragePostgres)
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE %q: want %s, %s or %s", cfg.Storage, StorageSQLite, StoragePostgres, StorageMemory)
	}

	return cfg, nil
}

// UsesDevSecret reports whether tokens are signed with the built-in
// development secret.
func (c Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getFunds(key string) (map[string]int64, error) {
	funds := make(map[string]int64)
	v := os.Getenv(key)
	if v == "" {
		return funds, nil
	}
	for _, entry := range strings.Split(v, ",") {
		member, amount, ok := strings.Cut(strings.TrimSpace(entry), "=")
		member = strings.TrimSpace(member)
		if !ok || member == "" {
			return nil, fmt.Errorf("invalid %s entry %q: want member=amount", key, entry)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(amount), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid %s amount for %q: %q", key, member, amount)
		}
		funds[member] += n
	}
	return funds, nil
}
