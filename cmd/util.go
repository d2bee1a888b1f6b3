// Package cmd provides CLI commands for the newsscout tool.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fantasyedge/newsscout/config"
	"github.com/fantasyedge/newsscout/pkg/db"
	"github.com/fantasyedge/newsscout/pkg/logging"
	"github.com/fantasyedge/newsscout/pkg/pagecache"
)

// Deps holds the shared dependencies for commands, injectable for tests.
type Deps struct {
	LoadConfig func() (*config.Config, error)
	Connect    func(ctx context.Context, cfg *db.Config) (*pgxpool.Pool, error)
	Stdout     *os.File
}

// DefaultDeps returns the production dependency set.
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig: config.Load,
		Connect:    connectPool,
		Stdout:     os.Stdout,
	}
}

func connectPool(ctx context.Context, cfg *db.Config) (*pgxpool.Pool, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s/%s: %w", cfg.Host, cfg.Database, err)
	}
	return pool, nil
}

// newLogger builds the process logger from config and the --debug flag.
func newLogger(cfg *config.Config, debug bool) logging.Logger {
	level := cfg.LogLevel
	if debug || cfg.Debug {
		level = "debug"
	}
	return logging.NewLogger(&logging.Config{
		Level:       logging.Level(level),
		ServiceName: "newsscout",
		JSONFormat:  false,
		Output:      os.Stderr,
	})
}

// newSeenCache builds the optional Redis-backed seen-URL set, or nil
// when Redis is not configured.
func newSeenCache(cfg *config.Config) *pagecache.SeenCache {
	if !cfg.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return pagecache.NewSeenCache(client, 0)
}

// newPageCache builds the page cache, with the Redis seen set in front
// when configured.
func newPageCache(cfg *config.Config, pool *pgxpool.Pool, log logging.Logger) *pagecache.Cache {
	return pagecache.NewCache(pool, newSeenCache(cfg), log)
}
