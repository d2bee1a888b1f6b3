// Package db provides shared PostgreSQL utilities for the newsscout pipeline.
//
// The pipeline talks to two databases: the news store (page_cache,
// player_mentions) and the roster store (players). Both are configured with
// the same Config type; ConfigFromEnv reads prefixed environment variables so
// the two can point at different servers.
package db

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds PostgreSQL connection configuration.
type Config struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            5432,
		Database:        "newsscout",
		User:            "newsscout",
		Password:        "",
		SSLMode:         "disable",
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
}

// ConfigFromEnv creates a Config from environment variables with the given
// prefix. With prefix "NEWS" the variables are:
//   - NEWS_DB_HOST: Database host (default: localhost)
//   - NEWS_DB_PORT: Database port (default: 5432)
//   - NEWS_DB_NAME: Database name (default: newsscout)
//   - NEWS_DB_USER: Database user (default: newsscout)
//   - NEWS_DB_PASSWORD: Database password
//   - NEWS_DB_SSLMODE: SSL mode (default: disable)
//   - NEWS_DB_MAX_CONNS: Maximum connections (default: 10)
//   - NEWS_DB_MIN_CONNS: Minimum connections (default: 2)
//
// An empty prefix reads the bare DB_* variables.
func ConfigFromEnv(prefix string) *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv(prefix)
	return cfg
}

// ApplyEnv overlays environment variables with the given prefix onto an
// existing config, leaving unset variables alone.
func (cfg *Config) ApplyEnv(prefix string) {
	key := func(name string) string {
		if prefix == "" {
			return name
		}
		return prefix + "_" + name
	}

	if host := os.Getenv(key("DB_HOST")); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv(key("DB_PORT")); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if database := os.Getenv(key("DB_NAME")); database != "" {
		cfg.Database = database
	}
	if user := os.Getenv(key("DB_USER")); user != "" {
		cfg.User = user
	}
	if password := os.Getenv(key("DB_PASSWORD")); password != "" {
		cfg.Password = password
	}
	if sslmode := os.Getenv(key("DB_SSLMODE")); sslmode != "" {
		cfg.SSLMode = sslmode
	}
	if maxConns := os.Getenv(key("DB_MAX_CONNS")); maxConns != "" {
		if mc, err := strconv.ParseInt(maxConns, 10, 32); err == nil {
			cfg.MaxConns = int32(mc)
		}
	}
	if minConns := os.Getenv(key("DB_MIN_CONNS")); minConns != "" {
		if mc, err := strconv.ParseInt(minConns, 10, 32); err == nil {
			cfg.MinConns = int32(mc)
		}
	}
}

// ConnectionString builds a PostgreSQL connection string from the config.
func (c *Config) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
		int(c.ConnectTimeout.Seconds()),
	)
}

// Validate checks if the config has required fields set.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}
	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.MaxConns < c.MinConns {
		return fmt.Errorf("max connections (%d) must be >= min connections (%d)", c.MaxConns, c.MinConns)
	}
	return nil
}

// Connect creates a new connection pool with the given configuration.
// The caller is responsible for calling pool.Close() when done.
func Connect(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify the connection works
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// ConnectWithRetry creates a connection pool with retry logic.
func ConnectWithRetry(ctx context.Context, cfg *Config, maxAttempts int, retryDelay time.Duration) (*pgxpool.Pool, error) {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		pool, err := Connect(ctx, cfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxAttempts, lastErr)
}

// Close gracefully closes a connection pool if it is not nil.
func Close(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
