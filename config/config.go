// Package config provides configuration management for the newsscout
// CLI. It supports loading configuration from YAML files and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fantasyedge/newsscout/pkg/db"
)

// Default configuration values.
const (
	DefaultConfigDir    = ".newsscout"
	DefaultConfigFile   = "config.yaml"
	DefaultBatchSize    = 10
	DefaultFetchDelay   = 2 * time.Second
	DefaultModelTimeout = 180 * time.Second
)

// RedisConfig holds optional Redis settings for the seen-URL cache.
// When disabled the page cache answers dedup queries from Postgres
// alone.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// ExtractionConfig holds model invocation and batch settings.
type ExtractionConfig struct {
	// Command is the model CLI executable plus leading arguments.
	Command []string `yaml:"command,omitempty"`

	// ModelVersion is recorded on every stored mention for audit.
	ModelVersion string `yaml:"model_version,omitempty"`

	// Timeout bounds a single model invocation.
	Timeout time.Duration `yaml:"-"`

	// BatchSize is the number of articles per extraction run.
	BatchSize int `yaml:"batch_size"`

	// Delay is the pause between model calls within a batch.
	Delay time.Duration `yaml:"-"`
}

// Config holds the full newsscout configuration.
type Config struct {
	// NewsDB is the page cache and mention store.
	NewsDB *db.Config `yaml:"-"`

	// RosterDB holds canonical player rows. Usually the same server as
	// NewsDB but addressable separately.
	RosterDB *db.Config `yaml:"-"`

	// Redis is the optional seen-URL accelerator.
	Redis RedisConfig `yaml:"redis"`

	// Extraction tunes the mention extraction pipeline.
	Extraction ExtractionConfig `yaml:"extraction"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Debug enables verbose logging regardless of LogLevel.
	Debug bool `yaml:"debug,omitempty"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		NewsDB:   db.DefaultConfig(),
		RosterDB: db.DefaultConfig(),
		Extraction: ExtractionConfig{
			Timeout:   DefaultModelTimeout,
			BatchSize: DefaultBatchSize,
			Delay:     DefaultFetchDelay,
		},
		LogLevel: "info",
	}
}

// ConfigDir returns the configuration directory path.
// Uses $NEWSSCOUT_CONFIG_DIR if set, otherwise ~/.newsscout
func ConfigDir() (string, error) {
	if dir := os.Getenv("NEWSSCOUT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// Load loads the configuration. Sources are applied in order, later
// overriding earlier:
//  1. Default values
//  2. Config file (~/.newsscout/config.yaml or $NEWSSCOUT_CONFIG_DIR/config.yaml)
//  3. Environment variables (NEWS_DB_*, ROSTER_DB_*, NEWSSCOUT_*)
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// Durations come in as strings; database blocks as their own maps.
	type dbFile struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Database string `yaml:"database"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		SSLMode  string `yaml:"sslmode"`
	}
	type extractionFile struct {
		Command      []string `yaml:"command"`
		ModelVersion string   `yaml:"model_version"`
		Timeout      string   `yaml:"timeout"`
		BatchSize    int      `yaml:"batch_size"`
		Delay        string   `yaml:"delay"`
	}
	type configFile struct {
		NewsDB     *dbFile        `yaml:"news_db"`
		RosterDB   *dbFile        `yaml:"roster_db"`
		Redis      *RedisConfig   `yaml:"redis"`
		Extraction extractionFile `yaml:"extraction"`
		LogLevel   string         `yaml:"log_level"`
		Debug      bool           `yaml:"debug"`
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	applyDB := func(dst *db.Config, src *dbFile) {
		if src == nil {
			return
		}
		if src.Host != "" {
			dst.Host = src.Host
		}
		if src.Port != 0 {
			dst.Port = src.Port
		}
		if src.Database != "" {
			dst.Database = src.Database
		}
		if src.User != "" {
			dst.User = src.User
		}
		if src.Password != "" {
			dst.Password = src.Password
		}
		if src.SSLMode != "" {
			dst.SSLMode = src.SSLMode
		}
	}
	applyDB(cfg.NewsDB, fileCfg.NewsDB)
	applyDB(cfg.RosterDB, fileCfg.RosterDB)
	// The roster usually lives next to the news tables; an absent
	// roster_db block means "same as news_db".
	if fileCfg.RosterDB == nil {
		applyDB(cfg.RosterDB, fileCfg.NewsDB)
	}

	if fileCfg.Redis != nil {
		cfg.Redis = *fileCfg.Redis
	}
	if len(fileCfg.Extraction.Command) > 0 {
		cfg.Extraction.Command = fileCfg.Extraction.Command
	}
	if fileCfg.Extraction.ModelVersion != "" {
		cfg.Extraction.ModelVersion = fileCfg.Extraction.ModelVersion
	}
	if fileCfg.Extraction.Timeout != "" {
		timeout, err := time.ParseDuration(fileCfg.Extraction.Timeout)
		if err != nil {
			return fmt.Errorf("parsing extraction timeout: %w", err)
		}
		cfg.Extraction.Timeout = timeout
	}
	if fileCfg.Extraction.BatchSize != 0 {
		cfg.Extraction.BatchSize = fileCfg.Extraction.BatchSize
	}
	if fileCfg.Extraction.Delay != "" {
		delay, err := time.ParseDuration(fileCfg.Extraction.Delay)
		if err != nil {
			return fmt.Errorf("parsing extraction delay: %w", err)
		}
		cfg.Extraction.Delay = delay
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	cfg.Debug = fileCfg.Debug

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *Config) {
	cfg.NewsDB.ApplyEnv("NEWS")
	cfg.RosterDB.ApplyEnv("ROSTER")

	if v := os.Getenv("NEWSSCOUT_REDIS_ADDR"); v != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("NEWSSCOUT_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}

	if v := os.Getenv("NEWSSCOUT_MODEL_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.Extraction.Timeout = timeout
		}
	}
	if v := os.Getenv("NEWSSCOUT_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Extraction.BatchSize = n
		}
	}

	if v := os.Getenv("NEWSSCOUT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NEWSSCOUT_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.NewsDB == nil || c.RosterDB == nil {
		return fmt.Errorf("database configuration missing")
	}
	if err := c.NewsDB.Validate(); err != nil {
		return fmt.Errorf("news_db: %w", err)
	}
	if err := c.RosterDB.Validate(); err != nil {
		return fmt.Errorf("roster_db: %w", err)
	}
	if c.Extraction.BatchSize < 0 {
		return fmt.Errorf("extraction batch_size must not be negative")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis enabled but addr not set")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Save writes the configuration to the config file, creating the
// directory if needed.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
