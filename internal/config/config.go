// Package config loads server settings from defaults, an optional YAML
// file and HEALTHGUIDE_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const envPrefix = "HEALTHGUIDE_"

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    ":8080",
			Origins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "./healthguide.db",
			Redis: RedisConfig{
				Host:   "127.0.0.1",
				Port:   6379,
				Prefix: "healthguide:",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Search:   SearchConfig{Coverage: "deep"},
		Language: "en",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
// HEALTHGUIDE_STORAGE_REDIS_HOST maps to storage.redis.host.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

var validDrivers = map[StorageDriver]bool{
	DriverSQLite: true,
	DriverRedis:  true,
	DriverMemory: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if !validDrivers[c.Storage.Driver] {
		return fmt.Errorf("invalid storage.driver %q: must be one of sqlite, redis, memory", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for the sqlite driver")
	}
	if c.Storage.Driver == DriverRedis && (c.Storage.Redis.Port <= 0 || c.Storage.Redis.Port > 65535) {
		return fmt.Errorf("invalid storage.redis.port %d", c.Storage.Redis.Port)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}

	if c.Search.Coverage != "" && c.Search.Coverage != "deep" && c.Search.Coverage != "basic" {
		return fmt.Errorf("invalid search.coverage %q: must be deep or basic", c.Search.Coverage)
	}

	return nil
}

// NewLogger builds a logrus logger from the log settings.
func (c LogConfig) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
