// Package config loads the knitcalc YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/aretw0/knitcalc/internal/logging"
	"github.com/aretw0/knitcalc/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "knitcalc.yaml"

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config is the full application configuration.
type Config struct {
	Lang       string       `yaml:"lang"`
	Mode       domain.Mode  `yaml:"mode"`
	LocalesDir string       `yaml:"locales_dir"`
	Log        LogConfig    `yaml:"log"`
	Server     ServerConfig `yaml:"server"`
	Cache      CacheConfig  `yaml:"cache"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port      int             `yaml:"port"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig allows Requests per Window and client. Zero requests disables it.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type CacheConfig struct {
	Backend    string      `yaml:"backend"`
	MaxEntries int         `yaml:"max_entries"`
	Redis      RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Lang: "en",
		Mode: domain.Decrease,
		Log:  LogConfig{Level: "info"},
		Server: ServerConfig{
			Port:      8080,
			RateLimit: RateLimitConfig{Requests: 600, Window: time.Minute},
		},
		Cache: CacheConfig{
			Backend:    BackendMemory,
			MaxEntries: 1024,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "knitcalc:result:",
				TTL:    24 * time.Hour,
			},
		},
	}
}

// Load reads path over the defaults. A missing file is not an error unless
// required is set (an explicit --config must exist).
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first field holding an unusable value.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("mode: %w: %q", domain.ErrUnknownMode, c.Mode)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimit.Requests < 0 {
		return fmt.Errorf("server.rate_limit.requests: must not be negative")
	}
	if c.Server.RateLimit.Requests > 0 && c.Server.RateLimit.Window <= 0 {
		return fmt.Errorf("server.rate_limit.window: must be positive")
	}

	switch c.Cache.Backend {
	case BackendMemory:
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries: must be positive")
		}
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr: required for the redis backend")
		}
		if c.Cache.Redis.TTL < 0 {
			return fmt.Errorf("cache.redis.ttl: must not be negative")
		}
	case BackendNone:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q (memory, redis, none)", c.Cache.Backend)
	}
	return nil
}
