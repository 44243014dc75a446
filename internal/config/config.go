// Package config loads the service configuration: defaults, then an optional YAML file,
// then a .env file and DWENGO_* environment variables. Command-line flags are applied
// last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/SELab-2/Dwengo-4-sub000/internal/validation"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "dwengo.yaml"

type Config struct {
	LogLevel string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON  bool          `yaml:"log_json"`
	Store    StoreConfig   `yaml:"store"`
	Catalog  CatalogConfig `yaml:"catalog"`
	HTTP     HTTPConfig    `yaml:"http"`
	Editor   EditorConfig  `yaml:"editor"`
}

type StoreConfig struct {
	Driver string      `yaml:"driver" validate:"oneof=memory file redis"`
	Dir    string      `yaml:"dir" validate:"required_if=Driver file"`
	Redis  RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"required"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix"`
}

type CatalogConfig struct {
	// File is a YAML catalog, Dir a directory of markdown documents with front matter.
	// With neither set the built-in sample content is served.
	File     string        `yaml:"file" validate:"excluded_with=Dir"`
	Dir      string        `yaml:"dir"`
	Watch    bool          `yaml:"watch"`
	CacheTTL time.Duration `yaml:"cache_ttl" validate:"gte=0"`
}

type HTTPConfig struct {
	Addr        string        `yaml:"addr" validate:"required"`
	SessionIdle time.Duration `yaml:"session_idle" validate:"gte=0"`
}

type EditorConfig struct {
	NoticeTTL time.Duration `yaml:"notice_ttl" validate:"gte=0"`
	LockTTL   time.Duration `yaml:"lock_ttl" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store: StoreConfig{
			Driver: "memory",
			Dir:    ".dwengo/paths",
			Redis:  RedisConfig{Addr: "localhost:6379", Prefix: "dwengo:"},
		},
		Catalog: CatalogConfig{CacheTTL: 5 * time.Minute},
		HTTP:    HTTPConfig{Addr: ":8080", SessionIdle: 2 * time.Hour},
		Editor:  EditorConfig{NoticeTTL: 5 * time.Second, LockTTL: 30 * time.Second},
	}
}

// Load builds the configuration. path may be empty; envFile is ".env" when empty, and a
// missing env file is not an error.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that the YAML decoder cannot.
func (c Config) Validate() error {
	return validation.Struct(c)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("DWENGO_LOG_LEVEL", &cfg.LogLevel)
	if v, ok := lookup("DWENGO_LOG_JSON"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DWENGO_LOG_JSON: %w", err))
		}
		cfg.LogJSON = b
	}
	str("DWENGO_STORE_DRIVER", &cfg.Store.Driver)
	str("DWENGO_STORE_DIR", &cfg.Store.Dir)
	str("DWENGO_REDIS_ADDR", &cfg.Store.Redis.Addr)
	str("DWENGO_REDIS_PASSWORD", &cfg.Store.Redis.Password)
	str("DWENGO_REDIS_PREFIX", &cfg.Store.Redis.Prefix)
	if v, ok := lookup("DWENGO_REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DWENGO_REDIS_DB: %w", err))
		}
		cfg.Store.Redis.DB = db
	}
	str("DWENGO_CATALOG_FILE", &cfg.Catalog.File)
	str("DWENGO_CATALOG_DIR", &cfg.Catalog.Dir)
	if v, ok := lookup("DWENGO_CATALOG_WATCH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DWENGO_CATALOG_WATCH: %w", err))
		}
		cfg.Catalog.Watch = b
	}
	dur("DWENGO_CATALOG_CACHE_TTL", &cfg.Catalog.CacheTTL)
	str("DWENGO_HTTP_ADDR", &cfg.HTTP.Addr)
	dur("DWENGO_SESSION_IDLE", &cfg.HTTP.SessionIdle)
	dur("DWENGO_NOTICE_TTL", &cfg.Editor.NoticeTTL)
	dur("DWENGO_LOCK_TTL", &cfg.Editor.LockTTL)

	return errors.Join(errs...)
}
