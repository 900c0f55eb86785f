// Package config loads assessgen settings from defaults, an optional YAML
// file, a .env file and ASSESSGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/assessgen/internal/executor"
	"github.com/abhisek/assessgen/internal/llm"
	"github.com/abhisek/assessgen/internal/logging"
	"github.com/abhisek/assessgen/internal/planner"
)

// Catalog backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Planner  planner.Config `yaml:"planner"`
	Executor ExecutorConfig `yaml:"executor"`
	LLM      llm.Config     `yaml:"llm"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// RequestTimeout bounds each API request. Zero disables it.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Mode  string `yaml:"mode"` // dev or prod
	Level string `yaml:"level"`
}

// CatalogConfig selects the problem catalog backend.
type CatalogConfig struct {
	Backend string `yaml:"backend"`

	// Path is the sqlite database or the JSON problem set, depending on
	// Backend. Empty means the default location for sqlite.
	Path string `yaml:"path"`
}

// ExecutorConfig is the file form of executor.Config.
type ExecutorConfig struct {
	Policy               string `yaml:"policy"`
	MaxConcurrentFetches int    `yaml:"max_concurrent_fetches"`
}

// Default returns the built-in configuration.
func Default() Config {
	exec := executor.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 15 * time.Second,
			Mode:           "release",
		},
		Log: LogConfig{
			Mode:  "dev",
			Level: "info",
		},
		Catalog: CatalogConfig{
			Backend: BackendSQLite,
		},
		Planner: planner.DefaultConfig(),
		Executor: ExecutorConfig{
			Policy:               exec.Policy.String(),
			MaxConcurrentFetches: exec.MaxConcurrentFetches,
		},
		LLM: llm.DefaultConfig(),
	}
}

// Load builds the configuration. A .env file in the working directory is
// loaded first if present, then the YAML file at path (when non-empty) is
// merged over the defaults, and ASSESSGEN_* variables override both.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ASSESSGEN_* environment variables.
func (c *Config) ApplyEnv() error {
	setString(&c.Server.Addr, "ASSESSGEN_ADDR")
	setString(&c.Server.Mode, "ASSESSGEN_GIN_MODE")
	setString(&c.Log.Mode, "ASSESSGEN_LOG_MODE")
	setString(&c.Log.Level, "ASSESSGEN_LOG_LEVEL")
	setString(&c.Catalog.Backend, "ASSESSGEN_CATALOG_BACKEND")
	setString(&c.Catalog.Path, "ASSESSGEN_CATALOG_PATH")
	setString(&c.Executor.Policy, "ASSESSGEN_SELECTION_POLICY")

	if v := os.Getenv("ASSESSGEN_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASSESSGEN_REQUEST_TIMEOUT: %w", err)
		}
		c.Server.RequestTimeout = d
	}
	if v := os.Getenv("ASSESSGEN_MAX_CONCURRENT_FETCHES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASSESSGEN_MAX_CONCURRENT_FETCHES: %w", err)
		}
		c.Executor.MaxConcurrentFetches = n
	}

	c.LLM.ApplyEnv()
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	switch c.Catalog.Backend {
	case BackendSQLite, BackendMemory:
	case BackendFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog: path is required for the file backend")
		}
	default:
		return fmt.Errorf("catalog: unknown backend %q", c.Catalog.Backend)
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server: unknown mode %q", c.Server.Mode)
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server: request_timeout must not be negative")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := c.Planner.Validate(); err != nil {
		return err
	}

	if _, err := c.ExecutorConfig(); err != nil {
		return err
	}

	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// ExecutorConfig converts the executor section into executor.Config.
func (c Config) ExecutorConfig() (executor.Config, error) {
	policy, err := executor.ParsePolicy(c.Executor.Policy)
	if err != nil {
		return executor.Config{}, fmt.Errorf("executor: %w", err)
	}
	if c.Executor.MaxConcurrentFetches < 0 {
		return executor.Config{}, fmt.Errorf("executor: max_concurrent_fetches must not be negative")
	}
	return executor.Config{
		Policy:               policy,
		MaxConcurrentFetches: c.Executor.MaxConcurrentFetches,
	}, nil
}
