package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 8000
	defaultEnv        = "development"
	defaultDSN        = "root:password@tcp(127.0.0.1:3306)/spec10x?charset=utf8mb4&parseTime=True&loc=Local"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultEmbedModel = "text-embedding-3-small"
	defaultEmbedDims  = 768
	defaultAITimeout  = 60
)

// Load reads YAML config from path, then applies environment overrides and defaults.
// A missing file is not an error: defaults plus environment are enough for dev.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.ToLower(strings.TrimSpace(c.Env)) != "production"
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("SPEC10X_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := os.Getenv("SPEC10X_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("SPEC10X_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("SPEC10X_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("SPEC10X_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SPEC10X_USE_MOCK_AI"); v != "" {
		cfg.AI.UseMock = v == "1" || strings.EqualFold(v, "true")
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DSN == "" {
		cfg.DSN = defaultDSN
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = defaultEmbedModel
	}
	if cfg.AI.EmbeddingDimensions == 0 {
		cfg.AI.EmbeddingDimensions = defaultEmbedDims
	}
	if cfg.AI.RequestTimeoutSec == 0 {
		cfg.AI.RequestTimeoutSec = defaultAITimeout
	}
	if len(cfg.AI.Providers) == 0 {
		// Without a configured provider the pipeline runs in mock mode.
		cfg.AI.UseMock = true
	}
	if cfg.Limits.FreeInterviewsPerMonth == 0 {
		cfg.Limits.FreeInterviewsPerMonth = 10
	}
	if cfg.Limits.FreeQueriesPerMonth == 0 {
		cfg.Limits.FreeQueriesPerMonth = 50
	}
}
