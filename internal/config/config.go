package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration parsed from environment variables.
// CatalogBaseURL is the single base-URL setting for the remote store API.
// DBConnString is optional; without it carts live in process memory only.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	CatalogBaseURL  string        `env:"CATALOG_BASE_URL" envDefault:"http://localhost:8000/api"`
	DBConnString    string        `env:"DB_DSN"`
	DBMaxConns      int32         `env:"DB_MAX_CONNS" envDefault:"4"`
	AllowedOrigins  []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
