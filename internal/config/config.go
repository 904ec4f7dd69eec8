package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port            string `env:"PORT" envDefault:"8080"`
	OTelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	OTelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"condo-forms-api"`
	ServiceVersion  string `env:"SERVICE_VERSION" envDefault:"dev"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret       string `env:"JWT_SECRET"`
	JWTIssuer       string `env:"JWT_ISSUER" envDefault:"condo-backend"`
}

func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, falling back to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
