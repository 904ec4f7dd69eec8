package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" || cfg.OTelServiceName != "condo-forms-api" || cfg.JWTIssuer != "condo-backend" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWTSecret != "" {
		t.Fatalf("expected auth to be optional")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "9090" || cfg.OTelEnabled || cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestLoadRejectsInvalidBool(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "maybe")

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"trace":   slog.LevelInfo,
	}
	for raw, want := range tests {
		if got := (Config{LogLevel: raw}).SlogLevel(); got != want {
			t.Fatalf("LOG_LEVEL %q: expected %v, got %v", raw, want, got)
		}
	}
}
