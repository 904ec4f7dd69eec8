package main

import (
	"context"
	"log/slog"

	"condo-forms/internal/config"
	httpapi "condo-forms/internal/http"
	"condo-forms/internal/service"
	"condo-forms/internal/telemetry"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		return
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:        cfg.OTelEnabled,
		ServiceName:    cfg.OTelServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Level:          cfg.SlogLevel(),
	})
	if err != nil {
		slog.Error("setup telemetry", "error", err)
		return
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Error("shutdown telemetry", "error", err)
		}
	}()

	svc := service.New(service.WithAuthConfig(cfg.JWTSecret, cfg.JWTIssuer))
	if !svc.AuthEnabled() {
		slog.Warn("JWT_SECRET is not set, form endpoints are public")
	}

	router := httpapi.NewRouter(svc, cfg.OTelServiceName)

	slog.Info("api listening", "port", cfg.Port, "version", cfg.ServiceVersion)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("run api", "error", err)
	}
}
