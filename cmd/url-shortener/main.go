package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/rrgdev/url-shortener/internal/app"
	"github.com/rrgdev/url-shortener/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("url-shortener stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Env)

	return app.Run(ctx, cfg, logger)
}

func newLogger(env string) *httplog.Logger {
	opts := httplog.Options{
		LogLevel:        slog.LevelDebug,
		Concise:         true,
		RequestHeaders:  true,
		TimeFieldFormat: "2006-01-02T15:04:05.000Z07:00",
		Tags:            map[string]string{"env": env},
		QuietDownRoutes: []string{"/api/v1/ping"},
		QuietDownPeriod: 10 * time.Second,
	}

	switch env {
	case config.EnvProd:
		opts.JSON = true
		opts.Concise = false
		opts.LogLevel = slog.LevelInfo
	case config.EnvStage:
		opts.JSON = true
		opts.LogLevel = slog.LevelInfo
	}

	return httplog.NewLogger("url-shortener", opts)
}
