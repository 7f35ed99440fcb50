package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/rrgdev/url-shortener/internal/adapter/repository/memory"
	"github.com/rrgdev/url-shortener/internal/adapter/repository/postgres"
	"github.com/rrgdev/url-shortener/internal/config"
	"github.com/rrgdev/url-shortener/internal/entity"
	"github.com/rrgdev/url-shortener/internal/shortid"
	"github.com/rrgdev/url-shortener/internal/usecase"
	"github.com/rrgdev/url-shortener/pkg/middleware/ratelimit"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	delivery "github.com/rrgdev/url-shortener/internal/adapter/delivery/http"
	pkgpostgres "github.com/rrgdev/url-shortener/pkg/postgres"
)

type urlRepository interface {
	Save(ctx context.Context, shortURLID, fullURL string) (*entity.URL, error)
	RetrieveByShortURLID(ctx context.Context, shortURLID string) (*entity.URL, error)
	RetrieveAllByFullURL(ctx context.Context, fullURL string) ([]*entity.URL, error)
	IncrementVisits(ctx context.Context, shortURLID string) (*entity.URL, error)
}

// newURLRepository opens the configured store. The returned func releases it.
func newURLRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (urlRepository, func() error, error) {
	const op = "app.newURLRepository"

	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, urls will be lost on restart")
		return memory.NewURLRepository(), func() error { return nil }, nil
	default:
		db, err := pkgpostgres.New(
			ctx,
			cfg.Postgres.DSN(),
			pkgpostgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
			pkgpostgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
			pkgpostgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
			pkgpostgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
		}

		version, err := pkgpostgres.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN())
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("%s: failed to run migrations: %w", op, err)
		}
		logger.Info("database schema is up to date", slog.Uint64("version", uint64(version)))

		return postgres.NewURLRepository(db), db.Close, nil
	}
}

func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	urlRepo, closeRepo, err := newURLRepository(ctx, cfg, logger.Logger)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer closeRepo()

	urlUseCase := usecase.New(
		cfg.ShortURL.AttemptLimit,
		shortid.NewGenerator(cfg.ShortURL.IDLength),
		urlRepo,
		logger.Logger,
	)

	var middlewares []func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TTL, logger.Logger)
		middlewares = append(middlewares, limiter.Handler)
	}

	router := delivery.NewRouter(logger, urlUseCase, cfg.BaseURL, middlewares...)

	server := &http.Server{
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", cfg.HTTPServer.Addr())
	if err != nil {
		return fmt.Errorf("%s: failed to listen on %s: %w", op, cfg.HTTPServer.Addr(), err)
	}
	if cfg.HTTPServer.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, cfg.HTTPServer.MaxConnections)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server",
			slog.String("addr", ln.Addr().String()),
			slog.String("env", cfg.Env),
			slog.String("storage", cfg.Storage),
		)

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ServeTLS(ln, cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.Serve(ln)
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
