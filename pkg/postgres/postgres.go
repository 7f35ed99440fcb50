package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const driverName = "pgx"

const (
	defaultConnMaxIdleTime = 5 * time.Minute
	defaultConnMaxLifetime = 30 * time.Minute
	defaultMaxIdleConns    = 5
	defaultMaxOpenConns    = 25
)

// Option tunes the connection pool. Non-positive values keep the default.
type Option func(*pool)

type pool struct {
	connMaxIdleTime time.Duration
	connMaxLifetime time.Duration
	maxIdleConns    int
	maxOpenConns    int
}

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(p *pool) {
		if d > 0 {
			p.connMaxIdleTime = d
		}
	}
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(p *pool) {
		if d > 0 {
			p.connMaxLifetime = d
		}
	}
}

func WithMaxIdleConns(n int) Option {
	return func(p *pool) {
		if n > 0 {
			p.maxIdleConns = n
		}
	}
}

func WithMaxOpenConns(n int) Option {
	return func(p *pool) {
		if n > 0 {
			p.maxOpenConns = n
		}
	}
}

// New opens a pgx-backed pool and pings it before returning.
func New(ctx context.Context, dsn string, opts ...Option) (*sqlx.DB, error) {
	const op = "pkg.postgres.New"

	p := &pool{
		connMaxIdleTime: defaultConnMaxIdleTime,
		connMaxLifetime: defaultConnMaxLifetime,
		maxIdleConns:    defaultMaxIdleConns,
		maxOpenConns:    defaultMaxOpenConns,
	}
	for _, opt := range opts {
		opt(p)
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}

	p.apply(db)

	return db, nil
}

func (p *pool) apply(db *sqlx.DB) {
	db.SetConnMaxIdleTime(p.connMaxIdleTime)
	db.SetConnMaxLifetime(p.connMaxLifetime)
	db.SetMaxIdleConns(p.maxIdleConns)
	db.SetMaxOpenConns(p.maxOpenConns)
}
