// Package storage opens the SQL backends behind the content store and
// creates their tables.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudmlm/go-sitecms/internal/logging"
	"github.com/cloudmlm/go-sitecms/internal/runtimeconfig"
	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	ProviderMemory   = "memory"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
)

var (
	// ErrMemoryProvider is returned by Open for the in-process provider,
	// which has no database.
	ErrMemoryProvider  = errors.New("storage: memory provider has no database")
	ErrUnknownProvider = errors.New("storage: unknown provider")
)

// Option configures Open.
type Option func(*options)

type options struct {
	logger interfaces.Logger
}

func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// DB is an opened database plus the driver pool behind it, if any.
type DB struct {
	*bun.DB
	pool *pgxpool.Pool
}

// Close closes the database and then the pgx pool it was opened from.
func (d *DB) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	err := d.DB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// Open connects to the configured SQL provider. The returned database is
// pinged before it is handed back; callers release it with DB.Close.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig, opts ...Option) (*DB, error) {
	o := options{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	var (
		db  *DB
		err error
	)
	switch provider {
	case "", ProviderMemory:
		return nil, ErrMemoryProvider
	case ProviderSQLite:
		db, err = openSQLite(cfg.DSN)
	case ProviderPostgres:
		db, err = openPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", provider, err)
	}
	if cfg.Debug {
		db.AddQueryHook(&queryLogger{logger: o.logger})
	}
	o.logger.Info("storage.opened", "provider", provider)
	return db, nil
}

func openSQLite(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	// sqlite serialises writers; a single connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)
	return &DB{DB: bun.NewDB(sqlDB, sqlitedialect.New())}, nil
}

func openPostgres(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("storage: parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: open postgres pool: %w", err)
	}
	return &DB{DB: bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New()), pool: pool}, nil
}

type queryLogger struct {
	logger interfaces.Logger
}

func (h *queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogger) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	args := []any{"query", event.Query, "duration_ms", time.Since(event.StartTime).Milliseconds()}
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.logger.WithContext(ctx).Warn("storage.query_failed", append(args, "error", event.Err)...)
		return
	}
	h.logger.WithContext(ctx).Debug("storage.query", args...)
}
