package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"manero/config"
	"manero/internal/domain/lifecycle"
	"manero/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	defaultConnectAttempts   = 1
	defaultConnectBackoff    = time.Second
	defaultPoolWaitThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type startupOptions struct {
	autoMigrate       bool
	connectAttempts   int
	connectBackoff    time.Duration
	poolWaitThreshold time.Duration
}

func newStartupOptions(cfg *config.Config) startupOptions {
	opts := startupOptions{
		connectAttempts:   defaultConnectAttempts,
		connectBackoff:    defaultConnectBackoff,
		poolWaitThreshold: defaultPoolWaitThreshold,
	}
	if cfg == nil || cfg.Database == nil {
		return opts
	}

	opts.autoMigrate = cfg.Database.AutoMigrate
	if cfg.Database.ConnectAttempts > 0 {
		opts.connectAttempts = cfg.Database.ConnectAttempts
	}
	if cfg.Database.ConnectBackoff > 0 {
		opts.connectBackoff = cfg.Database.ConnectBackoff
	}
	if cfg.Database.PoolWaitThreshold > 0 {
		opts.poolWaitThreshold = cfg.Database.PoolWaitThreshold
	}

	return opts
}

// New opens the catalog database. On start it waits until Postgres accepts
// connections and applies the schema when database.autoMigrate is set.
// Live pool statistics are exported by the metrics package.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Multi-step writes go through TransactionManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	opts := newStartupOptions(params.Config)

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := waitForDatabase(ctx, params.Logger, sqlDB, opts); err != nil {
				return err
			}
			if !opts.autoMigrate {
				return nil
			}
			if err := Migrate(ctx, db); err != nil {
				return err
			}
			params.Logger.Info("Schema migrated on start")

			return nil
		},
		OnStop: func(_ context.Context) error {
			logPoolWaits(params.Logger, sqlDB.Stats(), opts.poolWaitThreshold)

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// waitForDatabase pings until the server answers or the attempts run out.
func waitForDatabase(ctx context.Context, logger *slog.Logger, db pinger, opts startupOptions) error {
	var lastErr error
	for attempt := 1; attempt <= opts.connectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if attempt == opts.connectAttempts {
			break
		}

		logger.Warn("PostgreSQL not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", opts.connectBackoff),
			slog.Any("error", lastErr),
		)

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "gave up waiting for PostgreSQL")
		case <-time.After(opts.connectBackoff):
		}
	}

	return errors.Wrapf(lastErr, "failed to ping PostgreSQL after %d attempts", opts.connectAttempts)
}

// logPoolWaits summarises connection pool contention over the process lifetime.
func logPoolWaits(logger *slog.Logger, stats sql.DBStats, threshold time.Duration) {
	if logger == nil || stats.WaitCount == 0 {
		return
	}

	avgWait := stats.WaitDuration / time.Duration(stats.WaitCount)
	level := slog.LevelInfo
	if avgWait >= threshold {
		level = slog.LevelWarn
	}

	logger.LogAttrs(context.Background(), level, "PostgreSQL pool waits",
		slog.Int64("waitCount", stats.WaitCount),
		slog.Duration("waitDuration", stats.WaitDuration),
		slog.Duration("avgWait", avgWait),
		slog.Int("maxOpenConns", stats.MaxOpenConnections),
	)
}
