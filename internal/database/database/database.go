// Package database provides database connection management for PostgreSQL and SQLite.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/member_search/internal/database/config"
	"github.com/festy23/member_search/internal/database/migrate"
	"github.com/festy23/member_search/internal/database/pool"
	"github.com/festy23/member_search/pkg/retry"
)

const connectTimeout = 2 * time.Minute

// New creates a new database connection using environment variables.
func New(logger *zap.SugaredLogger) (*gorm.DB, error) {
	cfg := config.LoadConfigFromEnv()
	return NewWithConfig(cfg, logger)
}

// NewWithConfig opens a connection for cfg.Driver and configures its pool.
// PostgreSQL connections are retried with backoff while the server is unreachable.
func NewWithConfig(cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db      *gorm.DB
		poolCfg pool.Config
		err     error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = openPostgres(cfg, gormCfg, logger)
		if err != nil {
			return nil, err
		}
		poolCfg = config.LoadPoolConfigFromEnv()
	case config.DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		poolCfg = pool.SQLiteConfig()
	}

	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("database connected",
		"driver", cfg.Driver,
		"max_open_conns", poolCfg.MaxOpenConns,
	)

	return db, nil
}

func openPostgres(cfg config.Config, gormCfg *gorm.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	retryCfg := config.LoadRetryConfigFromEnv()
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("database connection failed, retrying",
			"attempt", attempt,
			"delay", delay,
			"error", config.SanitizeError(err, cfg),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	dsn := config.BuildDSN(cfg)
	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), gormCfg)
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	return db, nil
}

// Prepare brings the schema up to date for the configured driver.
func Prepare(db *gorm.DB, cfg config.Config, logger *zap.SugaredLogger) error {
	if err := migrate.Apply(db, cfg.Driver, logger); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}
	return nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
