// Package migrate provides database schema management.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appConfig "github.com/festy23/member_search/internal/config"
	dbConfig "github.com/festy23/member_search/internal/database/config"
	memberModel "github.com/festy23/member_search/internal/member/model"
	teamModel "github.com/festy23/member_search/internal/team/model"
)

// GetMigrationsPath returns the path to the migrations directory.
func GetMigrationsPath() string {
	return appConfig.GetEnv("MIGRATIONS_PATH", "migrations")
}

// Apply brings the schema up to date for the given driver.
// PostgreSQL uses the versioned SQL migrations; SQLite, used for local runs,
// is migrated from the gorm models.
func Apply(db *gorm.DB, driver string, logger *zap.SugaredLogger) error {
	switch driver {
	case dbConfig.DriverPostgres:
		return Migrate(db, GetMigrationsPath(), logger)
	case dbConfig.DriverSQLite:
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// AutoMigrate creates the teams and members tables from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := db.AutoMigrate(&teamModel.Team{}, &memberModel.Member{}); err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}
	return nil
}

// Migrate applies pending PostgreSQL migrations from migrationsDir using golang-migrate.
func Migrate(db *gorm.DB, migrationsDir string, logger *zap.SugaredLogger) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	migrationsPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}

	if _, statErr := os.Stat(migrationsPath); os.IsNotExist(statErr) {
		return fmt.Errorf("migrations directory does not exist: %s", migrationsPath)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if logger != nil {
		m.Log = &migrateLogger{logger: logger}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	if logger != nil {
		logger.Infow("migrations applied", "version", version, "dirty", dirty)
	}

	return nil
}

// migrateLogger adapts zap to golang-migrate's Logger interface.
type migrateLogger struct {
	logger *zap.SugaredLogger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Debugf(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
