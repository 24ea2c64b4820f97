package database

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// newMigrator loads migrations from the driver's subdirectory of
// migrationsPath, e.g. migrations/mysql.
func newMigrator(sqlDB *sql.DB, driver, migrationsPath string) (*migrate.Migrate, error) {
	var (
		instance migratedb.Driver
		err      error
	)

	switch driver {
	case DriverSQLite:
		instance, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	case DriverMySQL, "":
		driver = DriverMySQL
		instance, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	sourcePath := filepath.Join(migrationsPath, driver)
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(sourcePath), driver, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations from %s: %w", sourcePath, err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations found in migrationsPath.
func RunMigrations(sqlDB *sql.DB, driver, migrationsPath string) error {
	m, err := newMigrator(sqlDB, driver, migrationsPath)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RollbackMigration reverts the most recently applied migration.
func RollbackMigration(sqlDB *sql.DB, driver, migrationsPath string) error {
	m, err := newMigrator(sqlDB, driver, migrationsPath)
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}

// MigrationVersion returns the current schema version and whether the last
// migration left the schema dirty.
func MigrationVersion(sqlDB *sql.DB, driver, migrationsPath string) (uint, bool, error) {
	m, err := newMigrator(sqlDB, driver, migrationsPath)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
