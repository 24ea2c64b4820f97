package main

import (
	"database/sql"
	"fmt"

	"github.com/hairizuan-noorazman/testcase-service/database"
	"github.com/spf13/cobra"
)

var migrationsPath string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration commands",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrationDB(func(sqlDB *sql.DB, driver, path string) error {
			if err := database.RunMigrations(sqlDB, driver, path); err != nil {
				return err
			}
			fmt.Println("Migrations applied successfully")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrationDB(func(sqlDB *sql.DB, driver, path string) error {
			if err := database.RollbackMigration(sqlDB, driver, path); err != nil {
				return err
			}
			fmt.Println("Migration rolled back successfully")
			return nil
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrationDB(func(sqlDB *sql.DB, driver, path string) error {
			version, dirty, err := database.MigrationVersion(sqlDB, driver, path)
			if err != nil {
				return err
			}
			fmt.Printf("Schema version: %d (dirty: %v)\n", version, dirty)
			return nil
		})
	},
}

// withMigrationDB loads config, connects and hands the raw handle to fn.
func withMigrationDB(fn func(sqlDB *sql.DB, driver, path string) error) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg.Database.ConnectionConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	path := cfg.Database.MigrationsPath
	if migrationsPath != "" {
		path = migrationsPath
	}

	return fn(sqlDB, cfg.Database.Driver, path)
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	migrateCmd.PersistentFlags().StringVarP(&migrationsPath, "path", "p", "", "migrations directory path (overrides database.migrations_path)")

	rootCmd.AddCommand(migrateCmd)
}
