package database

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// DriverMySQL selects a MySQL server reached over TCP.
	DriverMySQL = "mysql"

	// DriverSQLite selects a local SQLite database file.
	DriverSQLite = "sqlite"
)

// Config holds database connection settings.
type Config struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	Path         string // SQLite file path
	MaxOpenConns int
	MaxIdleConns int
	LogQueries   bool
}

// NowFunc is the clock used for created_on and updated_on. It is truncated
// to milliseconds to match DATETIME(3) so that a record returned from a
// write compares equal to the same record read back.
func NowFunc() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// DSN builds the driver-specific data source name.
func (c Config) DSN() (string, error) {
	switch c.Driver {
	case DriverMySQL, "":
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		mc.DBName = c.Database
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.MultiStatements = true
		// Report matched rather than changed rows so that an update writing
		// identical values is not mistaken for a missing row.
		mc.ClientFoundRows = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN(), nil
	case DriverSQLite:
		if c.Path == "" {
			return "", fmt.Errorf("sqlite driver requires a database path")
		}
		return c.Path + "?_foreign_keys=on", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Connect opens a GORM connection for the configured driver and applies
// pool settings.
func Connect(cfg Config) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		dialector = gormmysql.Open(dsn)
	}

	logLevel := gormlogger.Silent
	if cfg.LogQueries {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        NowFunc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
