// Package database provides database connection management and utilities.
package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDriver is the database/sql driver name registered by modernc.org/sqlite.
const DefaultDriver = "sqlite"

// Config holds database configuration settings.
type Config struct {
	Driver             string
	Path               string
	BusyTimeout        time.Duration
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// DSN builds the SQLite URI for path. Foreign keys and the busy timeout are set
// through _pragma parameters so every pooled connection gets them.
//
// The path is percent-encoded: '?', '#' and '%' are legal in file names but
// would otherwise start the query, start a fragment or be decoded by SQLite.
func DSN(path string, busyTimeout time.Duration) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))

	u := &url.URL{
		Scheme:   "file",
		Opaque:   url.PathEscape(path),
		RawQuery: params.Encode(),
	}
	return u.String()
}

// Connect establishes a database connection with the given configuration.
// The parent directory of the database file is created when missing.
func Connect(cfg Config) (*sql.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DefaultDriver
	}

	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, DSN(cfg.Path, cfg.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
