// Package testutil provides testing utilities for database integration tests.
//
// Database Setup:
//
//	db := testutil.SetupSQLiteDB(t)
//
// The database lives in t.TempDir(), has every embedded migration applied and
// is closed by t.Cleanup.
//
// Test Fixtures (for foreign key constraints):
//
//	budgetID := testutil.CreateTestBudget(t, db, "Groceries")
//	itemID := testutil.CreateTestItem(t, db, budgetID, "desc-token", "amount-token")
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/allisson/budgets/internal/database"
)

// SQLiteConfig returns a database configuration pointing at a fresh file in t.TempDir().
func SQLiteConfig(t *testing.T) database.Config {
	t.Helper()

	return database.Config{
		Driver:             database.DefaultDriver,
		Path:               filepath.Join(t.TempDir(), "secure_budgets.db"),
		BusyTimeout:        5 * time.Second,
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
	}
}

// SetupSQLiteDB creates a migrated SQLite database in a temporary directory.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := SQLiteConfig(t)

	err := database.Migrate(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err, "failed to run sqlite migrations")

	db, err := database.Connect(cfg)
	require.NoError(t, err, "failed to connect to sqlite")

	t.Cleanup(func() {
		require.NoError(t, db.Close(), "failed to close database connection")
	})

	return db
}

// CreateTestBudget inserts a budget and returns its id.
func CreateTestBudget(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	res, err := db.ExecContext(context.Background(), `INSERT INTO budgets (name) VALUES (?)`, name)
	require.NoError(t, err, "failed to create test budget: "+name)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// CreateTestItem inserts an item with the given stored column values and returns its id.
// The values are written as-is, so callers pass tokens (or garbage) directly.
func CreateTestItem(t *testing.T, db *sql.DB, budgetID int64, description, amount string) int64 {
	t.Helper()

	res, err := db.ExecContext(
		context.Background(),
		`INSERT INTO items (budget_id, description, amount) VALUES (?, ?, ?)`,
		budgetID,
		description,
		amount,
	)
	require.NoError(t, err, "failed to create test item")

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	//nolint:gosec // table names come from tests
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

// StoredItemColumns returns the raw description and amount columns of an item.
func StoredItemColumns(t *testing.T, db *sql.DB, itemID int64) (description, amount string) {
	t.Helper()

	err := db.QueryRowContext(
		context.Background(),
		`SELECT description, amount FROM items WHERE id = ?`,
		itemID,
	).Scan(&description, &amount)
	require.NoError(t, err)
	return description, amount
}
