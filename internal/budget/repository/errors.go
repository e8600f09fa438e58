// Package repository implements SQLite persistence for budgets and items.
// Item columns are stored exactly as handed in; encryption happens in the use case layer.
package repository

import (
	"strings"
	"time"
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a SQLite FOREIGN KEY constraint failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// fromUnix converts a stored unix timestamp to UTC time.
func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
