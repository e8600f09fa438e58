// Package migrations embeds the SQL schema migrations shipped with the binary.
package migrations

import "embed"

// FS holds the migration files, one directory per database driver.
//
//go:embed sqlite/*.sql
var FS embed.FS
