package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/budgets/internal/database"
	customValidation "github.com/allisson/budgets/internal/validation"
)

// RunMigrations applies every pending migration to the SQLite database described by dbConfig.
// Running it against an up-to-date database is a no-op.
func RunMigrations(logger *slog.Logger, writer io.Writer, dbConfig database.Config, format string) error {
	req := &FormatRequest{Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	logger.Info("running database migrations", slog.String("path", dbConfig.Path))

	if err := database.Migrate(dbConfig, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("migrations completed successfully")

	if format == FormatJSON {
		return writeJSON(writer, map[string]interface{}{
			"database": dbConfig.Path,
			"migrated": true,
		})
	}
	printSuccess(writer, "Database %s is up to date", dbConfig.Path)
	return nil
}
