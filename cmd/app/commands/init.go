package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
	customValidation "github.com/allisson/budgets/internal/validation"
)

// KeyLoader loads the field encryption key, creating it when it does not exist yet.
type KeyLoader interface {
	GetKey(ctx context.Context) (cryptoDomain.Key, error)
	Generated() bool
}

// RunInit prepares a working directory: it loads or generates the key file and
// applies the database migrations through openStore.
//
// A key file that exists but cannot be used aborts before the database is touched.
func RunInit(
	ctx context.Context,
	keyLoader KeyLoader,
	openStore func() error,
	logger *slog.Logger,
	writer io.Writer,
	keyPath string,
	dbPath string,
	format string,
) error {
	req := &FormatRequest{Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	if _, err := keyLoader.GetKey(ctx); err != nil {
		return fmt.Errorf("failed to load key: %w", err)
	}
	generated := keyLoader.Generated()

	if err := openStore(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	logger.Info("store initialized",
		slog.String("key_file", keyPath),
		slog.Bool("key_generated", generated),
		slog.String("database", dbPath),
	)

	if format == FormatJSON {
		return writeJSON(writer, map[string]interface{}{
			"key_file":      keyPath,
			"key_generated": generated,
			"database":      dbPath,
		})
	}
	outputInitText(writer, keyPath, generated, dbPath)
	return nil
}

func outputInitText(writer io.Writer, keyPath string, generated bool, dbPath string) {
	if generated {
		printSuccess(writer, "New encryption key generated and saved to '%s'", keyPath)
		_, _ = fmt.Fprintln(writer, "  Keep this file safe: without it the stored items cannot be read.")
	} else {
		printSuccess(writer, "Encryption key loaded from '%s'", keyPath)
	}
	printSuccess(writer, "Database ready at '%s'", dbPath)
}
