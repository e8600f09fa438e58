package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/allisson/budgets/internal/config"
	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
	"github.com/allisson/budgets/internal/metrics"
)

// newTestConfig returns a configuration rooted in a fresh temporary directory.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DBPath:               filepath.Join(dir, "secure_budgets.db"),
		DBMaxOpenConnections: 1,
		DBMaxIdleConnections: 1,
		DBBusyTimeout:        time.Second,
		KeyFile:              filepath.Join(dir, "budget_key.key"),
		CipherAlgorithm:      "aes-gcm",
		LogLevel:             "debug",
		MetricsNamespace:     "budgets",
		MetricsFile:          filepath.Join(dir, "budgets.prom"),
	}
}

func shutdown(t *testing.T, c *Container) {
	t.Helper()
	if err := c.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := newTestConfig(t)

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	var buf bytes.Buffer
	container := NewContainer(&config.Config{LogLevel: "debug"}, WithLogOutput(&buf))
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}

	logger.Debug("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("expected JSON log record, got %q", buf.String())
	}
}

// TestContainerLoggerDefaultLevel verifies that logger defaults to info level.
func TestContainerLoggerDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	container := NewContainer(&config.Config{LogLevel: "invalid"}, WithLogOutput(&buf))

	container.Logger().Debug("hidden")
	container.Logger().Info("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info record should be written")
	}
}

// TestContainerDB verifies the database is migrated on first access.
func TestContainerDB(t *testing.T) {
	container := NewContainer(newTestConfig(t), WithLogOutput(&bytes.Buffer{}))
	defer shutdown(t, container)

	db, err := container.DB()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM budgets").Scan(&n); err != nil {
		t.Fatalf("expected budgets table after migration: %v", err)
	}

	db2, err := container.DB()
	if err != nil || db2 != db {
		t.Error("expected same database instance on multiple calls")
	}
}

// TestContainerInitializationErrors verifies that initialization errors are cached and returned.
func TestContainerInitializationErrors(t *testing.T) {
	cfg := newTestConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.DBPath = filepath.Join(blocker, "sub", "budgets.db")

	container := NewContainer(cfg, WithLogOutput(&bytes.Buffer{}))

	_, err1 := container.DB()
	if err1 == nil {
		t.Fatal("expected error for unusable database path")
	}

	_, err2 := container.DB()
	if err2 == nil || err2.Error() != err1.Error() {
		t.Errorf("expected cached error, got %v", err2)
	}

	if _, err := container.BudgetUseCase(); err == nil {
		t.Error("expected budget use case to fail without a database")
	}
}

// TestContainerKey verifies the key file is created once and reloaded.
func TestContainerKey(t *testing.T) {
	cfg := newTestConfig(t)
	ctx := context.Background()

	first := NewContainer(cfg, WithLogOutput(&bytes.Buffer{}))
	key1, err := first.Key(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	km, _ := first.KeyManager(ctx)
	if !km.Generated() {
		t.Error("expected first container to generate the key")
	}
	shutdown(t, first)

	second := NewContainer(cfg, WithLogOutput(&bytes.Buffer{}))
	key2, err := second.Key(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	km2, _ := second.KeyManager(ctx)
	if km2.Generated() {
		t.Error("expected second container to load the existing key")
	}
	if key1 != key2 {
		t.Error("expected the same key after restart")
	}
	shutdown(t, second)
}

// TestContainerKeyCorrupt verifies a damaged key file is reported and left alone.
func TestContainerKeyCorrupt(t *testing.T) {
	cfg := newTestConfig(t)
	if err := os.WriteFile(cfg.KeyFile, []byte("short"), 0o600); err != nil {
		t.Fatal(err)
	}

	container := NewContainer(cfg, WithLogOutput(&bytes.Buffer{}))
	defer shutdown(t, container)

	_, err := container.ItemUseCase(context.Background())
	if !errors.Is(err, cryptoDomain.ErrKeyCorrupt) {
		t.Fatalf("expected ErrKeyCorrupt, got %v", err)
	}

	content, _ := os.ReadFile(cfg.KeyFile)
	if string(content) != "short" {
		t.Error("corrupt key file must not be overwritten")
	}
}

// TestContainerKMSWrappedKey verifies the key file is wrapped when a KMS key URI is set.
func TestContainerKMSWrappedKey(t *testing.T) {
	cfg := newTestConfig(t)
	secret := bytes.Repeat([]byte{7}, 32)
	cfg.KMSKeyURI = "base64key://" + base64.URLEncoding.EncodeToString(secret)
	ctx := context.Background()

	container := NewContainer(cfg, WithLogOutput(&bytes.Buffer{}))
	if _, err := container.Key(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shutdown(t, container)

	content, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(content) == cryptoDomain.KeySize {
		t.Error("expected wrapped key file, found raw key length")
	}
}

// TestContainerUnsupportedAlgorithm verifies configuration errors surface from FieldCipher.
func TestContainerUnsupportedAlgorithm(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.CipherAlgorithm = "rot13"

	container := NewContainer(cfg, WithLogOutput(&bytes.Buffer{}))
	defer shutdown(t, container)

	_, err := container.FieldCipher(context.Background())
	if !errors.Is(err, cryptoDomain.ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

// TestContainerUseCases verifies the use cases are wired end to end.
func TestContainerUseCases(t *testing.T) {
	ctx := context.Background()
	container := NewContainer(newTestConfig(t), WithLogOutput(&bytes.Buffer{}))
	defer shutdown(t, container)

	budgets, err := container.BudgetUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := container.ItemUseCase(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	budget, err := budgets.Create(ctx, "Groceries")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := items.Add(ctx, budget.ID, "Milk", "3.50"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := items.List(ctx, budget.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Description != "Milk" {
		t.Errorf("unexpected listing: %+v", list.Items)
	}
}

// TestContainerBusinessMetrics verifies metrics selection and textfile export on shutdown.
func TestContainerBusinessMetrics(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		container := NewContainer(newTestConfig(t))

		bm, err := container.BusinessMetrics()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := bm.(*metrics.NoOpBusinessMetrics); !ok {
			t.Errorf("expected no-op metrics, got %T", bm)
		}
		if container.MetricsProvider() != nil {
			t.Error("expected no provider when metrics are disabled")
		}
	})

	t.Run("enabled", func(t *testing.T) {
		ctx := context.Background()
		cfg := newTestConfig(t)
		cfg.MetricsEnabled = true
		container := NewContainer(cfg, WithLogOutput(&bytes.Buffer{}))

		budgets, err := container.BudgetUseCase()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := budgets.Create(ctx, "Groceries"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		shutdown(t, container)

		content, err := os.ReadFile(cfg.MetricsFile)
		if err != nil {
			t.Fatalf("expected metrics file: %v", err)
		}
		if !strings.Contains(string(content), "budgets_operations_total") {
			t.Errorf("expected operation counter in metrics file, got %q", content)
		}
	})
}

// TestContainerShutdownTwice verifies that a second Shutdown is a no-op.
func TestContainerShutdownTwice(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MetricsEnabled = true
	container := NewContainer(cfg, WithLogOutput(&bytes.Buffer{}))

	if _, err := container.DB(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := container.BusinessMetrics(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shutdown(t, container)
	shutdown(t, container)
}
