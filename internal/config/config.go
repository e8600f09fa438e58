// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	// The transaction manager relies on this being 1 for SQLite.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration
	// DBBusyTimeout is how long SQLite waits on a locked database before failing.
	DBBusyTimeout time.Duration

	// KeyFile is the path of the field encryption key file.
	KeyFile string
	// KMSKeyURI optionally wraps the key file with a KMS key (e.g., base64key://, gcpkms://).
	KMSKeyURI string
	// CipherAlgorithm is the AEAD algorithm used for item fields.
	CipherAlgorithm string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MetricsEnabled indicates whether operation metrics are collected.
	MetricsEnabled bool
	// MetricsNamespace is the prefix for metric names.
	MetricsNamespace string
	// MetricsFile is where metrics are written in Prometheus text format on shutdown.
	MetricsFile string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv()

	return &Config{
		// Database configuration
		DBPath:               env.GetString("DB_PATH", "secure_budgets.db"),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 1),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 1),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 0, time.Minute),
		DBBusyTimeout:        env.GetDuration("DB_BUSY_TIMEOUT", 5000, time.Millisecond),

		// Key management
		KeyFile:         env.GetString("KEY_FILE", "budget_key.key"),
		KMSKeyURI:       env.GetString("KMS_KEY_URI", ""),
		CipherAlgorithm: env.GetString("CIPHER_ALGORITHM", "aes-gcm"),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "budgets"),
		MetricsFile:      env.GetString("METRICS_FILE", "budgets.prom"),
	}
}

// loadDotEnv searches for a .env file from the current directory up to the
// root directory and loads the first one found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
