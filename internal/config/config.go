package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/simaogato/fintrack-backend/internal/logging"
)

const defaultAPIToken = "dev-token"

// Storage backends selectable through STORAGE_BACKEND
const (
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendNone     = "none"
)

var validBackends = []string{BackendSQLite, BackendMemory, BackendPostgres, BackendRedis, BackendNone}

type Config struct {
	// Servers
	GRPCAddr    string
	MetricsAddr string
	APIToken    string

	// Storage
	StorageBackend string
	StorageTimeout time.Duration
	SQLiteDBPath   string
	PostgresDSN    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	// Startup
	SeedSampleData bool

	// Logging
	LogLevel       string
	LogFormat      string
	LogDevelopment bool
}

// Load reads the given dotenv files (".env" when none are given) and then the
// environment. Missing files are ignored and existing variables win.
func Load(files ...string) *Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables alone
func FromEnv() *Config {
	return &Config{
		GRPCAddr:    getEnv("GRPC_ADDR", ":8080"),
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),
		APIToken:    getEnv("API_TOKEN", defaultAPIToken),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
		StorageTimeout: getEnvDuration("STORAGE_TIMEOUT", 2*time.Second),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		PostgresDSN:    postgresDSN(),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "fintrack:"),

		SeedSampleData: getEnvBool("SEED_SAMPLE_DATA", false),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		LogDevelopment: getEnvBool("LOG_DEV", false),
	}
}

// postgresDSN prefers DB_CONN_STR and otherwise assembles the DSN from the
// individual DB_* variables
func postgresDSN() string {
	if dsn := os.Getenv("DB_CONN_STR"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "fintrack"),
	)
}

// Logging returns the logger configuration
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:       c.LogLevel,
		Format:      c.LogFormat,
		Development: c.LogDevelopment,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if c.GRPCAddr == "" {
		problems = append(problems, "gRPC address cannot be empty")
	}
	if c.MetricsAddr == "" {
		problems = append(problems, "metrics address cannot be empty")
	}
	if c.APIToken == "" {
		problems = append(problems, "API token cannot be empty")
	}

	if !slices.Contains(validBackends, c.StorageBackend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, validBackends))
	}

	switch c.StorageBackend {
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			problems = append(problems, "Postgres connection string cannot be empty when using postgres backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "Redis address cannot be empty when using redis backend")
		}
		if c.RedisDB < 0 {
			problems = append(problems, fmt.Sprintf("invalid Redis database %d: must not be negative", c.RedisDB))
		}
	}

	if c.StorageTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid storage timeout %v: must be positive", c.StorageTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
