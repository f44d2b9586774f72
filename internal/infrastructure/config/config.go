package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Mongo   MongoConfig
}

// BackendConfig points the console at the insurance-retention REST backend.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:9090"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=15s"`
}

// SessionConfig controls the console's session cookie and how long persisted
// credentials are kept around.
type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE, default=console_sid"`
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MongoConfig configures the authentication audit trail. Auditing is skipped
// when Enabled is false or the database is unreachable at startup.
type MongoConfig struct {
	Enabled  bool   `env:"AUDIT_ENABLED, default=true"`
	URI      string `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,      default=retention_console"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
