package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// MemoryPath selects an ephemeral SQLite database that lives as long as
	// its connection.
	MemoryPath = ":memory:"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Database DatabaseConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver          string        `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath      string        `envconfig:"DB_SQLITE_PATH" default:":memory:"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	Synchronize     bool          `envconfig:"DB_SYNCHRONIZE" default:"true"`
	DropSchema      bool          `envconfig:"DB_DROP_SCHEMA" default:"false"`
	Logging         bool          `envconfig:"DB_LOGGING" default:"false"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// InMemory reports whether the SQLite path names an in-memory database,
// either the plain :memory: name or a file: URI using it or mode=memory.
func (c DatabaseConfig) InMemory() bool {
	if c.Driver != DriverSQLite {
		return false
	}
	if c.SQLitePath == MemoryPath {
		return true
	}
	if !strings.HasPrefix(c.SQLitePath, "file:") {
		return false
	}

	path, query, _ := strings.Cut(strings.TrimPrefix(c.SQLitePath, "file:"), "?")
	if path == MemoryPath {
		return true
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		return false
	}
	return params.Get("mode") == "memory"
}

func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: DB_SQLITE_PATH is empty", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.User == "" || c.Name == "" {
			return fmt.Errorf("%w: DB_USER and DB_NAME are required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown DB_DRIVER %q", ErrInvalidConfig, c.Driver)
	}
	return nil
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
