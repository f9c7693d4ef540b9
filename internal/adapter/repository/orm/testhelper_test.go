package orm_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marcos-nsantos/user-store/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-store/internal/infrastructure/database"
)

type TestDB struct {
	Conn      *database.Connection
	Container testcontainers.Container
}

// SetupTestDB opens a fresh in-memory SQLite database with the users table.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	conn, err := database.Connect(context.Background(), config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		SQLitePath:  config.MemoryPath,
		Synchronize: true,
		DropSchema:  true,
	}, nil, database.UsersTable())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	return &TestDB{Conn: conn}
}

// SetupPostgresDB starts a throwaway PostgreSQL container and connects to it.
func SetupPostgresDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	portNum, err := strconv.Atoi(port.Port())
	if err != nil {
		t.Fatalf("failed to parse container port: %v", err)
	}

	conn, err := database.Connect(ctx, config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		Host:            host,
		Port:            portNum,
		User:            "test",
		Password:        "test",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		Synchronize:     true,
	}, nil, database.UsersTable())
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	return &TestDB{Conn: conn, Container: container}
}

func (db *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if db.Conn != nil {
		if err := db.Conn.Close(); err != nil {
			t.Logf("failed to close connection: %v", err)
		}
	}
	if db.Container != nil {
		if err := db.Container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

// Reset drops and recreates the registered tables.
func (db *TestDB) Reset(t *testing.T) {
	t.Helper()
	if err := db.Conn.Synchronize(context.Background(), true); err != nil {
		t.Fatalf("failed to reset schema: %v", err)
	}
}
