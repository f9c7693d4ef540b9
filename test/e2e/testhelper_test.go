package e2e_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marcos-nsantos/user-store/internal/app"
	"github.com/marcos-nsantos/user-store/internal/infrastructure/config"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
)

type TestApp struct {
	*app.App
	Container testcontainers.Container
}

// setupTestApp builds the application from the environment, which defaults
// to an in-memory SQLite database.
func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	for _, key := range []string{"DB_DRIVER", "DB_SQLITE_PATH"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("DB_DROP_SCHEMA", "true")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.True(t, cfg.Database.InMemory())

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)

	return &TestApp{App: a}
}

func setupPostgresTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	t.Setenv("DB_DRIVER", config.DriverPostgres)
	t.Setenv("DB_HOST", host)
	t.Setenv("DB_PORT", port.Port())
	t.Setenv("DB_USER", testDBUser)
	t.Setenv("DB_PASSWORD", testDBPassword)
	t.Setenv("DB_NAME", testDBName)
	t.Setenv("DB_DROP_SCHEMA", "true")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := app.New(ctx, cfg)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
	}
	require.NoError(t, err)

	return &TestApp{App: a, Container: pgContainer}
}

func (ta *TestApp) cleanup(t *testing.T) {
	t.Helper()

	if err := ta.Close(); err != nil {
		t.Logf("failed to close app: %v", err)
	}

	if ta.Container != nil {
		if err := ta.Container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

func (ta *TestApp) reset(t *testing.T) {
	t.Helper()
	require.NoError(t, ta.Conn.Synchronize(context.Background(), true))
}
