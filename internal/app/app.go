package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-store/internal/adapter/repository/orm"
	"github.com/marcos-nsantos/user-store/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-store/internal/infrastructure/database"
	"github.com/marcos-nsantos/user-store/internal/infrastructure/observability"
	"github.com/marcos-nsantos/user-store/internal/usecase/user"
)

// App holds the process-wide database connection and the services built on
// it. Callers own it and must Close it.
type App struct {
	Logger *zap.Logger
	Conn   *database.Connection
	Users  *user.Service
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	conn, err := database.Connect(ctx, cfg.Database, logger, database.UsersTable())
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Repositories
	userRepo := orm.NewUserRepo(conn.DB(), database.UsersTableName)

	// Use cases
	userSvc := user.NewService(userRepo)

	return &App{
		Logger: logger,
		Conn:   conn,
		Users:  userSvc,
	}, nil
}

func (a *App) Close() error {
	defer a.Logger.Sync() //nolint:errcheck
	if err := a.Conn.Close(); err != nil {
		a.Logger.Error("failed to close database", zap.Error(err))
		return err
	}
	return nil
}
