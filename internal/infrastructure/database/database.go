package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marcos-nsantos/user-store/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-store/internal/infrastructure/observability"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Connection owns the ORM handle and the tables registered with it. It is
// created once per process and passed to whatever needs storage.
type Connection struct {
	db      *gorm.DB
	tables  []Table
	driver  string
	release func()
	logger  *zap.Logger
}

func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger, tables ...Table) (*Connection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	gormCfg := &gorm.Config{
		Logger: observability.NewGormLogger(logger, cfg.Logging),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	conn := &Connection{
		tables: tables,
		driver: cfg.Driver,
		logger: logger,
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := openSQLite(cfg, gormCfg)
		if err != nil {
			return nil, err
		}
		conn.db = db
	case config.DriverPostgres:
		db, release, err := openPostgres(ctx, cfg, gormCfg)
		if err != nil {
			return nil, err
		}
		conn.db = db
		conn.release = release
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("connected to database",
		zap.String("driver", cfg.Driver),
		zap.Bool("in_memory", cfg.InMemory()),
	)

	if cfg.Synchronize {
		if err := conn.Synchronize(ctx, cfg.DropSchema); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

func (c *Connection) DB() *gorm.DB {
	return c.db
}

func (c *Connection) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("getting database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func (c *Connection) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("getting database handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	if c.release != nil {
		c.release()
	}

	c.logger.Info("database connection closed", zap.String("driver", c.driver))
	return nil
}
