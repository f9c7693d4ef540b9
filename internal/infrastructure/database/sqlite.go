package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/marcos-nsantos/user-store/internal/infrastructure/config"
)

const busyTimeoutMillis = 5000

func openSQLite(cfg config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open(sqlite.DriverName, sqliteDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	if cfg.InMemory() {
		// Every new connection to an in-memory database starts empty, so the
		// pool is pinned to a single connection that is never recycled.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	db, err := gorm.Open(&sqlite.Dialector{
		DriverName: sqlite.DriverName,
		Conn:       sqlDB,
	}, gormCfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	return db, nil
}

func sqliteDSN(cfg config.DatabaseConfig) string {
	if cfg.InMemory() {
		return cfg.SQLitePath
	}

	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMillis))
	params.Add("_pragma", "journal_mode(WAL)")

	sep := "?"
	if strings.Contains(cfg.SQLitePath, "?") {
		sep = "&"
	}
	return cfg.SQLitePath + sep + params.Encode()
}
