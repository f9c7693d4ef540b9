package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-store/internal/domain/entity"
)

const UsersTableName = "users"

// Table binds a model to the table that stores it.
type Table struct {
	Name  string
	Model any
}

func UsersTable() Table {
	return Table{Name: UsersTableName, Model: &entity.User{}}
}

// Synchronize creates every registered table that is missing and adds
// missing columns. With dropExisting set, the tables are dropped first so
// all rows are lost.
func (c *Connection) Synchronize(ctx context.Context, dropExisting bool) error {
	db := c.db.WithContext(ctx)

	if dropExisting {
		for i := len(c.tables) - 1; i >= 0; i-- {
			t := c.tables[i]
			if err := db.Table(t.Name).Migrator().DropTable(t.Model); err != nil {
				return fmt.Errorf("dropping table %s: %w", t.Name, err)
			}
		}
	}

	for _, t := range c.tables {
		if err := db.Table(t.Name).AutoMigrate(t.Model); err != nil {
			return fmt.Errorf("synchronizing table %s: %w", t.Name, err)
		}
	}

	c.logger.Debug("schema synchronized",
		zap.Int("tables", len(c.tables)),
		zap.Bool("dropped", dropExisting),
	)
	return nil
}
