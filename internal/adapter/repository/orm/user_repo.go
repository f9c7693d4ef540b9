package orm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marcos-nsantos/user-store/internal/domain/entity"
)

type UserRepo struct {
	db    *gorm.DB
	table string
}

func NewUserRepo(db *gorm.DB, table string) *UserRepo {
	return &UserRepo{db: db, table: table}
}

func (r *UserRepo) Save(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Table(r.table).Save(user).Error; err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// FindByName matches the name exactly. When several users share it, the one
// with the lowest ID wins.
func (r *UserRepo) FindByName(ctx context.Context, name string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("name = ?", name).
		Order("id").
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying user by name: %w", err)
	}
	return &user, nil
}
