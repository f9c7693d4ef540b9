package repository

import (
	"context"

	"github.com/marcos-nsantos/user-store/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

type UserRepository interface {
	// Save inserts the user when it has no ID yet and writes the assigned ID
	// back into it; otherwise it updates the existing row.
	Save(ctx context.Context, user *entity.User) error
	// FindByName returns nil, nil when no user has the given name.
	FindByName(ctx context.Context, name string) (*entity.User, error)
}
