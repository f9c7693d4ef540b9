package user

import (
	"context"
	"fmt"

	"github.com/marcos-nsantos/user-store/internal/adapter/repository"
	"github.com/marcos-nsantos/user-store/internal/domain/entity"
)

type Service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// CreateUser always inserts a new record. Names and emails are not checked
// for uniqueness, so repeating a call yields a second user with its own ID.
func (s *Service) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	user := entity.NewUser(name, email)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// FindUserByName returns nil, nil when no user has the given name.
func (s *Service) FindUserByName(ctx context.Context, name string) (*entity.User, error) {
	user, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("finding user by name: %w", err)
	}
	return user, nil
}
