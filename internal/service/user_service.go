package service

import (
	"context"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// UserService exposes account administration operations.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, normalizeLimit(limit), offset)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateStatus flips an account between active and suspended. Suspension does
// not revoke live sessions; those lapse the next time the account signs in.
func (s *UserService) UpdateStatus(ctx context.Context, id int64, status domain.UserStatusID) (*domain.User, error) {
	if status != domain.UserStatusActive && status != domain.UserStatusSuspended {
		return nil, apperrors.NewValidationError("unknown status", nil)
	}
	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}
