package service

import (
	"context"

	"scope-service/internal/domain/user"
	"scope-service/internal/repository"
)

// UserService applies identity-provider lifecycle events. Upserts are
// idempotent by external id; deletes are soft deactivations so owned data
// stays intact.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Sync(ctx context.Context, input user.UpsertUserInput) (*user.User, error) {
	return s.users.UpsertByExternalID(ctx, input)
}

func (s *UserService) Deactivate(ctx context.Context, externalID string) (*user.User, error) {
	return s.users.DeactivateByExternalID(ctx, externalID)
}

func (s *UserService) GetByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	return s.users.FindByExternalID(ctx, externalID)
}
