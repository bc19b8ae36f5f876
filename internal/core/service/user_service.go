package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

// UserService implements directory-store use cases.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create inserts a user record on first sign-in. The operation is idempotent
// on email: an existing record yields domain.ErrUserExists and no write.
func (s *UserService) Create(ctx context.Context, user *domain.User) (*ports.InsertOutcome, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	outcome, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info().Str("email", user.Email).Msg("user created")
	return outcome, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) ListInstructors(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListByRole(ctx, domain.RoleInstructor)
}

// IsAdmin reports the stored role; an unknown email is simply not an admin.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func (s *UserService) IsInstructor(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsInstructor(), nil
}

func (s *UserService) MakeAdmin(ctx context.Context, id string) (*ports.UpdateOutcome, error) {
	return s.setRole(ctx, id, domain.RoleAdmin)
}

func (s *UserService) MakeInstructor(ctx context.Context, id string) (*ports.UpdateOutcome, error) {
	return s.setRole(ctx, id, domain.RoleInstructor)
}

func (s *UserService) setRole(ctx context.Context, id, role string) (*ports.UpdateOutcome, error) {
	outcome, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	s.logger.Info().Str("user_id", id).Str("role", role).Int64("matched", outcome.MatchedCount).Msg("role updated")
	return outcome, nil
}
