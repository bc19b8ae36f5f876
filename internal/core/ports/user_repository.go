package ports

import (
	"context"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
)

// UserRepository defines persistence for the directory store. Email is the
// natural key; FindByEmail returns domain.ErrUserNotFound for absent users.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*InsertOutcome, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
	// UpdateRole sets the role on the user with the given id. A malformed id
	// yields domain.ErrInvalidID; an absent one a zero-matched outcome.
	UpdateRole(ctx context.Context, id, role string) (*UpdateOutcome, error)
}
