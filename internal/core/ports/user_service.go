package ports

import (
	"context"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
)

// UserService defines use-case operations on the directory store.
type UserService interface {
	// Create inserts the user unless one with the same email already exists,
	// in which case it returns domain.ErrUserExists (the API reports that as
	// a friendly message, not an error).
	Create(ctx context.Context, user *domain.User) (*InsertOutcome, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListInstructors(ctx context.Context) ([]*domain.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsInstructor(ctx context.Context, email string) (bool, error)
	MakeAdmin(ctx context.Context, id string) (*UpdateOutcome, error)
	MakeInstructor(ctx context.Context, id string) (*UpdateOutcome, error)
}
