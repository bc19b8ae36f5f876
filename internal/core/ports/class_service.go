package ports

import (
	"context"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
)

// ClassService defines use-case operations on the class catalog.
type ClassService interface {
	// List returns the full catalog with no status filtering; approved-only
	// views are a frontend concern.
	List(ctx context.Context) ([]*domain.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error)
	// Create stores a new listing, forcing status to pending.
	Create(ctx context.Context, class *domain.Class) (*InsertOutcome, error)
	ReplaceContent(ctx context.Context, id string, content domain.ClassContent) (*UpdateOutcome, error)
	Approve(ctx context.Context, id string) (*UpdateOutcome, error)
	Deny(ctx context.Context, id string) (*UpdateOutcome, error)
	SetFeedback(ctx context.Context, id, feedback string) (*UpdateOutcome, error)
}
