package ports

import (
	"context"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
)

// ClassRepository defines persistence for the class catalog.
type ClassRepository interface {
	Insert(ctx context.Context, class *domain.Class) (*InsertOutcome, error)
	List(ctx context.Context) ([]*domain.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error)
	// ReplaceContent overwrites the four instructor-settable fields with
	// upsert semantics: an absent id creates a document holding exactly those
	// fields.
	ReplaceContent(ctx context.Context, id string, content domain.ClassContent) (*UpdateOutcome, error)
	SetStatus(ctx context.Context, id string, status domain.ClassStatus) (*UpdateOutcome, error)
	SetFeedback(ctx context.Context, id, feedback string) (*UpdateOutcome, error)
}
