package ports

import (
	"context"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
)

// SelectionRepository defines persistence for cart selections.
type SelectionRepository interface {
	Insert(ctx context.Context, sel *domain.SelectedClass) (*InsertOutcome, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.SelectedClass, error)
	FindByID(ctx context.Context, id string) (*domain.SelectedClass, error)
	Delete(ctx context.Context, id string) (*DeleteOutcome, error)
}

// PaymentRepository persists payments and runs the selection-to-payment
// transition.
type PaymentRepository interface {
	// RecordPayment inserts the payment and deletes the selection it
	// consumes as one transactional unit where the store topology allows it,
	// falling back to the sequential pair otherwise. Both sub-results are
	// always reported.
	RecordPayment(ctx context.Context, payment *domain.Payment, selectionID string) (*PaymentOutcome, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Payment, error)
}
