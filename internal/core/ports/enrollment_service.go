package ports

import (
	"context"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
)

// RecordPaymentInput is the payload posted after the frontend confirms the
// charge. SelectedClassID names the cart row the payment consumes.
type RecordPaymentInput struct {
	Email           string
	TransactionID   string
	Price           float64
	Date            string
	SelectedClassID string
	ClassID         string
	ClassName       string
}

// EnrollmentService owns the cart and the selection-to-payment transition.
type EnrollmentService interface {
	Selections(ctx context.Context, email string) ([]*domain.SelectedClass, error)
	AddSelection(ctx context.Context, sel *domain.SelectedClass) (*InsertOutcome, error)
	// RemoveSelection deletes the row only when it belongs to requesterEmail;
	// otherwise domain.ErrForbidden. An absent row is a zero-count success.
	RemoveSelection(ctx context.Context, id, requesterEmail string) (*DeleteOutcome, error)
	// CreatePaymentIntent registers a pending charge of price in major units
	// and returns the gateway client secret.
	CreatePaymentIntent(ctx context.Context, price float64) (string, error)
	// RecordPayment consumes the selection exactly once: a second attempt for
	// the same selection fails with domain.ErrSelectionConsumed.
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*PaymentOutcome, error)
	// PaymentsByEmail backs both the enrolled-classes and payment-history
	// views; the two are the same query over the payments collection.
	PaymentsByEmail(ctx context.Context, email string) ([]*domain.Payment, error)
}
