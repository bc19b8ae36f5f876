package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

// ErrPriceRequired rejects payment intents without a positive price.
var ErrPriceRequired = errors.New("price is required")

// SelectionGuard abstracts the consumption lock (Redis). Claiming a selection
// id succeeds exactly once; a failed payment releases the claim so the
// selection can be retried.
type SelectionGuard interface {
	Claim(ctx context.Context, selectionID string) (bool, error)
	Release(ctx context.Context, selectionID string) error
}

// EnrollmentService owns the cart and the selection-to-payment transition.
type EnrollmentService struct {
	selections ports.SelectionRepository
	payments   ports.PaymentRepository
	gateway    ports.PaymentGateway
	guard      SelectionGuard
	logger     zerolog.Logger
}

func NewEnrollmentService(
	selections ports.SelectionRepository,
	payments ports.PaymentRepository,
	gateway ports.PaymentGateway,
	guard SelectionGuard,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		selections: selections,
		payments:   payments,
		gateway:    gateway,
		guard:      guard,
		logger:     logger,
	}
}

func (s *EnrollmentService) Selections(ctx context.Context, email string) ([]*domain.SelectedClass, error) {
	return s.selections.ListByEmail(ctx, email)
}

func (s *EnrollmentService) AddSelection(ctx context.Context, sel *domain.SelectedClass) (*ports.InsertOutcome, error) {
	outcome, err := s.selections.Insert(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("add selection: %w", err)
	}
	s.logger.Info().Str("email", sel.Email).Str("class_id", sel.ClassID).Msg("class selected")
	return outcome, nil
}

// RemoveSelection deletes a cart row after verifying it belongs to the
// requester. The row is read before any delete so a mismatched caller learns
// nothing beyond the 403. An absent row is a zero-count success.
func (s *EnrollmentService) RemoveSelection(ctx context.Context, id, requesterEmail string) (*ports.DeleteOutcome, error) {
	sel, err := s.selections.FindByID(ctx, id)
	if errors.Is(err, domain.ErrSelectionNotFound) {
		return &ports.DeleteOutcome{DeletedCount: 0}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("remove selection: %w", err)
	}
	if sel.Email != requesterEmail {
		return nil, domain.ErrForbidden
	}

	outcome, err := s.selections.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("remove selection: %w", err)
	}
	return outcome, nil
}

// CreatePaymentIntent registers a pending charge with the gateway. Price is
// in major units; the gateway speaks minor units.
func (s *EnrollmentService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", ErrPriceRequired
	}

	amountCents := int64(math.Round(price * 100))
	secret, err := s.gateway.CreateIntent(ctx, amountCents)
	if err != nil {
		s.logger.Error().Err(err).Float64("price", price).Msg("payment intent failed")
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return secret, nil
}

// RecordPayment converts a selection into a payment record. The guard claim
// makes the selection consumable exactly once even under concurrent posts;
// the repository applies insert+delete transactionally where the topology
// allows and the claim is released if the write fails.
func (s *EnrollmentService) RecordPayment(ctx context.Context, input ports.RecordPaymentInput) (*ports.PaymentOutcome, error) {
	claimed, err := s.guard.Claim(ctx, input.SelectedClassID)
	if err != nil {
		s.logger.Warn().Err(err).Str("selection_id", input.SelectedClassID).Msg("consumption guard unavailable, proceeding")
	} else if !claimed {
		return nil, domain.ErrSelectionConsumed
	}

	payment := &domain.Payment{
		Email:           input.Email,
		TransactionID:   input.TransactionID,
		Price:           input.Price,
		Date:            input.Date,
		SelectedClassID: input.SelectedClassID,
		ClassID:         input.ClassID,
		ClassName:       input.ClassName,
	}

	outcome, err := s.payments.RecordPayment(ctx, payment, input.SelectedClassID)
	if err != nil {
		if outcome != nil {
			// Sequential fallback path: the payment is persisted but the
			// selection delete failed. The claim stays held and both
			// sub-results go back to the caller for reconciliation.
			s.logger.Error().Err(err).
				Str("selection_id", input.SelectedClassID).
				Str("email", input.Email).
				Msg("payment recorded but selection delete failed, needs reconciliation")
			return outcome, nil
		}
		if relErr := s.guard.Release(ctx, input.SelectedClassID); relErr != nil {
			s.logger.Warn().Err(relErr).Str("selection_id", input.SelectedClassID).Msg("failed to release consumption claim")
		}
		return nil, fmt.Errorf("record payment: %w", err)
	}

	if outcome.Delete.DeletedCount == 0 {
		// The payment is recorded but no cart row matched; the caller sees
		// both sub-results and can reconcile.
		s.logger.Warn().
			Str("selection_id", input.SelectedClassID).
			Str("email", input.Email).
			Msg("payment recorded but selection was not found")
	}

	s.logger.Info().
		Str("email", input.Email).
		Str("transaction_id", input.TransactionID).
		Float64("price", input.Price).
		Msg("payment recorded")

	return outcome, nil
}

func (s *EnrollmentService) PaymentsByEmail(ctx context.Context, email string) ([]*domain.Payment, error) {
	return s.payments.ListByEmail(ctx, email)
}
