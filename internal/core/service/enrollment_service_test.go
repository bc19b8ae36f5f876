package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

type stubSelectionRepo struct {
	rows    map[string]*domain.SelectedClass
	deleted []string
}

func (r *stubSelectionRepo) Insert(_ context.Context, sel *domain.SelectedClass) (*ports.InsertOutcome, error) {
	return &ports.InsertOutcome{InsertedID: "sel-1"}, nil
}

func (r *stubSelectionRepo) ListByEmail(_ context.Context, email string) ([]*domain.SelectedClass, error) {
	var out []*domain.SelectedClass
	for _, s := range r.rows {
		if s.Email == email {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSelectionRepo) FindByID(_ context.Context, id string) (*domain.SelectedClass, error) {
	if s, ok := r.rows[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSelectionNotFound
}

func (r *stubSelectionRepo) Delete(_ context.Context, id string) (*ports.DeleteOutcome, error) {
	if _, ok := r.rows[id]; !ok {
		return &ports.DeleteOutcome{DeletedCount: 0}, nil
	}
	delete(r.rows, id)
	r.deleted = append(r.deleted, id)
	return &ports.DeleteOutcome{DeletedCount: 1}, nil
}

type stubPaymentRepo struct {
	outcome  *ports.PaymentOutcome
	err      error
	recorded []*domain.Payment
}

func (r *stubPaymentRepo) RecordPayment(_ context.Context, p *domain.Payment, _ string) (*ports.PaymentOutcome, error) {
	r.recorded = append(r.recorded, p)
	return r.outcome, r.err
}

func (r *stubPaymentRepo) ListByEmail(_ context.Context, _ string) ([]*domain.Payment, error) {
	return nil, nil
}

type stubGateway struct {
	amount int64
	secret string
	err    error
}

func (g *stubGateway) CreateIntent(_ context.Context, amountCents int64) (string, error) {
	g.amount = amountCents
	return g.secret, g.err
}

type stubGuard struct {
	claimed  map[string]bool
	claimErr error
	released []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{claimed: make(map[string]bool)}
}

func (g *stubGuard) Claim(_ context.Context, id string) (bool, error) {
	if g.claimErr != nil {
		return false, g.claimErr
	}
	if g.claimed[id] {
		return false, nil
	}
	g.claimed[id] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, id string) error {
	delete(g.claimed, id)
	g.released = append(g.released, id)
	return nil
}

func completeOutcome() *ports.PaymentOutcome {
	return &ports.PaymentOutcome{
		Insert: ports.InsertOutcome{InsertedID: "pay-1"},
		Delete: ports.DeleteOutcome{DeletedCount: 1},
	}
}

func paymentInput(selectionID string) ports.RecordPaymentInput {
	return ports.RecordPaymentInput{
		Email:           "alice@example.com",
		TransactionID:   "pi_123",
		Price:           49.99,
		Date:            "2026-08-28T10:00:00Z",
		SelectedClassID: selectionID,
		ClassID:         "class-9",
		ClassName:       "Violin 101",
	}
}

func TestEnrollmentService_CreatePaymentIntent(t *testing.T) {
	gateway := &stubGateway{secret: "cs_test"}
	svc := NewEnrollmentService(&stubSelectionRepo{}, &stubPaymentRepo{}, gateway, newStubGuard(), zerolog.Nop())

	secret, err := svc.CreatePaymentIntent(context.Background(), 49.99)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if secret != "cs_test" {
		t.Fatalf("unexpected secret %q", secret)
	}
	if gateway.amount != 4999 {
		t.Fatalf("expected 4999 cents, got %d", gateway.amount)
	}
}

func TestEnrollmentService_CreatePaymentIntentRequiresPrice(t *testing.T) {
	svc := NewEnrollmentService(&stubSelectionRepo{}, &stubPaymentRepo{}, &stubGateway{}, newStubGuard(), zerolog.Nop())

	for _, price := range []float64{0, -5} {
		if _, err := svc.CreatePaymentIntent(context.Background(), price); !errors.Is(err, ErrPriceRequired) {
			t.Fatalf("price %v: expected ErrPriceRequired, got %v", price, err)
		}
	}
}

func TestEnrollmentService_RemoveSelection(t *testing.T) {
	repo := &stubSelectionRepo{rows: map[string]*domain.SelectedClass{
		"sel-1": {ID: "sel-1", Email: "alice@example.com"},
	}}
	svc := NewEnrollmentService(repo, &stubPaymentRepo{}, &stubGateway{}, newStubGuard(), zerolog.Nop())

	// Someone else's row is forbidden and nothing is deleted.
	_, err := svc.RemoveSelection(context.Background(), "sel-1", "mallory@example.com")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("row deleted despite ownership failure")
	}

	// Absent rows are a zero-count success, not an error.
	outcome, err := svc.RemoveSelection(context.Background(), "missing", "alice@example.com")
	if err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if outcome.DeletedCount != 0 {
		t.Fatalf("expected zero deletions, got %+v", outcome)
	}

	outcome, err = svc.RemoveSelection(context.Background(), "sel-1", "alice@example.com")
	if err != nil {
		t.Fatalf("remove own: %v", err)
	}
	if outcome.DeletedCount != 1 {
		t.Fatalf("expected one deletion, got %+v", outcome)
	}
}

func TestEnrollmentService_RecordPaymentConsumesOnce(t *testing.T) {
	payments := &stubPaymentRepo{outcome: completeOutcome()}
	guard := newStubGuard()
	svc := NewEnrollmentService(&stubSelectionRepo{}, payments, &stubGateway{}, guard, zerolog.Nop())

	outcome, err := svc.RecordPayment(context.Background(), paymentInput("sel-1"))
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if outcome.Insert.InsertedID != "pay-1" || outcome.Delete.DeletedCount != 1 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	// A second post for the same selection hits the held claim.
	_, err = svc.RecordPayment(context.Background(), paymentInput("sel-1"))
	if !errors.Is(err, domain.ErrSelectionConsumed) {
		t.Fatalf("expected ErrSelectionConsumed, got %v", err)
	}
	if len(payments.recorded) != 1 {
		t.Fatalf("expected a single payment write, got %d", len(payments.recorded))
	}
}

func TestEnrollmentService_RecordPaymentReleasesClaimOnFailure(t *testing.T) {
	payments := &stubPaymentRepo{err: errors.New("write failed")}
	guard := newStubGuard()
	svc := NewEnrollmentService(&stubSelectionRepo{}, payments, &stubGateway{}, guard, zerolog.Nop())

	_, err := svc.RecordPayment(context.Background(), paymentInput("sel-2"))
	if err == nil {
		t.Fatalf("expected error from failed write")
	}
	if len(guard.released) != 1 || guard.released[0] != "sel-2" {
		t.Fatalf("claim not released: %+v", guard.released)
	}

	// The released claim lets a retry through.
	payments.err = nil
	payments.outcome = completeOutcome()
	if _, err := svc.RecordPayment(context.Background(), paymentInput("sel-2")); err != nil {
		t.Fatalf("retry after release: %v", err)
	}
}

func TestEnrollmentService_RecordPaymentPartialFailure(t *testing.T) {
	partial := &ports.PaymentOutcome{
		Insert: ports.InsertOutcome{InsertedID: "pay-2"},
		Delete: ports.DeleteOutcome{DeletedCount: 0},
	}
	payments := &stubPaymentRepo{outcome: partial, err: errors.New("delete failed")}
	guard := newStubGuard()
	svc := NewEnrollmentService(&stubSelectionRepo{}, payments, &stubGateway{}, guard, zerolog.Nop())

	outcome, err := svc.RecordPayment(context.Background(), paymentInput("sel-3"))
	if err != nil {
		t.Fatalf("partial failure must surface both sub-results, got error %v", err)
	}
	if outcome.Insert.InsertedID != "pay-2" || outcome.Delete.DeletedCount != 0 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	// The claim stays held so the selection cannot be paid for twice while
	// the stale row awaits reconciliation.
	if len(guard.released) != 0 {
		t.Fatalf("claim released on partial failure")
	}
}

func TestEnrollmentService_RecordPaymentGuardOutage(t *testing.T) {
	payments := &stubPaymentRepo{outcome: completeOutcome()}
	guard := newStubGuard()
	guard.claimErr = errors.New("redis down")
	svc := NewEnrollmentService(&stubSelectionRepo{}, payments, &stubGateway{}, guard, zerolog.Nop())

	// A guard outage degrades to unguarded writes rather than blocking payments.
	if _, err := svc.RecordPayment(context.Background(), paymentInput("sel-4")); err != nil {
		t.Fatalf("guard outage should not block payment: %v", err)
	}
	if len(payments.recorded) != 1 {
		t.Fatalf("payment not written during guard outage")
	}
}

func TestEnrollmentService_RecordPaymentFieldMapping(t *testing.T) {
	payments := &stubPaymentRepo{outcome: completeOutcome()}
	svc := NewEnrollmentService(&stubSelectionRepo{}, payments, &stubGateway{}, newStubGuard(), zerolog.Nop())

	input := paymentInput("sel-5")
	if _, err := svc.RecordPayment(context.Background(), input); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	p := payments.recorded[0]
	if p.Email != input.Email || p.TransactionID != input.TransactionID ||
		p.Price != input.Price || p.Date != input.Date ||
		p.SelectedClassID != input.SelectedClassID ||
		p.ClassID != input.ClassID || p.ClassName != input.ClassName {
		t.Fatalf("payment fields not mapped from input: %+v", p)
	}
}
