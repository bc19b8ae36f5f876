package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

const paymentsCollection = "payments"

// PaymentRepository implements ports.PaymentRepository. It spans the payments
// and selectedClasses collections because the payment transition writes both.
type PaymentRepository struct {
	db *mongo.Database
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Email           string             `bson:"email"`
	TransactionID   string             `bson:"transactionId"`
	Price           float64            `bson:"price"`
	Date            string             `bson:"date"`
	SelectedClassID string             `bson:"selectedClassId"`
	ClassID         string             `bson:"classId"`
	ClassName       string             `bson:"className"`
}

func toPaymentDoc(p *domain.Payment) paymentDoc {
	return paymentDoc{
		Email:           p.Email,
		TransactionID:   p.TransactionID,
		Price:           p.Price,
		Date:            p.Date,
		SelectedClassID: p.SelectedClassID,
		ClassID:         p.ClassID,
		ClassName:       p.ClassName,
	}
}

func (d paymentDoc) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:              d.ID.Hex(),
		Email:           d.Email,
		TransactionID:   d.TransactionID,
		Price:           d.Price,
		Date:            d.Date,
		SelectedClassID: d.SelectedClassID,
		ClassID:         d.ClassID,
		ClassName:       d.ClassName,
	}
}

// RecordPayment inserts the payment and deletes the consumed selection inside
// one multi-document transaction. Standalone servers reject transactions
// (IllegalOperation); there the pair runs sequentially and a partial failure
// is reported through the outcome next to the error.
func (r *PaymentRepository) RecordPayment(ctx context.Context, payment *domain.Payment, selectionID string) (*ports.PaymentOutcome, error) {
	selOID, err := primitive.ObjectIDFromHex(selectionID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	doc := toPaymentDoc(payment)

	session, err := r.db.Client().StartSession()
	if err != nil {
		return r.recordSequential(ctx, doc, selOID)
	}
	defer session.EndSession(ctx)

	var outcome *ports.PaymentOutcome
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		ins, err := r.db.Collection(paymentsCollection).InsertOne(sc, doc)
		if err != nil {
			return nil, err
		}
		del, err := r.db.Collection(selectionsCollection).DeleteOne(sc, bson.M{"_id": selOID})
		if err != nil {
			return nil, err
		}
		outcome = &ports.PaymentOutcome{
			Insert: *insertOutcome(ins),
			Delete: *deleteOutcome(del),
		}
		return nil, nil
	})
	if err != nil {
		if isTransactionUnsupported(err) {
			return r.recordSequential(ctx, doc, selOID)
		}
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return outcome, nil
}

// recordSequential is the pre-transaction behavior: insert, then delete. A
// delete failure after a successful insert returns the partial outcome
// together with the error so callers can reconcile the stale selection.
func (r *PaymentRepository) recordSequential(ctx context.Context, doc paymentDoc, selOID primitive.ObjectID) (*ports.PaymentOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ins, err := r.db.Collection(paymentsCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	outcome := &ports.PaymentOutcome{Insert: *insertOutcome(ins)}

	del, err := r.db.Collection(selectionsCollection).DeleteOne(ctx, bson.M{"_id": selOID})
	if err != nil {
		return outcome, fmt.Errorf("delete selection after payment insert: %w", err)
	}
	outcome.Delete = *deleteOutcome(del)
	return outcome, nil
}

// isTransactionUnsupported detects the IllegalOperation error a standalone
// mongod returns for transaction numbers.
func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 20
}

func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.db.Collection(paymentsCollection).Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := make([]*domain.Payment, 0)
	for cursor.Next(ctx) {
		var doc paymentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
