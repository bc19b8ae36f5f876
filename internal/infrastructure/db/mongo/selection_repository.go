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

const selectionsCollection = "selectedClasses"

// SelectionRepository implements ports.SelectionRepository on the
// selectedClasses collection.
type SelectionRepository struct {
	coll *mongo.Collection
}

func NewSelectionRepository(db *mongo.Database) *SelectionRepository {
	return &SelectionRepository{coll: db.Collection(selectionsCollection)}
}

type selectionDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	ClassID        string             `bson:"classId"`
	ClassName      string             `bson:"className"`
	ClassImage     string             `bson:"classImage,omitempty"`
	InstructorName string             `bson:"instructorName,omitempty"`
	Price          float64            `bson:"price"`
}

func (d selectionDoc) toDomain() *domain.SelectedClass {
	return &domain.SelectedClass{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		ClassID:        d.ClassID,
		ClassName:      d.ClassName,
		ClassImage:     d.ClassImage,
		InstructorName: d.InstructorName,
		Price:          d.Price,
	}
}

func (r *SelectionRepository) Insert(ctx context.Context, sel *domain.SelectedClass) (*ports.InsertOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := selectionDoc{
		Email:          sel.Email,
		ClassID:        sel.ClassID,
		ClassName:      sel.ClassName,
		ClassImage:     sel.ClassImage,
		InstructorName: sel.InstructorName,
		Price:          sel.Price,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert selection: %w", err)
	}
	return insertOutcome(res), nil
}

func (r *SelectionRepository) ListByEmail(ctx context.Context, email string) ([]*domain.SelectedClass, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer cursor.Close(ctx)

	selections := make([]*domain.SelectedClass, 0)
	for cursor.Next(ctx) {
		var doc selectionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode selection: %w", err)
		}
		selections = append(selections, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}

func (r *SelectionRepository) FindByID(ctx context.Context, id string) (*domain.SelectedClass, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc selectionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSelectionNotFound
		}
		return nil, fmt.Errorf("find selection: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SelectionRepository) Delete(ctx context.Context, id string) (*ports.DeleteOutcome, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("delete selection: %w", err)
	}
	return deleteOutcome(res), nil
}
