package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

const classesCollection = "classes"

// ClassRepository implements ports.ClassRepository on the classes collection.
type ClassRepository struct {
	coll *mongo.Collection
}

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{coll: db.Collection(classesCollection)}
}

type classDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ClassName       string             `bson:"className"`
	ClassImage      string             `bson:"classImage"`
	InstructorName  string             `bson:"instructorName"`
	InstructorEmail string             `bson:"instructorEmail"`
	AvailableSeats  int                `bson:"availableSeats"`
	Price           float64            `bson:"price"`
	Status          string             `bson:"status"`
	Feedback        string             `bson:"feedback,omitempty"`
}

func (d classDoc) toDomain() *domain.Class {
	return &domain.Class{
		ID:              d.ID.Hex(),
		ClassName:       d.ClassName,
		ClassImage:      d.ClassImage,
		InstructorName:  d.InstructorName,
		InstructorEmail: d.InstructorEmail,
		AvailableSeats:  d.AvailableSeats,
		Price:           d.Price,
		Status:          domain.ClassStatus(d.Status),
		Feedback:        d.Feedback,
	}
}

func (r *ClassRepository) Insert(ctx context.Context, class *domain.Class) (*ports.InsertOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := classDoc{
		ClassName:       class.ClassName,
		ClassImage:      class.ClassImage,
		InstructorName:  class.InstructorName,
		InstructorEmail: class.InstructorEmail,
		AvailableSeats:  class.AvailableSeats,
		Price:           class.Price,
		Status:          string(class.Status),
		Feedback:        class.Feedback,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert class: %w", err)
	}
	return insertOutcome(res), nil
}

func (r *ClassRepository) List(ctx context.Context) ([]*domain.Class, error) {
	return r.list(ctx, bson.M{})
}

func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error) {
	return r.list(ctx, bson.M{"instructorEmail": email})
}

func (r *ClassRepository) list(ctx context.Context, filter bson.M) ([]*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer cursor.Close(ctx)

	classes := make([]*domain.Class, 0)
	for cursor.Next(ctx) {
		var doc classDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode class: %w", err)
		}
		classes = append(classes, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ReplaceContent overwrites the instructor-settable fields. Upsert semantics:
// an absent id creates a document holding exactly those four fields.
func (r *ClassRepository) ReplaceContent(ctx context.Context, id string, content domain.ClassContent) (*ports.UpdateOutcome, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"className":      content.ClassName,
		"classImage":     content.ClassImage,
		"availableSeats": content.AvailableSeats,
		"price":          content.Price,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("replace class content: %w", err)
	}
	return updateOutcome(res), nil
}

func (r *ClassRepository) SetStatus(ctx context.Context, id string, status domain.ClassStatus) (*ports.UpdateOutcome, error) {
	return r.set(ctx, id, bson.M{"status": string(status)})
}

func (r *ClassRepository) SetFeedback(ctx context.Context, id, feedback string) (*ports.UpdateOutcome, error) {
	return r.set(ctx, id, bson.M{"feedback": feedback})
}

func (r *ClassRepository) set(ctx context.Context, id string, fields bson.M) (*ports.UpdateOutcome, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("update class: %w", err)
	}
	return updateOutcome(res), nil
}

// EnsureIndexes creates the instructorEmail index used by the my-classes view.
func (r *ClassRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "instructorEmail", Value: 1}},
	})
	return err
}
