package mongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

// Conversions from driver result types to the transport-facing outcomes.

func insertOutcome(res *mongo.InsertOneResult) *ports.InsertOutcome {
	out := &ports.InsertOutcome{}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.InsertedID = oid.Hex()
	}
	return out
}

func updateOutcome(res *mongo.UpdateResult) *ports.UpdateOutcome {
	out := &ports.UpdateOutcome{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}
	return out
}

func deleteOutcome(res *mongo.DeleteResult) *ports.DeleteOutcome {
	return &ports.DeleteOutcome{DeletedCount: res.DeletedCount}
}
