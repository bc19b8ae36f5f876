package ports

// The original API contract exposes raw document-store results to clients
// (insertedId, matchedCount, deletedCount, ...). These outcome types keep that
// contract without leaking driver types out of the repository layer.

// InsertOutcome reports a single insert.
type InsertOutcome struct {
	InsertedID string `json:"insertedId"`
}

// UpdateOutcome reports a single update or upsert. UpsertedID is set only
// when the update created a new document.
type UpdateOutcome struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteOutcome reports a single delete. DeletedCount is zero when no
// document matched, which the API treats as a no-op success rather than 404.
type DeleteOutcome struct {
	DeletedCount int64 `json:"deletedCount"`
}

// PaymentOutcome surfaces both halves of the payment transition so the
// caller can detect a partial failure when the store cannot run the pair
// transactionally.
type PaymentOutcome struct {
	Insert InsertOutcome `json:"insertResult"`
	Delete DeleteOutcome `json:"deleteResult"`
}
