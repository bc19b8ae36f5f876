package domain

import "errors"

var ErrSelectionNotFound = errors.New("selected class not found")
var ErrSelectionConsumed = errors.New("selected class already consumed")

// SelectedClass is a student's pending intent to enroll in a class, created
// when the class is added to the cart and gone once it is paid for or removed.
type SelectedClass struct {
	ID             string  `json:"_id,omitempty"`
	Email          string  `json:"email"`
	ClassID        string  `json:"classId"`
	ClassName      string  `json:"className"`
	ClassImage     string  `json:"classImage,omitempty"`
	InstructorName string  `json:"instructorName,omitempty"`
	Price          float64 `json:"price"`
}

// Payment is the immutable record of a completed charge. Its presence for a
// given email and class is the enrollment fact; there is no separate
// enrollment collection.
type Payment struct {
	ID              string  `json:"_id,omitempty"`
	Email           string  `json:"email"`
	TransactionID   string  `json:"transactionId"`
	Price           float64 `json:"price"`
	Date            string  `json:"date"`
	SelectedClassID string  `json:"selectedClassId"`
	ClassID         string  `json:"classId"`
	ClassName       string  `json:"className"`
}
