package domain

import "errors"

// ClassStatus represents the lifecycle state of a class listing.
type ClassStatus string

const (
	StatusPending  ClassStatus = "pending"
	StatusApproved ClassStatus = "approved"
	StatusDenied   ClassStatus = "denied"
)

var ErrClassNotFound = errors.New("class not found")
var ErrInvalidID = errors.New("invalid object id")
var ErrForbidden = errors.New("access forbidden")

// Class is a course listing owned by an instructor. Content fields are
// mutated by the owning instructor; status and feedback by an admin.
// AvailableSeats is stored as submitted and never decremented here.
type Class struct {
	ID              string      `json:"_id,omitempty"`
	ClassName       string      `json:"className"`
	ClassImage      string      `json:"classImage"`
	InstructorName  string      `json:"instructorName"`
	InstructorEmail string      `json:"instructorEmail"`
	AvailableSeats  int         `json:"availableSeats"`
	Price           float64     `json:"price"`
	Status          ClassStatus `json:"status"`
	Feedback        string      `json:"feedback,omitempty"`
}

// ClassContent carries the four instructor-settable fields replaced wholesale
// by the class update endpoint.
type ClassContent struct {
	ClassName      string  `json:"className"`
	ClassImage     string  `json:"classImage"`
	AvailableSeats int     `json:"availableSeats"`
	Price          float64 `json:"price"`
}
