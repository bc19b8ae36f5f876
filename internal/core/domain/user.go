package domain

import "errors"

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User models an account in the directory store. Email is the natural key;
// Role is empty for regular students and is only ever set by an admin-gated
// operation, never self-assigned.
type User struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Role     string `json:"role,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsInstructor reports whether the user holds the instructor role.
func (u *User) IsInstructor() bool {
	return u != nil && u.Role == RoleInstructor
}
