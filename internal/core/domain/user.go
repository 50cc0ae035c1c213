package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a user can hold. Access decisions are
// set-membership checks; no role implies another.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// User is the persistence record for an account. PasswordHash never leaves
// the service layer; API responses are built from a separate view type.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal returns the identity view of the user that gets embedded into
// token claims and attached to authenticated requests.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Principal is the authenticated identity resolved for a single request.
// It is derived from validated token claims (or a fresh user record at
// login) and is immutable for the lifetime of the request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess is the self-or-admin ownership rule: admins reach any user
// record, everyone else only their own. It is a second, narrower gate
// evaluated after the role check has already admitted the operation.
func (p Principal) CanAccess(targetID string) bool {
	return p.IsAdmin() || p.ID == targetID
}
