package domain

import (
	"errors"
)

// Actor is the authenticated user performing a ledger operation.
type Actor struct {
	ID   string
	Role Role
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleManager can post entries and reconcile accounts
	RoleManager Role = "manager"

	// RoleViewer can only read balances and reports
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:   true,
	RoleManager: true,
	RoleViewer:  true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanPost checks if the role may write to the ledger.
func (r Role) CanPost() bool {
	return r == RoleAdmin || r == RoleManager
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
