// Package auth holds the operator identity model: the principal, the
// credential validator, and the route guard.
package auth

import "time"

// Role distinguishes admin operators from regular users.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Principal is the authenticated identity for the current operator
// session. It lives in memory and, serialized, in one of the session
// slots; it is never written to the account store.
type Principal struct {
	Phone         string    `json:"phone"`
	Role          Role      `json:"role"`
	Authenticated bool      `json:"isAuthenticated"`
	Name          string    `json:"name"`
	LastLoginAt   time.Time `json:"lastLogin"`
}
