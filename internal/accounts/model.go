// Package accounts holds the subscription account model, the repository
// over the remote document store, the pure state-derivation engine, and
// the provisioning workflow.
package accounts

// Role of a managed account. Independent of auth.Role, which describes
// the operator session.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Stored status values. This field is persisted verbatim and displayed
// as-is; it is a signal separate from the computed expiry state and the
// two are intentionally never reconciled.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Account is the unit of business data, keyed by the normalized phone
// identifier. Timestamps are milliseconds since the epoch. Accounts are
// immutable once created; there are no update or delete operations.
//
// The JSON tags are the wire field names of the remote store and must
// not change.
type Account struct {
	PhoneKey    string `json:"phone_number"`
	DisplayName string `json:"user_name"`
	CreatedAt   int64  `json:"created_at"`
	ExpiresAt   int64  `json:"expiry_date,omitempty"`
	LastLoginAt int64  `json:"lastLogin"`
	Role        Role   `json:"role"`
	Status      string `json:"status"`
	Referrer    string `json:"referrer"`
}

// HasExpiry reports whether an expiry timestamp was ever recorded.
// Legacy documents in the store may lack one; such accounts are neither
// active nor expired.
func (a Account) HasExpiry() bool {
	return a.ExpiresAt != 0
}
