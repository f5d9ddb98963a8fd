package domain

import "time"

// Role names known to the platform. The set is open: the economics tables may
// carry roles that are not listed here, and roles absent from the tables fall
// back to neutral multipliers.
const (
	RoleAdmin       = "admin"
	RoleStaff       = "staff"
	RoleAccountant  = "accountant"
	RoleCustomer    = "customer"
	RoleShareholder = "shareholder"
	RoleFounder     = "founder"
	RoleAngel       = "angel"
	RoleVIP         = "vip"
)

// Identity statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Identity is the read-only per-request snapshot of a platform member. It is
// populated either live from the identity store (session auth) or from token
// claims frozen at issuance time (bearer auth).
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	Role         string    `json:"role"`
	Roles        []string  `json:"roles,omitempty"`
	Shares       float64   `json:"shares"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleNames returns the identity's effective role set, falling back to the
// single primary role when no role collection is attached.
func (i *Identity) RoleNames() []string {
	if len(i.Roles) > 0 {
		return i.Roles
	}
	if i.Role != "" {
		return []string{i.Role}
	}
	return nil
}

// HasAnyRole reports whether the identity holds at least one of the given roles.
func (i *Identity) HasAnyRole(allowed map[string]struct{}) bool {
	for _, r := range i.RoleNames() {
		if _, ok := allowed[r]; ok {
			return true
		}
	}
	return false
}
