package domain

import "time"

// UserRole gates navigation and mutation rights for an operator.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleKasir1 UserRole = "kasir1"
	RoleKasir2 UserRole = "kasir2"
)

// IsCashier reports whether the role is one of the cashier variants.
func (r UserRole) IsCashier() bool {
	return r == RoleKasir1 || r == RoleKasir2
}

// User is an operator identity. Credentials are stored as bcrypt hashes;
// the plaintext comparison of the original system was a demo placeholder.
type User struct {
	UserID        string     `json:"userID"`
	Username      string     `json:"username"`
	Name          string     `json:"name"`
	Role          UserRole   `json:"role"`
	InstitutionID string     `json:"institutionID"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	AuditFields
}
