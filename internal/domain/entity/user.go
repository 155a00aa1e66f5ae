package entity

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a local account. SSO accounts are resolved from the external
// identity provider by ExternalSubject and carry an empty PasswordHash;
// local admin accounts authenticate with bcrypt.
type User struct {
	ID              string
	Username        string
	FullName        string
	Email           string
	PasswordHash    string // bcrypt hash; empty for SSO-only accounts
	ExternalSubject string // stable subject from the identity provider; empty for local accounts
	Role            string // admin, staff
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
