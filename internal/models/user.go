package models

import (
	"slices"
	"strings"
	"time"
)

// Role constants
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// User is a marketplace end-user. Only the fields needed for notifications
// are loaded.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FullName returns the user's name, falling back to the email address.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Principal is the authenticated caller of a request, either an end-user or an
// admin. It is populated by the auth middleware from the bearer token.
type Principal struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

// IsAdmin returns true if the principal is an admin or super admin.
func (p *Principal) IsAdmin() bool {
	return p != nil && (p.Role == RoleAdmin || p.Role == RoleSuperAdmin)
}

// Can returns true if the principal is an admin holding perm. Super admins
// hold every permission.
func (p *Principal) Can(perm string) bool {
	if !p.IsAdmin() {
		return false
	}
	if p.Role == RoleSuperAdmin {
		return true
	}
	return slices.Contains(p.Permissions, perm)
}
