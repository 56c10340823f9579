// Copyright (c) 2026 Kaede CMS. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Unrestricted access: may read, edit, and delete any content
	RoleAdmin Role = "admin"

	// Default role for accounts created lazily on first login
	RoleUser Role = "user"
)

// IsValid reports whether the role is one of the closed set of known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
