// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package auth implements the account and session domain of the Kaede
// content backend.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the system. They have no
// dependencies on outer layers (databases, HTTP, identity providers), which
// keeps the core logic testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/ymiyake/kaede/internal/platform/sec"
)

// UserAccount represents a registered user of the Kaede platform.
//
// # Rules
//   - ID equals the subject reported by the identity provider.
//   - Accounts are created lazily on first login or first resolution; there
//     is no self-service registration.
//   - LastLogoutAt is nil until the account logs out for the first time.
type UserAccount struct {
	ID           string     `json:"uid"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         sec.Role   `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  time.Time  `json:"lastLoginAt"`
	LastLogoutAt *time.Time `json:"lastLogoutAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"-"`
}

// Principal is the resolved caller identity attached to every authenticated
// operation. It is derived from verified token claims plus the stored
// account, and is the only identity shape the policy engine accepts.
type Principal struct {
	ID    string   `json:"uid"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  sec.Role `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}
