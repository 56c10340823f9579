// Copyright (c) 2026 Kaede CMS. All rights reserved.

package auth

import (
	"context"
	"time"
)

// AccountRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresAccountRepository]).
type AccountRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*UserAccount, error)

	// Create persists a brand-new account.
	Create(ctx context.Context, account *UserAccount) error

	// BumpLastLogin sets lastLoginAt for an existing account.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	BumpLastLogin(ctx context.Context, id string, at time.Time) error

	// BumpLastLogout sets lastLogoutAt for an existing account.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	BumpLastLogout(ctx context.Context, id string, at time.Time) error
}

// RevocationList defines the contract for the volatile token revocation
// store.
//
// # Security Concept
//
// Identity tokens are stateless and cannot be invalidated before they
// expire. On logout the token's JTI is recorded here with a TTL equal to
// the token's remaining life; the composite verifier rejects any token
// whose JTI is present. After the TTL the entry expires together with the
// token itself, keeping the list small.
type RevocationList interface {
	// Revoke records a token ID for the given duration.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token ID is on the list.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
