// Copyright (c) 2026 Kaede CMS. All rights reserved.

package member

import (
	"context"
)

// Filter narrows the member listing. Zero values mean "no restriction".
type Filter struct {
	// Category restricts to teachers or students.
	Category string
	// IsActive restricts by active status when non-nil.
	IsActive *bool
}

// Repository defines the data access contract for roster members.
type Repository interface {
	// List returns one page of members matching the filter, together with
	// the total count under the same filter. Ordering is newest first.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Member, int, error)

	// FindByID returns the member with the given ID.
	//
	// Returns [apperr.NotFound] if the member does not exist.
	FindByID(ctx context.Context, id string) (*Member, error)

	// Create persists a brand-new member.
	Create(ctx context.Context, person *Member) error

	// Update persists changes to the mutable fields and bumps updatedAt.
	Update(ctx context.Context, person *Member) error

	// Delete removes the member permanently.
	//
	// Returns [apperr.NotFound] if the member does not exist.
	Delete(ctx context.Context, id string) error
}
