// Copyright (c) 2026 Kaede CMS. All rights reserved.

package blog

import (
	"context"
)

// Filter narrows the blog listing. Zero values mean "no restriction".
type Filter struct {
	// Status restricts to draft or published posts.
	Status string
	// AuthorID restricts to posts by one author.
	AuthorID string
	// Search matches title or content case-insensitively.
	Search string
}

// Repository defines the data access contract for blog posts.
type Repository interface {
	// List returns one page of posts matching the filter, newest first,
	// together with the total count of matching posts. The count honors
	// the same filter as the page, so pagination metadata always agrees
	// with what a client can actually walk.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Blog, int, error)

	// FindByID returns the post with the given ID.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	FindByID(ctx context.Context, id string) (*Blog, error)

	// Create persists a brand-new post.
	Create(ctx context.Context, post *Blog) error

	// Update persists changes to the mutable fields (title, content,
	// status, image URL) and bumps updatedAt.
	Update(ctx context.Context, post *Blog) error

	// Delete removes the post permanently.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	Delete(ctx context.Context, id string) error
}
