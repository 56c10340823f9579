// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package blog implements the blog content domain of the Kaede backend:
// entities, the access policy, and the CRUD use cases behind the
// /api/v1/blogs endpoints.
package blog

import (
	"time"
)

// Status of a blog post. Drafts are only visible to their author and to
// administrators; published posts are visible to every authenticated user.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Blog represents a single blog post.
//
// # Rules
//   - AuthorID is set from the creating principal and is immutable.
//   - Slug is derived from the title once at creation and never changes,
//     so published URLs stay stable across title edits.
//   - Title and Content are stored sanitized; raw user input never reaches
//     the table.
type Blog struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
