// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package member implements the lab-member roster domain behind the
// /api/v1/members endpoints.
package member

import (
	"time"
)

// Category of a member. The category constrains which positions are valid.
type Category string

const (
	CategoryTeacher Category = "teacher"
	CategoryStudent Category = "student"
)

// Member represents one person on the roster.
//
// # Rules
//   - Position must belong to the category's allowed set: academic ranks
//     for teachers, enrollment levels for students.
//   - Description may carry rich-text markup; it is stored after HTML
//     sanitization.
//   - Inactive members stay on the roster for history but are filtered
//     out of the default public listing by the frontend.
type Member struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        Category  `json:"category"`
	Position        string    `json:"position"`
	Description     string    `json:"description"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
