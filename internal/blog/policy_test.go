// Copyright (c) 2026 Kaede CMS. All rights reserved.

package blog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ymiyake/kaede/internal/auth"
	"github.com/ymiyake/kaede/internal/blog"
	"github.com/ymiyake/kaede/internal/platform/sec"
)

var (
	author = auth.Principal{ID: "user-author", Role: sec.RoleUser}
	other  = auth.Principal{ID: "user-other", Role: sec.RoleUser}
	admin  = auth.Principal{ID: "user-admin", Role: sec.RoleAdmin}
)

/*
TestCanAccess checks the read policy matrix across status, ownership and
role.
*/
func TestCanAccess(t *testing.T) {
	tests := []struct {
		name   string
		status blog.Status
		caller auth.Principal
		want   bool
	}{
		{"published_visible_to_author", blog.StatusPublished, author, true},
		{"published_visible_to_other_user", blog.StatusPublished, other, true},
		{"published_visible_to_admin", blog.StatusPublished, admin, true},
		{"draft_visible_to_author", blog.StatusDraft, author, true},
		{"draft_hidden_from_other_user", blog.StatusDraft, other, false},
		{"draft_visible_to_admin", blog.StatusDraft, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &blog.Blog{AuthorID: author.ID, Status: tt.status}

			assert.Equal(t, tt.want, blog.CanAccess(post, tt.caller))
		})
	}
}

/*
TestCanEdit checks that only the author and administrators may write,
independent of status.
*/
func TestCanEdit(t *testing.T) {
	tests := []struct {
		name   string
		status blog.Status
		caller auth.Principal
		want   bool
	}{
		{"author_edits_draft", blog.StatusDraft, author, true},
		{"author_edits_published", blog.StatusPublished, author, true},
		{"other_user_cannot_edit_published", blog.StatusPublished, other, false},
		{"other_user_cannot_edit_draft", blog.StatusDraft, other, false},
		{"admin_edits_any", blog.StatusDraft, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &blog.Blog{AuthorID: author.ID, Status: tt.status}

			assert.Equal(t, tt.want, blog.CanEdit(post, tt.caller))
		})
	}
}
