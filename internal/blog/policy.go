// Copyright (c) 2026 Kaede CMS. All rights reserved.

package blog

import (
	"github.com/ymiyake/kaede/internal/auth"
)

// CanAccess decides whether the caller may read the blog.
//
// Published posts are readable by every authenticated user. Drafts are
// restricted to their author and to administrators.
//
// The function is pure and total: it never touches storage and returns an
// answer for every input.
func CanAccess(post *Blog, caller auth.Principal) bool {
	if post.Status == StatusPublished {
		return true
	}

	return post.AuthorID == caller.ID || caller.IsAdmin()
}

// CanEdit decides whether the caller may modify or delete the blog.
//
// Only the author and administrators may edit, regardless of status.
func CanEdit(post *Blog, caller auth.Principal) bool {
	return post.AuthorID == caller.ID || caller.IsAdmin()
}
