// Copyright (c) 2026 Kaede CMS. All rights reserved.

package blog

import (
	"context"
	"strings"

	"github.com/ymiyake/kaede/internal/auth"
	"github.com/ymiyake/kaede/internal/platform/apperr"
	"github.com/ymiyake/kaede/pkg/pagination"
	"github.com/ymiyake/kaede/pkg/sanitize"
	"github.com/ymiyake/kaede/pkg/slug"
	"github.com/ymiyake/kaede/pkg/uuidv7"
	"github.com/ymiyake/kaede/pkg/validation"
)

// Client-facing policy denial messages.
const (
	msgAccessDenied = "このブログにアクセスする権限がありません"
	msgEditDenied   = "このブログを編集する権限がありません"
	msgDeleteDenied = "このブログを削除する権限がありません"
)

// Service implements the blog use cases.
//
// # Ordering of checks
//
// Every operation validates input first, then loads the target, then runs
// the policy. A request never reaches storage with invalid data, and a
// missing post is reported as 404 before any permission answer could leak
// its existence.
type Service struct {
	posts Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(posts Repository) *Service {
	return &Service{posts: posts}
}

// ListQuery carries the raw query parameters of the list endpoint.
// Page and Limit stay strings until validated.
type ListQuery struct {
	RawPage  string
	RawLimit string
	Status   string
	Search   string
	AuthorID string
}

// List returns one page of posts with pagination metadata.
//
// # Visibility
//
// The listing applies no per-post policy: it honors exactly the filters
// requested. Draft posts only become inaccessible at the detail endpoint.
func (service *Service) List(ctx context.Context, query ListQuery) ([]*Blog, pagination.Meta, error) {
	// ── 1. Query Validation ───────────────────────────────────────────────

	if result := validation.BlogListQuery(query.RawPage, query.RawLimit, query.Status); !result.Valid {
		return nil, pagination.Meta{}, invalidParams(result)
	}

	params, err := pagination.Parse(query.RawPage, query.RawLimit)
	if err != nil {
		return nil, pagination.Meta{}, apperr.MalformedRequest("無効なパラメータ: " + err.Error())
	}

	// ── 2. Fetch ──────────────────────────────────────────────────────────

	filter := Filter{
		Status:   query.Status,
		AuthorID: query.AuthorID,
		Search:   query.Search,
	}

	posts, total, err := service.posts.List(ctx, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return posts, pagination.Calculate(params.Page, params.Limit, total), nil
}

// Get returns a single post after the access policy check.
//
// # Returns
//   - 404 if the post does not exist.
//   - 403 if it exists but the caller may not read it (a draft of another
//     author, for a non-admin caller).
func (service *Service) Get(ctx context.Context, caller auth.Principal, id string) (*Blog, error) {
	post, err := service.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanAccess(post, caller) {
		return nil, apperr.AuthorizationFailed(msgAccessDenied)
	}

	return post, nil
}

// Create validates, sanitizes, and persists a new post.
//
// # Business Rules
//   - AuthorID is always the caller; the payload cannot override it.
//   - Title and content pass through the sanitizer before storage.
//   - The slug is derived from the sanitized title plus a short suffix of
//     the new ID, falling back to the bare ID for titles with no
//     ASCII-representable characters.
func (service *Service) Create(ctx context.Context, caller auth.Principal, payload map[string]any) (*Blog, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	if result := validation.CreateBlog(payload); !result.Valid {
		return nil, invalidParams(result)
	}

	title, _ := payload["title"].(string)
	content, _ := payload["content"].(string)
	status, _ := payload["status"].(string)

	// ── 2. Sanitization ───────────────────────────────────────────────────

	title = sanitize.Clean(title)
	content = sanitize.Clean(content)

	// ── 3. Entity Construction ────────────────────────────────────────────

	id := uuidv7.New()

	post := &Blog{
		ID:       id,
		Slug:     buildSlug(title, id),
		Title:    title,
		Content:  content,
		Status:   Status(status),
		AuthorID: caller.ID,
	}

	if imageURL, ok := payload["imageUrl"].(string); ok && imageURL != "" {
		post.ImageURL = &imageURL
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := service.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Update applies a partial update to an existing post.
//
// Validation runs before the post is even loaded, so a bad payload never
// costs a storage round-trip. Only fields present in the payload change;
// changed text fields are re-sanitized. The slug and author never change.
func (service *Service) Update(ctx context.Context, caller auth.Principal, id string, payload map[string]any) (*Blog, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	if result := validation.UpdateBlog(payload); !result.Valid {
		return nil, invalidParams(result)
	}

	// ── 2. Load & Policy ──────────────────────────────────────────────────

	post, err := service.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanEdit(post, caller) {
		return nil, apperr.AuthorizationFailed(msgEditDenied)
	}

	// ── 3. Partial Application ────────────────────────────────────────────

	if title, ok := payload["title"].(string); ok {
		post.Title = sanitize.Clean(title)
	}

	if content, ok := payload["content"].(string); ok {
		post.Content = sanitize.Clean(content)
	}

	if status, ok := payload["status"].(string); ok {
		post.Status = Status(status)
	}

	if imageURL, ok := payload["imageUrl"].(string); ok {
		if imageURL == "" {
			post.ImageURL = nil
		} else {
			post.ImageURL = &imageURL
		}
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := service.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes a post after the edit policy check.
func (service *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	post, err := service.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !CanEdit(post, caller) {
		return apperr.AuthorizationFailed(msgDeleteDenied)
	}

	return service.posts.Delete(ctx, post.ID)
}

// buildSlug derives the URL slug for a new post.
func buildSlug(title, id string) string {
	short := strings.ReplaceAll(id, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}

	base := slug.From(title)
	if base == "" {
		return short
	}

	return base + "-" + short
}

// invalidParams renders a failed validation result as the 400 error.
func invalidParams(result validation.Result) error {
	return apperr.MalformedRequest("無効なパラメータ: " + strings.Join(result.MissingFields, ", "))
}
