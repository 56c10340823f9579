// Copyright (c) 2026 Kaede CMS. All rights reserved.

package blog_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymiyake/kaede/internal/blog"
	"github.com/ymiyake/kaede/internal/platform/apperr"
)

// fakeRepository is an in-memory [blog.Repository] for service tests.
// Newest-first ordering is modeled by iterating insertions in reverse.
type fakeRepository struct {
	posts     []*blog.Blog
	findCalls int
}

func (repo *fakeRepository) List(_ context.Context, filter blog.Filter, limit, offset int) ([]*blog.Blog, int, error) {
	var matched []*blog.Blog
	for i := len(repo.posts) - 1; i >= 0; i-- {
		post := repo.posts[i]
		if filter.Status != "" && string(post.Status) != filter.Status {
			continue
		}
		if filter.AuthorID != "" && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(post.Title), needle) &&
				!strings.Contains(strings.ToLower(post.Content), needle) {
				continue
			}
		}
		matched = append(matched, post)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*blog.Blog, error) {
	repo.findCalls++
	for _, post := range repo.posts {
		if post.ID == id {
			clone := *post
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("ブログが見つかりません")
}

func (repo *fakeRepository) Create(_ context.Context, post *blog.Blog) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	clone := *post
	repo.posts = append(repo.posts, &clone)
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, post *blog.Blog) error {
	for i, existing := range repo.posts {
		if existing.ID == post.ID {
			post.UpdatedAt = time.Now()
			clone := *post
			repo.posts[i] = &clone
			return nil
		}
	}
	return apperr.NotFound("ブログが見つかりません")
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	for i, existing := range repo.posts {
		if existing.ID == id {
			repo.posts = append(repo.posts[:i], repo.posts[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("ブログが見つかりません")
}

// seed inserts a post directly, bypassing the service.
func (repo *fakeRepository) seed(id, authorID string, status blog.Status) {
	repo.posts = append(repo.posts, &blog.Blog{
		ID:       id,
		Slug:     id,
		Title:    "post " + id,
		Content:  "content " + id,
		Status:   status,
		AuthorID: authorID,
	})
}

/*
TestService_List checks that pagination metadata is computed from the
filtered count and that raw query parameters are validated first.
*/
func TestService_List(t *testing.T) {
	ctx := context.Background()

	newService := func() *blog.Service {
		repo := &fakeRepository{}
		repo.seed("b1", author.ID, blog.StatusPublished)
		repo.seed("b2", author.ID, blog.StatusDraft)
		repo.seed("b3", author.ID, blog.StatusPublished)
		repo.seed("b4", other.ID, blog.StatusDraft)
		repo.seed("b5", other.ID, blog.StatusPublished)
		return blog.NewService(repo)
	}

	t.Run("filtered_count_drives_metadata", func(t *testing.T) {
		service := newService()

		posts, meta, err := service.List(ctx, blog.ListQuery{
			RawLimit: "2",
			Status:   "published",
		})

		require.NoError(t, err)
		require.Len(t, posts, 2)
		for _, post := range posts {
			assert.Equal(t, blog.StatusPublished, post.Status)
		}
		assert.Equal(t, 3, meta.Total)
		assert.Equal(t, 2, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})

	t.Run("listing_applies_no_per_post_policy", func(t *testing.T) {
		service := newService()

		posts, meta, err := service.List(ctx, blog.ListQuery{})

		require.NoError(t, err)
		assert.Len(t, posts, 5)
		assert.Equal(t, 5, meta.Total)
	})

	t.Run("author_filter", func(t *testing.T) {
		service := newService()

		posts, meta, err := service.List(ctx, blog.ListQuery{AuthorID: other.ID})

		require.NoError(t, err)
		assert.Len(t, posts, 2)
		assert.Equal(t, 2, meta.Total)
	})

	t.Run("invalid_page", func(t *testing.T) {
		service := newService()

		_, _, err := service.List(ctx, blog.ListQuery{RawPage: "0"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeMalformedRequest, appError.Code)
		assert.Contains(t, appError.Message, "page must be a positive integer")
	})

	t.Run("invalid_status", func(t *testing.T) {
		service := newService()

		_, _, err := service.List(ctx, blog.ListQuery{Status: "archived"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Contains(t, appError.Message, "status must be draft or published")
	})
}

/*
TestService_Get checks the 404-before-403 ordering and the draft access
policy.
*/
func TestService_Get(t *testing.T) {
	ctx := context.Background()

	repo := &fakeRepository{}
	repo.seed("pub", author.ID, blog.StatusPublished)
	repo.seed("dra", author.ID, blog.StatusDraft)
	service := blog.NewService(repo)

	t.Run("published_readable_by_anyone", func(t *testing.T) {
		post, err := service.Get(ctx, other, "pub")

		require.NoError(t, err)
		assert.Equal(t, "pub", post.ID)
	})

	t.Run("draft_readable_by_author", func(t *testing.T) {
		_, err := service.Get(ctx, author, "dra")
		assert.NoError(t, err)
	})

	t.Run("draft_readable_by_admin", func(t *testing.T) {
		_, err := service.Get(ctx, admin, "dra")
		assert.NoError(t, err)
	})

	t.Run("draft_denied_to_other_user", func(t *testing.T) {
		_, err := service.Get(ctx, other, "dra")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeAuthorizationFailed, appError.Code)
		assert.Contains(t, appError.Message, "権限")
	})

	t.Run("unknown_id_is_not_found_before_policy", func(t *testing.T) {
		_, err := service.Get(ctx, other, "missing")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeNotFound, appError.Code)
	})
}

/*
TestService_Create checks sanitization at creation, slug derivation, and the
rule that the author is always the caller.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("sanitizes_and_assigns_author", func(t *testing.T) {
		repo := &fakeRepository{}
		service := blog.NewService(repo)

		post, err := service.Create(ctx, author, map[string]any{
			"title":    "Lab Retreat <img onload=go()>",
			"content":  "詳細は後日。",
			"status":   "draft",
			"authorId": "spoofed",
		})

		require.NoError(t, err)
		assert.Equal(t, "Lab Retreat <img go()>", post.Title)
		assert.Equal(t, author.ID, post.AuthorID)
		assert.Equal(t, blog.StatusDraft, post.Status)
		assert.True(t, strings.HasPrefix(post.Slug, "lab-retreat-img-go-"))
		assert.Nil(t, post.ImageURL)
		assert.Len(t, repo.posts, 1)
	})

	t.Run("keeps_image_url_when_supplied", func(t *testing.T) {
		service := blog.NewService(&fakeRepository{})

		post, err := service.Create(ctx, author, map[string]any{
			"title":    "With cover",
			"content":  "body",
			"status":   "published",
			"imageUrl": "https://cdn.example.com/cover.png",
		})

		require.NoError(t, err)
		require.NotNil(t, post.ImageURL)
		assert.Equal(t, "https://cdn.example.com/cover.png", *post.ImageURL)
	})

	t.Run("cjk_title_slugs_to_short_id", func(t *testing.T) {
		service := blog.NewService(&fakeRepository{})

		post, err := service.Create(ctx, author, map[string]any{
			"title":   "新しい研究成果",
			"content": "本文",
			"status":  "published",
		})

		require.NoError(t, err)
		assert.Len(t, post.Slug, 8)
		assert.NotContains(t, post.Slug, "-")
	})

	t.Run("rejects_invalid_payload", func(t *testing.T) {
		repo := &fakeRepository{}
		service := blog.NewService(repo)

		_, err := service.Create(ctx, author, map[string]any{
			"title":  "no content",
			"status": "draft",
		})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeMalformedRequest, appError.Code)
		assert.Contains(t, appError.Message, "content")
		assert.Empty(t, repo.posts)
	})
}

/*
TestService_Update checks validation-before-load, the edit policy, and
partial application semantics.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	imageURL := "https://cdn.example.com/old.png"

	newService := func() (*blog.Service, *fakeRepository) {
		repo := &fakeRepository{}
		repo.seed("b1", author.ID, blog.StatusDraft)
		repo.posts[0].ImageURL = &imageURL
		return blog.NewService(repo), repo
	}

	t.Run("invalid_payload_never_reaches_storage", func(t *testing.T) {
		service, repo := newService()

		_, err := service.Update(ctx, author, "b1", map[string]any{"status": "bogus"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeMalformedRequest, appError.Code)
		assert.Zero(t, repo.findCalls)
	})

	t.Run("other_user_denied", func(t *testing.T) {
		service, _ := newService()

		_, err := service.Update(ctx, other, "b1", map[string]any{"title": "hijack"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeAuthorizationFailed, appError.Code)
		assert.Contains(t, appError.Message, "権限")
	})

	t.Run("partial_update_re_sanitizes", func(t *testing.T) {
		service, _ := newService()

		post, err := service.Update(ctx, author, "b1", map[string]any{
			"title":  "改訂 <img onload=go()>",
			"status": "published",
		})

		require.NoError(t, err)
		assert.Equal(t, "改訂 <img go()>", post.Title)
		assert.Equal(t, blog.StatusPublished, post.Status)
		assert.Equal(t, "content b1", post.Content)
		assert.Equal(t, "b1", post.Slug)
	})

	t.Run("empty_image_url_clears_the_field", func(t *testing.T) {
		service, _ := newService()

		post, err := service.Update(ctx, author, "b1", map[string]any{"imageUrl": ""})

		require.NoError(t, err)
		assert.Nil(t, post.ImageURL)
	})

	t.Run("unknown_id", func(t *testing.T) {
		service, _ := newService()

		_, err := service.Update(ctx, author, "missing", map[string]any{"title": "x"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeNotFound, appError.Code)
	})
}

/*
TestService_Delete checks the edit policy on deletion.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	newService := func() *blog.Service {
		repo := &fakeRepository{}
		repo.seed("b1", author.ID, blog.StatusPublished)
		return blog.NewService(repo)
	}

	t.Run("other_user_denied", func(t *testing.T) {
		service := newService()

		err := service.Delete(ctx, other, "b1")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeAuthorizationFailed, appError.Code)
		assert.Contains(t, appError.Message, "削除する権限")
	})

	t.Run("author_deletes", func(t *testing.T) {
		service := newService()

		require.NoError(t, service.Delete(ctx, author, "b1"))

		_, err := service.Get(ctx, author, "b1")
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeNotFound, appError.Code)
	})

	t.Run("admin_deletes", func(t *testing.T) {
		service := newService()

		assert.NoError(t, service.Delete(ctx, admin, "b1"))
	})
}
