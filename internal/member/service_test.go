// Copyright (c) 2026 Kaede CMS. All rights reserved.

package member_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymiyake/kaede/internal/auth"
	"github.com/ymiyake/kaede/internal/member"
	"github.com/ymiyake/kaede/internal/platform/apperr"
	"github.com/ymiyake/kaede/internal/platform/sec"
)

var (
	admin   = auth.Principal{ID: "user-admin", Role: sec.RoleAdmin}
	regular = auth.Principal{ID: "user-regular", Role: sec.RoleUser}
)

// fakeRepository is an in-memory [member.Repository] for service tests.
type fakeRepository struct {
	members []*member.Member
	writes  int
}

func (repo *fakeRepository) List(_ context.Context, filter member.Filter, limit, offset int) ([]*member.Member, int, error) {
	var matched []*member.Member
	for _, person := range repo.members {
		if filter.Category != "" && string(person.Category) != filter.Category {
			continue
		}
		if filter.IsActive != nil && person.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, person)
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

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*member.Member, error) {
	for _, person := range repo.members {
		if person.ID == id {
			clone := *person
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("メンバーが見つかりません")
}

func (repo *fakeRepository) Create(_ context.Context, person *member.Member) error {
	repo.writes++
	now := time.Now()
	person.CreatedAt = now
	person.UpdatedAt = now
	clone := *person
	repo.members = append(repo.members, &clone)
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, person *member.Member) error {
	repo.writes++
	for i, existing := range repo.members {
		if existing.ID == person.ID {
			person.UpdatedAt = time.Now()
			clone := *person
			repo.members[i] = &clone
			return nil
		}
	}
	return apperr.NotFound("メンバーが見つかりません")
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	repo.writes++
	for i, existing := range repo.members {
		if existing.ID == id {
			repo.members = append(repo.members[:i], repo.members[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("メンバーが見つかりません")
}

func (repo *fakeRepository) seed(id string, category member.Category, position string, isActive bool) {
	repo.members = append(repo.members, &member.Member{
		ID:       id,
		Name:     "member " + id,
		Category: category,
		Position: position,
		IsActive: isActive,
	})
}

/*
TestService_List checks the roster filters and that metadata follows the
filtered count.
*/
func TestService_List(t *testing.T) {
	ctx := context.Background()

	repo := &fakeRepository{}
	repo.seed("m1", member.CategoryTeacher, "教授", true)
	repo.seed("m2", member.CategoryTeacher, "助教", false)
	repo.seed("m3", member.CategoryStudent, "博士", true)
	repo.seed("m4", member.CategoryStudent, "修士", true)
	service := member.NewService(repo)

	t.Run("no_filter", func(t *testing.T) {
		members, meta, err := service.List(ctx, member.ListQuery{})

		require.NoError(t, err)
		assert.Len(t, members, 4)
		assert.Equal(t, 4, meta.Total)
	})

	t.Run("category_filter", func(t *testing.T) {
		members, meta, err := service.List(ctx, member.ListQuery{Category: "student"})

		require.NoError(t, err)
		assert.Len(t, members, 2)
		assert.Equal(t, 2, meta.Total)
	})

	t.Run("active_filter", func(t *testing.T) {
		members, meta, err := service.List(ctx, member.ListQuery{
			Category:    "teacher",
			RawIsActive: "true",
		})

		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "m1", members[0].ID)
		assert.Equal(t, 1, meta.Total)
	})

	t.Run("invalid_category", func(t *testing.T) {
		_, _, err := service.List(ctx, member.ListQuery{Category: "alumni"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeMalformedRequest, appError.Code)
		assert.Contains(t, appError.Message, "category must be teacher or student")
	})
}

/*
TestService_Create checks the admin gate, the rich-text description
sanitization, and the isActive default.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()

	valid := func() map[string]any {
		return map[string]any{
			"name":        "山田太郎",
			"category":    "teacher",
			"position":    "教授",
			"description": "<p>分散システムの<strong>研究</strong>。</p><script>x()</script>",
		}
	}

	t.Run("non_admin_denied_before_validation", func(t *testing.T) {
		repo := &fakeRepository{}
		service := member.NewService(repo)

		// A broken payload must not leak validation details to a caller
		// who is not allowed to write in the first place.
		_, err := service.Create(ctx, regular, map[string]any{})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeAuthorizationFailed, appError.Code)
		assert.Contains(t, appError.Message, "権限")
		assert.Zero(t, repo.writes)
	})

	t.Run("admin_creates_with_sanitized_description", func(t *testing.T) {
		repo := &fakeRepository{}
		service := member.NewService(repo)

		person, err := service.Create(ctx, admin, valid())

		require.NoError(t, err)
		assert.Equal(t, "<p>分散システムの<strong>研究</strong>。</p>", person.Description)
		assert.True(t, person.IsActive)
		assert.NotEmpty(t, person.ID)
		assert.Len(t, repo.members, 1)
	})

	t.Run("explicit_is_active_false", func(t *testing.T) {
		service := member.NewService(&fakeRepository{})

		payload := valid()
		payload["isActive"] = false

		person, err := service.Create(ctx, admin, payload)

		require.NoError(t, err)
		assert.False(t, person.IsActive)
	})

	t.Run("rejects_mismatched_pair", func(t *testing.T) {
		service := member.NewService(&fakeRepository{})

		payload := valid()
		payload["position"] = "博士"

		_, err := service.Create(ctx, admin, payload)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeMalformedRequest, appError.Code)
		assert.Contains(t, appError.Message, "position is not valid for the selected category")
	})
}

/*
TestService_Update checks the effective-pair validation and partial
application.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	newService := func() (*member.Service, *fakeRepository) {
		repo := &fakeRepository{}
		repo.seed("m1", member.CategoryTeacher, "教授", true)
		return member.NewService(repo), repo
	}

	t.Run("non_admin_denied", func(t *testing.T) {
		service, repo := newService()

		_, err := service.Update(ctx, regular, "m1", map[string]any{"name": "x"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeAuthorizationFailed, appError.Code)
		assert.Zero(t, repo.writes)
	})

	t.Run("position_checked_against_stored_category", func(t *testing.T) {
		service, _ := newService()

		_, err := service.Update(ctx, admin, "m1", map[string]any{"position": "修士"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Contains(t, appError.Message, "position is not valid for the selected category")
	})

	t.Run("category_and_position_move_together", func(t *testing.T) {
		service, _ := newService()

		person, err := service.Update(ctx, admin, "m1", map[string]any{
			"category": "student",
			"position": "博士",
		})

		require.NoError(t, err)
		assert.Equal(t, member.CategoryStudent, person.Category)
		assert.Equal(t, "博士", person.Position)
	})

	t.Run("description_goes_through_html_policy", func(t *testing.T) {
		service, _ := newService()

		person, err := service.Update(ctx, admin, "m1", map[string]any{
			"description": `<p onclick="x()">経歴</p>`,
		})

		require.NoError(t, err)
		assert.Equal(t, "<p>経歴</p>", person.Description)
	})

	t.Run("empty_profile_image_clears_the_field", func(t *testing.T) {
		service, repo := newService()
		imageURL := "https://cdn.example.com/m1.png"
		repo.members[0].ProfileImageURL = &imageURL

		person, err := service.Update(ctx, admin, "m1", map[string]any{"profileImageUrl": ""})

		require.NoError(t, err)
		assert.Nil(t, person.ProfileImageURL)
	})

	t.Run("unknown_id", func(t *testing.T) {
		service, _ := newService()

		_, err := service.Update(ctx, admin, "missing", map[string]any{"name": "x"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeNotFound, appError.Code)
	})
}

/*
TestService_Delete checks the admin gate and deletion.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("non_admin_denied", func(t *testing.T) {
		repo := &fakeRepository{}
		repo.seed("m1", member.CategoryStudent, "修士", true)
		service := member.NewService(repo)

		err := service.Delete(ctx, regular, "m1")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeAuthorizationFailed, appError.Code)
		assert.Len(t, repo.members, 1)
	})

	t.Run("admin_deletes", func(t *testing.T) {
		repo := &fakeRepository{}
		repo.seed("m1", member.CategoryStudent, "修士", true)
		service := member.NewService(repo)

		require.NoError(t, service.Delete(ctx, admin, "m1"))
		assert.Empty(t, repo.members)
	})

	t.Run("unknown_id", func(t *testing.T) {
		service := member.NewService(&fakeRepository{})

		err := service.Delete(ctx, admin, "missing")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeNotFound, appError.Code)
	})
}
