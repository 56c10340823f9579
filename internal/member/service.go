// Copyright (c) 2026 Kaede CMS. All rights reserved.

package member

import (
	"context"
	"strings"

	"github.com/ymiyake/kaede/internal/auth"
	"github.com/ymiyake/kaede/internal/platform/apperr"
	"github.com/ymiyake/kaede/pkg/pagination"
	"github.com/ymiyake/kaede/pkg/sanitize"
	"github.com/ymiyake/kaede/pkg/uuidv7"
	"github.com/ymiyake/kaede/pkg/validation"
)

// msgAdminOnly is returned when a non-admin attempts a roster write.
const msgAdminOnly = "この操作を実行する権限がありません"

// Service implements the roster use cases.
//
// # Authorization
//
// Reads are open to every authenticated user. Writes (create, update,
// delete) require the admin role; the check runs before validation so an
// unauthorized caller learns nothing about payload requirements.
type Service struct {
	members Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(members Repository) *Service {
	return &Service{members: members}
}

// ListQuery carries the raw query parameters of the member list endpoint.
type ListQuery struct {
	RawPage     string
	RawLimit    string
	Category    string
	RawIsActive string
}

// List returns one page of members with pagination metadata.
func (service *Service) List(ctx context.Context, query ListQuery) ([]*Member, pagination.Meta, error) {
	// ── 1. Query Validation ───────────────────────────────────────────────

	if result := validation.MemberListQuery(query.RawPage, query.RawLimit, query.Category, query.RawIsActive); !result.Valid {
		return nil, pagination.Meta{}, invalidParams(result)
	}

	params, err := pagination.Parse(query.RawPage, query.RawLimit)
	if err != nil {
		return nil, pagination.Meta{}, apperr.MalformedRequest("無効なパラメータ: " + err.Error())
	}

	// ── 2. Fetch ──────────────────────────────────────────────────────────

	filter := Filter{Category: query.Category}
	if query.RawIsActive != "" {
		isActive := query.RawIsActive == "true"
		filter.IsActive = &isActive
	}

	members, total, err := service.members.List(ctx, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return members, pagination.Calculate(params.Page, params.Limit, total), nil
}

// Get returns a single member.
func (service *Service) Get(ctx context.Context, id string) (*Member, error) {
	return service.members.FindByID(ctx, id)
}

// Create validates, sanitizes, and persists a new member. Admin only.
func (service *Service) Create(ctx context.Context, caller auth.Principal, payload map[string]any) (*Member, error) {
	if !caller.IsAdmin() {
		return nil, apperr.AuthorizationFailed(msgAdminOnly)
	}

	// ── 1. Validation ─────────────────────────────────────────────────────

	if result := validation.CreateMember(payload); !result.Valid {
		return nil, invalidParams(result)
	}

	name, _ := payload["name"].(string)
	category, _ := payload["category"].(string)
	position, _ := payload["position"].(string)
	description, _ := payload["description"].(string)

	// ── 2. Sanitization ───────────────────────────────────────────────────

	// The description is rich text, so it goes through the HTML policy
	// rather than the strict cleaner.
	person := &Member{
		ID:          uuidv7.New(),
		Name:        sanitize.Clean(name),
		Category:    Category(category),
		Position:    position,
		Description: sanitize.HTML(description),
		IsActive:    true,
	}

	if isActive, ok := payload["isActive"].(bool); ok {
		person.IsActive = isActive
	}

	if imageURL, ok := payload["profileImageUrl"].(string); ok && imageURL != "" {
		person.ProfileImageURL = &imageURL
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	if err := service.members.Create(ctx, person); err != nil {
		return nil, err
	}

	return person, nil
}

// Update applies a partial update to an existing member. Admin only.
//
// A supplied category or position is re-validated against the effective
// pair, so a member can never end up as a "教授" student.
func (service *Service) Update(ctx context.Context, caller auth.Principal, id string, payload map[string]any) (*Member, error) {
	if !caller.IsAdmin() {
		return nil, apperr.AuthorizationFailed(msgAdminOnly)
	}

	// ── 1. Load ───────────────────────────────────────────────────────────

	person, err := service.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// ── 2. Validation Against the Effective Pair ──────────────────────────

	if result := validation.UpdateMember(payload, string(person.Category), person.Position); !result.Valid {
		return nil, invalidParams(result)
	}

	// ── 3. Partial Application ────────────────────────────────────────────

	if name, ok := payload["name"].(string); ok {
		person.Name = sanitize.Clean(name)
	}

	if category, ok := payload["category"].(string); ok {
		person.Category = Category(category)
	}

	if position, ok := payload["position"].(string); ok {
		person.Position = position
	}

	if description, ok := payload["description"].(string); ok {
		person.Description = sanitize.HTML(description)
	}

	if isActive, ok := payload["isActive"].(bool); ok {
		person.IsActive = isActive
	}

	if imageURL, ok := payload["profileImageUrl"].(string); ok {
		if imageURL == "" {
			person.ProfileImageURL = nil
		} else {
			person.ProfileImageURL = &imageURL
		}
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := service.members.Update(ctx, person); err != nil {
		return nil, err
	}

	return person, nil
}

// Delete removes a member. Admin only.
func (service *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	if !caller.IsAdmin() {
		return apperr.AuthorizationFailed(msgAdminOnly)
	}

	if _, err := service.members.FindByID(ctx, id); err != nil {
		return err
	}

	return service.members.Delete(ctx, id)
}

// invalidParams renders a failed validation result as the 400 error.
func invalidParams(result validation.Result) error {
	return apperr.MalformedRequest("無効なパラメータ: " + strings.Join(result.MissingFields, ", "))
}
