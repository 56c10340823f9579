// Copyright (c) 2026 Kaede CMS. All rights reserved.

package member

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ymiyake/kaede/internal/auth"
	"github.com/ymiyake/kaede/internal/platform/middleware"
	requestutil "github.com/ymiyake/kaede/internal/platform/request"
	"github.com/ymiyake/kaede/internal/platform/respond"
	"github.com/ymiyake/kaede/internal/platform/sec"
)

// PrincipalResolver turns verified token claims into the caller principal.
// Implemented by [auth.Service].
type PrincipalResolver interface {
	Resolve(ctx context.Context, claims *sec.IdentityClaims) (auth.Principal, error)
}

// Handler implements the member HTTP endpoints.
type Handler struct {
	memberService *Service
	resolver      PrincipalResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, resolver PrincipalResolver) *Handler {
	return &Handler{memberService: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with the member endpoints.
//
// # Endpoints
//   - GET    /     : Paginated, filterable roster listing.
//   - POST   /     : Add a member (admin).
//   - GET    /{id} : Read a member.
//   - PUT    /{id} : Partial update (admin).
//   - DELETE /{id} : Remove a member (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// principal resolves the caller identity for role checks.
func (handler *Handler) principal(request *http.Request) (auth.Principal, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return auth.Principal{}, err
	}

	return handler.resolver.Resolve(request.Context(), claims)
}

// list handles GET /api/v1/members requests.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()
	query := ListQuery{
		RawPage:     queryValues.Get("page"),
		RawLimit:    queryValues.Get("limit"),
		Category:    queryValues.Get("category"),
		RawIsActive: queryValues.Get("isActive"),
	}

	members, meta, err := handler.memberService.List(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if members == nil {
		members = []*Member{}
	}

	respond.OK(writer, respond.Fields{
		"members":    members,
		"pagination": meta,
	})
}

// get handles GET /api/v1/members/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	person, err := handler.memberService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"member": person})
}

// create handles POST /api/v1/members requests.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload map[string]any
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.memberService.Create(request.Context(), caller, payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Fields{"member": person})
}

// update handles PUT /api/v1/members/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload map[string]any
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.memberService.Update(request.Context(), caller, requestutil.ID(request, "id"), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"member": person})
}

// remove handles DELETE /api/v1/members/{id} requests.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.memberService.Delete(request.Context(), caller, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"message": "メンバーが正常に削除されました"})
}
