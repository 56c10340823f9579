// Copyright (c) 2026 Kaede CMS. All rights reserved.

package blog

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

// Handler implements the blog HTTP endpoints.
type Handler struct {
	blogService *Service
	resolver    PrincipalResolver
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, resolver PrincipalResolver) *Handler {
	return &Handler{blogService: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with the blog endpoints.
//
// # Endpoints
//   - GET    /     : Paginated, filterable listing.
//   - POST   /     : Create a post.
//   - GET    /{id} : Read a post (policy-gated).
//   - PUT    /{id} : Partial update (policy-gated).
//   - DELETE /{id} : Delete (policy-gated).
//
// All routes require an authenticated caller.
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

// principal resolves the caller identity for policy decisions.
func (handler *Handler) principal(request *http.Request) (auth.Principal, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return auth.Principal{}, err
	}

	return handler.resolver.Resolve(request.Context(), claims)
}

// list handles GET /api/v1/blogs requests. Listing applies no per-post
// policy, so authentication via RequireAuth is all it needs and the caller
// principal is never resolved.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()
	query := ListQuery{
		RawPage:  queryValues.Get("page"),
		RawLimit: queryValues.Get("limit"),
		Status:   queryValues.Get("status"),
		Search:   queryValues.Get("search"),
		AuthorID: queryValues.Get("authorId"),
	}

	posts, meta, err := handler.blogService.List(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// An empty page serializes as [] rather than null.
	if posts == nil {
		posts = []*Blog{}
	}

	respond.OK(writer, respond.Fields{
		"blogs":      posts,
		"pagination": meta,
	})
}

// get handles GET /api/v1/blogs/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.Get(request.Context(), caller, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"blog": post})
}

// create handles POST /api/v1/blogs requests.
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

	post, err := handler.blogService.Create(request.Context(), caller, payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Fields{"blog": post})
}

// update handles PUT /api/v1/blogs/{id} requests.
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

	post, err := handler.blogService.Update(request.Context(), caller, requestutil.ID(request, "id"), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"blog": post})
}

// remove handles DELETE /api/v1/blogs/{id} requests.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	caller, err := handler.principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.blogService.Delete(request.Context(), caller, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"message": "ブログが正常に削除されました"})
}
