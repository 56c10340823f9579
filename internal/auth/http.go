// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Handlers act as the gatekeepers to the system. They are responsible for:
//   - JSON request parsing and strict input validation.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ymiyake/kaede/internal/platform/apperr"
	"github.com/ymiyake/kaede/internal/platform/middleware"
	requestutil "github.com/ymiyake/kaede/internal/platform/request"
	"github.com/ymiyake/kaede/internal/platform/respond"
	"github.com/ymiyake/kaede/pkg/validation"
)

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the auth endpoints.
//
// # Endpoints
//   - POST /login   : Verifies an identity token and opens the session.
//   - POST /logout  : Records logout and revokes the presented token.
//   - GET  /user    : Returns the stored account of the caller.
//   - GET  /session : Returns the dashboard bootstrap profile.
//
// Login is the only route outside the authentication gate: the token to
// verify arrives in the body, not the Authorization header.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/logout", handler.logout)
		protected.Get("/user", handler.currentUser)
		protected.Get("/session", handler.session)
	})

	return router
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - 200 with the account on success (creating it on first login).
//   - 400 if the idToken field is missing.
//   - 401 if the token is rejected, with the verifier's diagnostic.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var payload map[string]any
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if result := validation.RequiredFields(payload, "idToken"); !result.Valid {
		respond.Error(writer, request, apperr.MalformedRequest(
			"必須フィールドが不足しています: "+strings.Join(result.MissingFields, ", ")))
		return
	}

	idToken, _ := payload["idToken"].(string)

	// ── 3. Application Execution ──────────────────────────────────────────

	account, err := handler.authService.Login(request.Context(), idToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, respond.Fields{"user": account})
}

// logout handles POST /api/v1/auth/logout requests.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"message": "ログアウトしました"})
}

// currentUser handles GET /api/v1/auth/user requests.
//
// # Returns
//   - 200 with the stored account. Reading the profile never bumps
//     lastLoginAt.
//   - 404 if the subject has no account.
//   - 500 if the stored record is missing required fields.
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.authService.CurrentUser(request.Context(), claims.Subject)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Fields{"user": account})
}

// session handles GET /api/v1/auth/session requests.
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile := handler.authService.SessionProfile(request.Context(), claims)

	respond.OK(writer, respond.Fields{"user": profile})
}
