// Copyright (c) 2026 Kaede CMS. All rights reserved.

package middleware

import (
	"context"
	"net/http"

	"github.com/ymiyake/kaede/internal/platform/apperr"
	"github.com/ymiyake/kaede/internal/platform/constants"
	"github.com/ymiyake/kaede/internal/platform/ctxutil"
	"github.com/ymiyake/kaede/internal/platform/respond"
	"github.com/ymiyake/kaede/internal/platform/sec"
)

// Verifier defines the interface needed to verify identity tokens.
//
// # Why an interface?
//
// Defining Verifier here decouples the middleware from the concrete verifier
// (JWT service plus revocation list), allowing handler tests to inject
// lightweight fakes. The context is threaded through because revocation
// lookups hit Redis.
type Verifier interface {
	VerifyToken(ctx context.Context, tokenStr string) (*sec.IdentityClaims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous (handlers decide whether
//     anonymity is acceptable — only login is).
//  3. If present but malformed, abort with HTTP 401.
//  4. If present, verify via the injected verifier; on rejection the
//     verifier's diagnostic message (invalid / expired / revoked) is passed
//     through to the client.
//  5. Inject [*sec.IdentityClaims] into the request context for downstream use.
func Authenticate(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			token := sec.ExtractBearerToken(authHeader)
			if token == "" {
				respond.Error(writer, request, apperr.AuthenticationFailed("認証が必要です"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, apperr.AuthenticationFailed(err.Error()))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetClaims(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.AuthenticationFailed("認証が必要です"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
