// Copyright (c) 2026 Kaede CMS. All rights reserved.

package blog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymiyake/kaede/internal/auth"
	"github.com/ymiyake/kaede/internal/blog"
	"github.com/ymiyake/kaede/internal/platform/ctxutil"
	"github.com/ymiyake/kaede/internal/platform/sec"
)

// staticResolver maps token subjects onto fixed principals and counts how
// often it is consulted.
type staticResolver struct {
	principals map[string]auth.Principal
	resolves   int
}

func (resolver *staticResolver) Resolve(_ context.Context, claims *sec.IdentityClaims) (auth.Principal, error) {
	resolver.resolves++
	return resolver.principals[claims.Subject], nil
}

// newTestRouter mounts the blog handler the way the server does, with the
// authentication already decided per request via injected claims.
func newTestRouter(repo *fakeRepository, principals map[string]auth.Principal) chi.Router {
	handler := blog.NewHandler(blog.NewService(repo), &staticResolver{principals: principals})

	router := chi.NewRouter()
	router.Mount("/api/v1/blogs", handler.Routes())
	return router
}

// doRequest performs an in-process request, optionally authenticated as the
// given subject.
func doRequest(router chi.Router, method, target, subject, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if subject != "" {
		claims := &sec.IdentityClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}}
		request = request.WithContext(ctxutil.WithClaims(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

/*
TestHandler_Envelope checks the response envelope contract across the main
status classes: success carries "success": true plus the payload, failures
carry "success": false plus the client message.
*/
func TestHandler_Envelope(t *testing.T) {
	principals := map[string]auth.Principal{
		author.ID: author,
		other.ID:  other,
	}

	newRouter := func() chi.Router {
		repo := &fakeRepository{}
		repo.seed("pub", author.ID, blog.StatusPublished)
		repo.seed("dra", author.ID, blog.StatusDraft)
		return newTestRouter(repo, principals)
	}

	t.Run("unauthenticated_request_is_401", func(t *testing.T) {
		recorder := doRequest(newRouter(), http.MethodGet, "/api/v1/blogs", "", "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, false, envelope["success"])
		assert.Equal(t, "認証が必要です", envelope["error"])
	})

	t.Run("list_success_envelope", func(t *testing.T) {
		recorder := doRequest(newRouter(), http.MethodGet, "/api/v1/blogs", author.ID, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, true, envelope["success"])

		posts, ok := envelope["blogs"].([]any)
		require.True(t, ok)
		assert.Len(t, posts, 2)

		pagination, ok := envelope["pagination"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(2), pagination["total"])
		assert.Equal(t, float64(1), pagination["totalPages"])
	})

	t.Run("list_never_resolves_the_principal", func(t *testing.T) {
		repo := &fakeRepository{}
		repo.seed("pub", author.ID, blog.StatusPublished)
		resolver := &staticResolver{principals: principals}
		handler := blog.NewHandler(blog.NewService(repo), resolver)
		router := chi.NewRouter()
		router.Mount("/api/v1/blogs", handler.Routes())

		recorder := doRequest(router, http.MethodGet, "/api/v1/blogs", author.ID, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Zero(t, resolver.resolves, "listing needs authentication only")

		doRequest(router, http.MethodGet, "/api/v1/blogs/pub", author.ID, "")
		assert.Equal(t, 1, resolver.resolves)
	})

	t.Run("empty_list_serializes_as_array", func(t *testing.T) {
		router := newTestRouter(&fakeRepository{}, principals)

		recorder := doRequest(router, http.MethodGet, "/api/v1/blogs", author.ID, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"blogs":[]`)
	})

	t.Run("draft_for_other_user_is_403", func(t *testing.T) {
		recorder := doRequest(newRouter(), http.MethodGet, "/api/v1/blogs/dra", other.ID, "")

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, false, envelope["success"])
		assert.Contains(t, envelope["error"], "権限")
	})

	t.Run("unknown_post_is_404", func(t *testing.T) {
		recorder := doRequest(newRouter(), http.MethodGet, "/api/v1/blogs/missing", other.ID, "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, "ブログが見つかりません", envelope["error"])
	})

	t.Run("create_returns_201_with_blog", func(t *testing.T) {
		body := `{"title": "新規投稿", "content": "本文", "status": "draft"}`

		recorder := doRequest(newRouter(), http.MethodPost, "/api/v1/blogs", author.ID, body)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, true, envelope["success"])

		post, ok := envelope["blog"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "新規投稿", post["title"])
		assert.Equal(t, author.ID, post["authorId"])
	})

	t.Run("malformed_body_is_400", func(t *testing.T) {
		recorder := doRequest(newRouter(), http.MethodPost, "/api/v1/blogs", author.ID, "{not json")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, "リクエストデータが無効です", envelope["error"])
	})

	t.Run("delete_returns_message", func(t *testing.T) {
		recorder := doRequest(newRouter(), http.MethodDelete, "/api/v1/blogs/pub", author.ID, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, "ブログが正常に削除されました", envelope["message"])
	})
}
