// Copyright (c) 2026 Kaede CMS. All rights reserved.

/*
Package apperr defines the centralized error taxonomy for the Kaede API.

It provides a rich error type that bridges the gap between low-level
verifier/storage errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Taxonomy: MalformedRequest, AuthenticationFailure, AuthorizationFailure,
    NotFound, DataIntegrityFailure, StorageFailure.
  - Mapping: Explicit mapping from AppError to standard HTTP status codes.

Every error that leaves the service layer should be wrapped as an [AppError] to
ensure consistent API responses. The Code never reaches a client — the response
envelope carries only the message — but it is kept on the error for structured
logging and for tests that assert on the failure class.
*/
package apperr

import (
	"errors"
	"net/http"
)

// Machine-readable error codes, one per taxonomy class.
const (
	CodeMalformedRequest     = "MALFORMED_REQUEST"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeAuthorizationFailed  = "AUTHORIZATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeDataIntegrity        = "DATA_INTEGRITY"
	CodeStorageFailure       = "STORAGE_FAILURE"
)

// AppError is the canonical error type for the Kaede API.
//
// It carries an HTTP status code, a machine-readable code, and a client-safe
// message.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// MalformedRequest creates a 400 [AppError] for unparsable bodies, failed
// field validation, dangerous content, and out-of-range query parameters.
func MalformedRequest(msg string) *AppError {
	return &AppError{
		Code:       CodeMalformedRequest,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// AuthenticationFailed creates a 401 [AppError].
//
// The verifier's diagnostic message (invalid / expired / revoked token) is
// passed through untouched so clients can distinguish the categories.
func AuthenticationFailed(msg string) *AppError {
	return &AppError{
		Code:       CodeAuthenticationFailed,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AuthorizationFailed creates a 403 [AppError] for policy-engine denials.
func AuthorizationFailed(msg string) *AppError {
	return &AppError{
		Code:       CodeAuthorizationFailed,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound creates a 404 [AppError].
//
// The message is client-facing and should name the missing resource in the
// API's language (e.g. "ブログが見つかりません").
func NotFound(msg string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// # Server Errors (5xx)

// DataIntegrity creates a 500 [AppError] for stored documents that are
// missing fields the rest of the system depends on (e.g. an account without
// name or role).
func DataIntegrity(msg string) *AppError {
	return &AppError{
		Code:       CodeDataIntegrity,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Storage creates a 500 [AppError] wrapping an underlying store failure.
// The message describes the failed operation for the client; the cause is
// kept for logging and is never serialized.
func Storage(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodeStorageFailure,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] for any other unexpected server-side error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeStorageFailure,
		Message:    "予期しないエラーが発生しました",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
