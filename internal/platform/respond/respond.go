// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response across the entire application follows a
// strict, predictable JSON envelope:
//
//	success: {"success": true,  ...operation-specific fields}
//	failure: {"success": false, "error": "<client-safe message>"}
//
// This consistency is crucial for the admin SPA to parse responses robustly.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ymiyake/kaede/internal/platform/apperr"
	"github.com/ymiyake/kaede/internal/platform/ctxutil"
)

// Fields holds the operation-specific payload merged into the success envelope.
type Fields map[string]any

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the given fields wrapped in the success envelope.
func OK(writer http.ResponseWriter, fields Fields) {
	Success(writer, http.StatusOK, fields)
}

// Created writes a 201 Created response with the given fields wrapped in the success envelope.
func Created(writer http.ResponseWriter, fields Fields) {
	Success(writer, http.StatusCreated, fields)
}

// Success writes a success envelope with an explicit status code.
func Success(writer http.ResponseWriter, statusCode int, fields Fields) {
	envelope := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		envelope[key] = value
	}
	envelope["success"] = true
	JSON(writer, statusCode, envelope)
}

// Error converts any Go error into the standardized failure envelope.
//
// Every failure is logged with operation context before conversion; 5xx
// failures log the hidden cause as well. Unrecognized errors are wrapped as
// internal so their details never leak to the client.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger.ErrorContext(request.Context(), "unclassified_error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	} else {
		logger.WarnContext(request.Context(), "api_client_error",
			slog.String("code", appError.Code),
			slog.Int("status", appError.HTTPStatus),
			slog.String("error", appError.Message),
		)
	}

	JSON(writer, appError.HTTPStatus, map[string]any{
		"success": false,
		"error":   appError.Message,
	})
}
