// Copyright (c) 2026 Kaede CMS. All rights reserved.

/*
Package validation implements the request validation kernel shared by the
API handlers.

# Overview

Validators operate on decoded JSON payloads (map[string]any) rather than
typed structs so that a field of the wrong JSON type is reported as a
validation failure, never a decode panic. Each validator returns a [Result]
whose error tokens are accumulated in check order; handlers join them into a
single client-facing message.

# Error tokens

A missing or malformed field contributes its bare name ("title"). A field
that passes the type check but carries script-injection content contributes
"<field> contains potentially dangerous content". Query parameter failures
use descriptive sentences ("page must be a positive integer").
*/
package validation

import (
	"strconv"
	"strings"
)

// Blog status values accepted by the API.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Result reports the outcome of validating a payload.
//
// MissingFields carries one token per failed check, in the order the checks
// ran. The name is historical: it also holds dangerous-content and range
// tokens, not only absent fields.
type Result struct {
	Valid         bool     `json:"isValid"`
	MissingFields []string `json:"missingFields"`
}

// newResult builds a Result from the collected error tokens.
func newResult(errors []string) Result {
	return Result{
		Valid:         len(errors) == 0,
		MissingFields: errors,
	}
}

// RequiredFields checks that every named field is present in the payload.
//
// A field counts as missing when it is absent, JSON null, or an empty
// string. Tokens preserve the order of the fields argument.
func RequiredFields(payload map[string]any, fields ...string) Result {
	var errors []string

	for _, field := range fields {
		value, exists := payload[field]
		if !exists || value == nil || value == "" {
			errors = append(errors, field)
		}
	}

	return newResult(errors)
}

// stringField extracts a string value from the payload.
//
// The second return reports presence, the third whether the present value
// actually is a string.
func stringField(payload map[string]any, field string) (string, bool, bool) {
	raw, exists := payload[field]
	if !exists {
		return "", false, false
	}
	text, ok := raw.(string)
	return text, true, ok
}

// dangerous reports whether the text contains a script-injection vector.
//
// The check is a literal substring match. The broader pattern-based
// stripping happens later in the sanitize step; this check exists to reject
// the obvious cases outright.
func dangerous(text string) bool {
	return strings.Contains(text, "<script>") || strings.Contains(text, "javascript:")
}

// CreateBlog validates a blog creation payload.
//
// Title and content must be present non-blank strings, status must be a
// valid enum value, and title/content must be free of dangerous content.
func CreateBlog(payload map[string]any) Result {
	var errors []string

	title, _, titleIsString := stringField(payload, "title")
	if !titleIsString || strings.TrimSpace(title) == "" {
		errors = append(errors, "title")
	}

	content, _, contentIsString := stringField(payload, "content")
	if !contentIsString || strings.TrimSpace(content) == "" {
		errors = append(errors, "content")
	}

	status, _, statusIsString := stringField(payload, "status")
	if !statusIsString || (status != StatusDraft && status != StatusPublished) {
		errors = append(errors, "status")
	}

	if titleIsString && dangerous(title) {
		errors = append(errors, "title contains potentially dangerous content")
	}

	if contentIsString && dangerous(content) {
		errors = append(errors, "content contains potentially dangerous content")
	}

	return newResult(errors)
}

// UpdateBlog validates a partial blog update payload.
//
// Absent fields are skipped. A supplied field is held to the same rules as
// in [CreateBlog], including the type check: a numeric title is a
// validation failure, not a panic.
func UpdateBlog(payload map[string]any) Result {
	var errors []string

	if title, present, isString := stringField(payload, "title"); present {
		if !isString || strings.TrimSpace(title) == "" {
			errors = append(errors, "title")
		}
		if isString && dangerous(title) {
			errors = append(errors, "title contains potentially dangerous content")
		}
	}

	if content, present, isString := stringField(payload, "content"); present {
		if !isString || strings.TrimSpace(content) == "" {
			errors = append(errors, "content")
		}
		if isString && dangerous(content) {
			errors = append(errors, "content contains potentially dangerous content")
		}
	}

	if status, present, isString := stringField(payload, "status"); present {
		if !isString || (status != StatusDraft && status != StatusPublished) {
			errors = append(errors, "status")
		}
	}

	return newResult(errors)
}

// BlogListQuery validates the list endpoint's query parameters.
//
// Empty strings mean "not supplied" and are skipped; pagination defaults
// are applied downstream.
func BlogListQuery(rawPage, rawLimit, status string) Result {
	var errors []string

	if rawPage != "" && !isPositiveInt(rawPage) {
		errors = append(errors, "page must be a positive integer")
	}

	if rawLimit != "" && !isIntInRange(rawLimit, 1, 100) {
		errors = append(errors, "limit must be between 1 and 100")
	}

	if status != "" && status != StatusDraft && status != StatusPublished {
		errors = append(errors, "status must be draft or published")
	}

	return newResult(errors)
}

// isPositiveInt reports whether the raw string is an integer >= 1.
func isPositiveInt(raw string) bool {
	n, err := strconv.Atoi(raw)
	return err == nil && n >= 1
}

// isIntInRange reports whether the raw string is an integer in [min, max].
func isIntInRange(raw string, min, max int) bool {
	n, err := strconv.Atoi(raw)
	return err == nil && n >= min && n <= max
}
