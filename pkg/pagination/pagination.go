// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
//
// Unlike clamping paginators, out-of-range values here are a caller error:
// parsing reports them so the handler can reject the request with a 400
// instead of silently substituting defaults.
package pagination

import (
	"errors"
	"strconv"
)

const (
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
)

// Validation errors for query parameters. The messages are part of the API
// contract and are returned verbatim to clients.
var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")
)

// Params holds the parsed page and limit for a list query.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from Page and Limit.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Calculate constructs pagination metadata for a response.
//
// TotalPages is the ceiling of total/limit. A page beyond the last one is
// not an error here; it simply yields HasNext=false and an empty result set
// upstream.
func Calculate(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Parse converts raw "page" and "limit" query strings into Params.
//
// # Defaults
//
// An empty string selects [DefaultPage] or [DefaultLimit]. Anything present
// must parse and fall in range, otherwise [ErrInvalidPage] or
// [ErrInvalidLimit] is returned.
func Parse(rawPage, rawLimit string) (Params, error) {
	params := Params{Page: DefaultPage, Limit: DefaultLimit}

	if rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil || page < 1 {
			return Params{}, ErrInvalidPage
		}
		params.Page = page
	}

	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 1 || limit > MaxLimit {
			return Params{}, ErrInvalidLimit
		}
		params.Limit = limit
	}

	return params, nil
}
