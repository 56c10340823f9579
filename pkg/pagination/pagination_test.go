// Copyright (c) 2026 Kaede CMS. All rights reserved.

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymiyake/kaede/pkg/pagination"
)

/*
TestParse checks query parameter parsing, defaults, and rejection rules.
*/
func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		rawPage   string
		rawLimit  string
		wantPage  int
		wantLimit int
		wantErr   error
	}{
		{"both_empty_uses_defaults", "", "", 1, 10, nil},
		{"explicit_values", "3", "25", 3, 25, nil},
		{"limit_at_max", "1", "100", 1, 100, nil},
		{"page_zero", "0", "", 0, 0, pagination.ErrInvalidPage},
		{"page_negative", "-1", "", 0, 0, pagination.ErrInvalidPage},
		{"page_not_numeric", "abc", "", 0, 0, pagination.ErrInvalidPage},
		{"limit_zero", "", "0", 0, 0, pagination.ErrInvalidLimit},
		{"limit_above_max", "", "101", 0, 0, pagination.ErrInvalidLimit},
		{"limit_not_numeric", "", "ten", 0, 0, pagination.ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := pagination.Parse(tt.rawPage, tt.rawLimit)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset checks SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, pagination.Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 50, pagination.Params{Page: 3, Limit: 25}.Offset())
}

/*
TestCalculate checks the pagination metadata arithmetic: ceiling division
for totalPages and the navigation flags.
*/
func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		limit          int
		total          int
		wantTotalPages int
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{"empty_set", 1, 10, 0, 0, false, false},
		{"exact_single_page", 1, 10, 10, 1, false, false},
		{"partial_last_page_rounds_up", 1, 10, 11, 2, true, false},
		{"middle_page", 2, 10, 30, 3, true, true},
		{"last_page", 3, 10, 30, 3, false, true},
		{"page_beyond_last", 5, 10, 30, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.Calculate(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.limit, meta.Limit)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantTotalPages, meta.TotalPages)
			assert.Equal(t, tt.wantHasNext, meta.HasNext)
			assert.Equal(t, tt.wantHasPrev, meta.HasPrev)
		})
	}
}
