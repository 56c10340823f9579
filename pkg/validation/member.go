// Copyright (c) 2026 Kaede CMS. All rights reserved.

package validation

import "strings"

// Member category values accepted by the API.
const (
	CategoryTeacher = "teacher"
	CategoryStudent = "student"
)

// PositionsByCategory maps each member category to its allowed positions,
// in display order. Teaching staff carry academic ranks; students carry
// their enrollment level.
var PositionsByCategory = map[string][]string{
	CategoryTeacher: {"教授", "准教授", "助教", "講師"},
	CategoryStudent: {"博士", "修士", "学部生", "研究生"},
}

// ValidCategory reports whether the category is a known member category.
func ValidCategory(category string) bool {
	_, ok := PositionsByCategory[category]
	return ok
}

// ValidPosition reports whether the position is allowed for the category.
func ValidPosition(category, position string) bool {
	for _, allowed := range PositionsByCategory[category] {
		if position == allowed {
			return true
		}
	}
	return false
}

// CreateMember validates a member creation payload.
//
// Name and description must be present non-blank strings, the category must
// be known, and the position must belong to that category's allowed set.
// The name is additionally screened for dangerous content.
func CreateMember(payload map[string]any) Result {
	var errors []string

	name, _, nameIsString := stringField(payload, "name")
	if !nameIsString || strings.TrimSpace(name) == "" {
		errors = append(errors, "name")
	}

	category, _, categoryIsString := stringField(payload, "category")
	if !categoryIsString || !ValidCategory(category) {
		errors = append(errors, "category")
	}

	position, _, positionIsString := stringField(payload, "position")
	if !positionIsString || strings.TrimSpace(position) == "" {
		errors = append(errors, "position")
	} else if categoryIsString && ValidCategory(category) && !ValidPosition(category, position) {
		errors = append(errors, "position is not valid for the selected category")
	}

	description, _, descriptionIsString := stringField(payload, "description")
	if !descriptionIsString || strings.TrimSpace(description) == "" {
		errors = append(errors, "description")
	}

	if isActive, present := payload["isActive"]; present {
		if _, ok := isActive.(bool); !ok {
			errors = append(errors, "isActive")
		}
	}

	if nameIsString && dangerous(name) {
		errors = append(errors, "name contains potentially dangerous content")
	}

	return newResult(errors)
}

// UpdateMember validates a partial member update payload.
//
// Absent fields are skipped. The category/position pairing is re-checked
// against the effective pair: effectiveCategory is the stored category
// unless the payload supplies a new one, and likewise for the position.
func UpdateMember(payload map[string]any, storedCategory, storedPosition string) Result {
	var errors []string

	if name, present, isString := stringField(payload, "name"); present {
		if !isString || strings.TrimSpace(name) == "" {
			errors = append(errors, "name")
		}
		if isString && dangerous(name) {
			errors = append(errors, "name contains potentially dangerous content")
		}
	}

	effectiveCategory := storedCategory
	if category, present, isString := stringField(payload, "category"); present {
		if !isString || !ValidCategory(category) {
			errors = append(errors, "category")
		} else {
			effectiveCategory = category
		}
	}

	effectivePosition := storedPosition
	if position, present, isString := stringField(payload, "position"); present {
		if !isString || strings.TrimSpace(position) == "" {
			errors = append(errors, "position")
		} else {
			effectivePosition = position
		}
	}

	if ValidCategory(effectiveCategory) && effectivePosition != "" && !ValidPosition(effectiveCategory, effectivePosition) {
		errors = append(errors, "position is not valid for the selected category")
	}

	if description, present, isString := stringField(payload, "description"); present {
		if !isString || strings.TrimSpace(description) == "" {
			errors = append(errors, "description")
		}
	}

	if isActive, present := payload["isActive"]; present {
		if _, ok := isActive.(bool); !ok {
			errors = append(errors, "isActive")
		}
	}

	return newResult(errors)
}

// MemberListQuery validates the member list endpoint's query parameters.
func MemberListQuery(rawPage, rawLimit, category, rawIsActive string) Result {
	var errors []string

	if rawPage != "" && !isPositiveInt(rawPage) {
		errors = append(errors, "page must be a positive integer")
	}

	if rawLimit != "" && !isIntInRange(rawLimit, 1, 100) {
		errors = append(errors, "limit must be between 1 and 100")
	}

	if category != "" && !ValidCategory(category) {
		errors = append(errors, "category must be teacher or student")
	}

	if rawIsActive != "" && rawIsActive != "true" && rawIsActive != "false" {
		errors = append(errors, "isActive must be true or false")
	}

	return newResult(errors)
}
