// Copyright (c) 2026 Kaede CMS. All rights reserved.

package sec

import "strings"

// ExtractBearerToken parses an Authorization header value into a raw token.
//
// It returns the empty string — never an error — when the header is empty,
// does not split into exactly two space-separated parts, the first part is
// not literally "Bearer", or the token part is blank.
//
// # Purity
//
// The function has no side effects and consults nothing beyond its argument,
// so handlers and middleware can call it freely before any I/O happens.
func ExtractBearerToken(headerValue string) string {
	if headerValue == "" {
		return ""
	}

	parts := strings.Split(headerValue, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	token := parts[1]
	if strings.TrimSpace(token) == "" {
		return ""
	}

	return token
}
