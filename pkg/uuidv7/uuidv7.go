// Copyright (c) 2026 Kaede CMS. All rights reserved.

/*
Package uuidv7 generates time-ordered identifiers.

Version 7 UUIDs embed a millisecond timestamp in their high bits, which
gives primary keys a natural insertion order and keeps index pages warm.
*/
package uuidv7

import "github.com/google/uuid"

// New returns a new UUIDv7 string.
//
// The underlying library only fails when the system entropy source is
// exhausted. In that case we fall back to a random v4 value rather than
// propagating an error nobody can act on.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
