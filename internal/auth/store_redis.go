// Copyright (c) 2026 Kaede CMS. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ymiyake/kaede/internal/platform/constants"
)

// RedisRevocationList implements [RevocationList] on Redis.
//
// Entries are plain string keys with a TTL; membership is a single EXISTS
// call on the hot authentication path.
type RedisRevocationList struct {
	client *redis.Client
}

// NewRevocationList creates the Redis implementation of the RevocationList.
func NewRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

// key builds the namespaced Redis key for a token ID.
func (list *RedisRevocationList) key(tokenID string) string {
	return constants.RedisPrefixRevokedToken + tokenID
}

// Revoke records a token ID for the given duration.
//
// A non-positive TTL means the token has already expired; recording it would
// create a key that never expires, so the call is a no-op.
func (list *RedisRevocationList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := list.client.Set(ctx, list.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("auth_revocation_set_failed: %w", err)
	}

	return nil
}

// IsRevoked reports whether the token ID is on the list.
func (list *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := list.client.Exists(ctx, list.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("auth_revocation_check_failed: %w", err)
	}

	return count > 0, nil
}
