package auth

import (
	"context"
	"fmt"
	"time"

	"wavefm/core/apperr"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:"

// Blacklist stores revoked tokens in Redis until they would have expired
// anyway. Logout revokes; the auth middleware checks on every request.
type Blacklist struct {
	client *redis.Client
}

// NewBlacklist creates a Blacklist backed by the given Redis client.
func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

// Revoke blacklists a token for its remaining lifetime. Revoking a token
// that has already expired is an error; it needs no blacklisting.
func (b *Blacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return apperr.New(apperr.InvalidArgument, "Token is already expired.")
	}

	key := blacklistKeyPrefix + token
	if err := b.client.Set(ctx, key, "blacklisted", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been blacklisted.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := blacklistKeyPrefix + token
	_, err := b.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return true, nil
}
