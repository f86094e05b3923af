package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist tracks logged-out JWTs in Redis. Entries expire with
// the token itself, so the set never needs explicit cleanup.
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist creates a blacklist backed by the given Redis client
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Add marks a token as revoked for the remainder of its lifetime
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return b.client.Set(ctx, "blacklist:"+token, "1", ttl).Err()
}

// Contains reports whether a token has been revoked
func (b *TokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, "blacklist:"+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
