package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRegistry is the Redis-backed revocation set. Each revoked access
// token is stored under a digest key with a TTL equal to the token's
// remaining lifetime, so entries prune themselves and revocations survive a
// process restart.
// Key format: revoked:<sha256(token)>
type RevocationRegistry struct {
	client *redis.Client
}

// NewRevocationRegistry creates a RevocationRegistry wrapping the given Redis client.
func NewRevocationRegistry(client *redis.Client) *RevocationRegistry {
	return &RevocationRegistry{client: client}
}

// Revoke marks the token invalid until expiresAt. Idempotent; expired tokens
// are skipped.
func (r *RevocationRegistry) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if token == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been revoked and not yet expired.
func (r *RevocationRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (r *RevocationRegistry) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
