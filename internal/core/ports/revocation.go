package ports

import (
	"context"
	"time"
)

// RevocationRegistry tracks access tokens invalidated before their natural
// expiry. Implementations must be safe for concurrent use.
type RevocationRegistry interface {
	// Revoke marks a token invalid until expiresAt. Revoking an already
	// revoked or expired token is not an error.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
