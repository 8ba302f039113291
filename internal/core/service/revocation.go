package service

import (
	"context"
	"sync"
	"time"
)

const defaultSweepInterval = 5 * time.Minute

// RevocationRegistry is the in-memory implementation of
// ports.RevocationRegistry: a mutex-guarded set of revoked access tokens,
// each held until its natural expiry. State is process-local and lost on
// restart.
type RevocationRegistry struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	sweep   time.Duration
}

func NewRevocationRegistry() *RevocationRegistry {
	return &RevocationRegistry{
		revoked: make(map[string]time.Time),
		sweep:   defaultSweepInterval,
	}
}

// Revoke marks a token invalid until expiresAt. Idempotent.
func (r *RevocationRegistry) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	if token == "" || !expiresAt.After(time.Now()) {
		return nil
	}
	r.mu.Lock()
	r.revoked[token] = expiresAt
	r.mu.Unlock()
	return nil
}

// IsRevoked reports whether the token has been revoked and is still within
// its lifetime. Entries past expiry count as not revoked; the sweeper will
// remove them.
func (r *RevocationRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	expiresAt, ok := r.revoked[token]
	r.mu.RUnlock()
	return ok && expiresAt.After(time.Now()), nil
}

// Start launches the background sweeper that drops expired entries. It stops
// when ctx is cancelled.
func (r *RevocationRegistry) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.sweep)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.prune(time.Now())
			}
		}
	}()
}

func (r *RevocationRegistry) prune(now time.Time) {
	r.mu.Lock()
	for token, expiresAt := range r.revoked {
		if !expiresAt.After(now) {
			delete(r.revoked, token)
		}
	}
	r.mu.Unlock()
}
