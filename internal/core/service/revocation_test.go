package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRevocationRegistry_RevokeAndLookup(t *testing.T) {
	r := NewRevocationRegistry()
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	revoked, err := r.IsRevoked(ctx, "tok")
	if err != nil || revoked {
		t.Fatalf("unrevoked token reported revoked (err=%v)", err)
	}

	if err := r.Revoke(ctx, "tok", expiry); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, _ = r.IsRevoked(ctx, "tok")
	if !revoked {
		t.Fatalf("expected token to be revoked")
	}

	// Idempotent.
	if err := r.Revoke(ctx, "tok", expiry); err != nil {
		t.Fatalf("second Revoke: %v", err)
	}
}

func TestRevocationRegistry_ExpiredEntriesIgnored(t *testing.T) {
	r := NewRevocationRegistry()
	ctx := context.Background()

	// Revoking an already-expired token is a no-op.
	if err := r.Revoke(ctx, "stale", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Revoke expired: %v", err)
	}
	if revoked, _ := r.IsRevoked(ctx, "stale"); revoked {
		t.Fatalf("expired token must not be reported revoked")
	}
}

func TestRevocationRegistry_Prune(t *testing.T) {
	r := NewRevocationRegistry()
	ctx := context.Background()

	_ = r.Revoke(ctx, "short", time.Now().Add(time.Millisecond))
	_ = r.Revoke(ctx, "long", time.Now().Add(time.Hour))

	r.prune(time.Now().Add(time.Second))

	r.mu.RLock()
	_, shortKept := r.revoked["short"]
	_, longKept := r.revoked["long"]
	r.mu.RUnlock()

	if shortKept {
		t.Fatalf("expired entry survived prune")
	}
	if !longKept {
		t.Fatalf("live entry removed by prune")
	}
}

func TestRevocationRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRevocationRegistry()
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		token := fmt.Sprintf("tok-%d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := r.Revoke(ctx, token, expiry); err != nil {
				t.Errorf("Revoke(%s): %v", token, err)
			}
		}()
		go func() {
			defer wg.Done()
			// Must never race or observe torn state; result is either
			// revoked or not-yet-revoked.
			if _, err := r.IsRevoked(ctx, token); err != nil {
				t.Errorf("IsRevoked(%s): %v", token, err)
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		token := fmt.Sprintf("tok-%d", i)
		if revoked, _ := r.IsRevoked(ctx, token); !revoked {
			t.Fatalf("%s not revoked after all writers finished", token)
		}
	}
}
