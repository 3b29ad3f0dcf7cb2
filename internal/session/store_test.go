package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRevocation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	revoked, err := store.Revoked(ctx, "token-1")
	if err != nil {
		t.Fatalf("revoked: %v", err)
	}
	if revoked {
		t.Fatalf("expected unknown token to be unrevoked")
	}

	if err := store.Revoke(ctx, "token-1", time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err = store.Revoked(ctx, "token-1")
	if err != nil || !revoked {
		t.Fatalf("expected token to be revoked, got %v, %v", revoked, err)
	}

	// Another token is unaffected.
	if revoked, _ := store.Revoked(ctx, "token-2"); revoked {
		t.Fatalf("expected other token to be unrevoked")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// A non-positive TTL means the token is already past its life.
	if err := store.Revoke(ctx, "dead", 0); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := store.Revoked(ctx, "dead"); revoked {
		t.Fatalf("expected zero-ttl revocation to be a no-op")
	}

	if err := store.Revoke(ctx, "short", time.Nanosecond); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	time.Sleep(time.Millisecond)
	if revoked, _ := store.Revoked(ctx, "short"); revoked {
		t.Fatalf("expected expired revocation to clear")
	}
}
