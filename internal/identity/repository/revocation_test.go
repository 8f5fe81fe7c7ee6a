package repository

import (
	"testing"
	"time"
)

func TestMemoryRevocationStore(t *testing.T) {
	t.Run("revoked token is reported until expiry", func(t *testing.T) {
		store := NewMemoryRevocationStore()

		if err := store.Revoke("token-1", time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("Revoke() error = %v", err)
		}

		revoked, err := store.IsRevoked("token-1")
		if err != nil {
			t.Fatalf("IsRevoked() error = %v", err)
		}
		if !revoked {
			t.Error("expected the token to be revoked")
		}
	})

	t.Run("unknown token is not revoked", func(t *testing.T) {
		store := NewMemoryRevocationStore()

		revoked, err := store.IsRevoked("never-seen")
		if err != nil {
			t.Fatalf("IsRevoked() error = %v", err)
		}
		if revoked {
			t.Error("unknown token must not be revoked")
		}
	})

	t.Run("expired entries are purged on lookup", func(t *testing.T) {
		store := NewMemoryRevocationStore()

		if err := store.Revoke("token-1", time.Now().Add(10*time.Millisecond)); err != nil {
			t.Fatalf("Revoke() error = %v", err)
		}
		time.Sleep(20 * time.Millisecond)

		revoked, err := store.IsRevoked("token-1")
		if err != nil {
			t.Fatalf("IsRevoked() error = %v", err)
		}
		if revoked {
			t.Error("expired revocation must not stick around")
		}
	})

	t.Run("revoking an already expired token is a no-op", func(t *testing.T) {
		store := NewMemoryRevocationStore()

		if err := store.Revoke("token-1", time.Now().Add(-time.Minute)); err != nil {
			t.Fatalf("Revoke() error = %v", err)
		}
		revoked, err := store.IsRevoked("token-1")
		if err != nil {
			t.Fatalf("IsRevoked() error = %v", err)
		}
		if revoked {
			t.Error("a token past its expiry has nothing to revoke")
		}
	})

	t.Run("revoking twice is fine", func(t *testing.T) {
		store := NewMemoryRevocationStore()
		until := time.Now().Add(time.Hour)

		for i := 0; i < 2; i++ {
			if err := store.Revoke("token-1", until); err != nil {
				t.Fatalf("Revoke() attempt %d error = %v", i+1, err)
			}
		}
	})
}
