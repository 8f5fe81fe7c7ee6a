package repository

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis"
)

const revocationKeyPrefix = "pawsteps:revoked:"

// RevocationStore remembers signed-out session tokens until they would have
// expired anyway. Sign-out is idempotent: revoking twice is fine.
type RevocationStore interface {
	Revoke(token string, until time.Time) error
	IsRevoked(token string) (bool, error)
}

type redisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocationStore{client: client}
}

func (s *redisRevocationStore) Revoke(token string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired; nothing worth remembering.
		return nil
	}
	if err := s.client.Set(revocationKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *redisRevocationStore) IsRevoked(token string) (bool, error) {
	_, err := s.client.Get(revocationKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return true, nil
}

func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revocationKeyPrefix + hex.EncodeToString(sum[:])
}

type memoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMemoryRevocationStore is the fallback when no Redis address is
// configured. Entries are purged lazily on lookup.
func NewMemoryRevocationStore() RevocationStore {
	return &memoryRevocationStore{
		revoked: make(map[string]time.Time),
	}
}

func (s *memoryRevocationStore) Revoke(token string, until time.Time) error {
	if time.Until(until) <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[revocationKey(token)] = until
	return nil
}

func (s *memoryRevocationStore) IsRevoked(token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := revocationKey(token)
	until, ok := s.revoked[key]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(s.revoked, key)
		return false, nil
	}
	return true, nil
}
