// Package secrets keeps Stellar secret keys out of the primary store. Keys are
// written once at registration and are never serialized into API responses.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound indicates no secret is stored for the user.
var ErrNotFound = errors.New("secret not found")

// Store holds per-user Stellar secret keys.
type Store interface {
	Put(ctx context.Context, userID, secretKey string) error
	Get(ctx context.Context, userID string) (string, error)
}

const keyPrefix = "stellar:secret:"

// RedisStore persists secrets in a Redis instance with restricted access.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed secret store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put stores the secret key for a user. Keys have no TTL.
func (s *RedisStore) Put(ctx context.Context, userID, secretKey string) error {
	if err := s.client.Set(ctx, keyPrefix+userID, secretKey, 0).Err(); err != nil {
		return fmt.Errorf("store secret: %w", err)
	}
	return nil
}

// Get fetches the secret key for a user.
func (s *RedisStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, keyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("fetch secret: %w", err)
	}
	return val, nil
}

type memoryStore struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewMemoryStore builds an in-memory secret store for development and tests.
func NewMemoryStore() Store {
	return &memoryStore{secrets: make(map[string]string)}
}

func (s *memoryStore) Put(_ context.Context, userID, secretKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[userID] = secretKey
	return nil
}

func (s *memoryStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.secrets[userID]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}
