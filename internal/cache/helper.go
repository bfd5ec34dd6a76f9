package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is an explicit cache handle over a Redis client. Components that
// want the cache as an injected dependency hold a *Store; the package-level
// helpers operate on the default client for convenience. A nil Store (or a
// Store over a nil client) behaves as an always-miss cache.
type Store struct {
	client *redis.Client
}

// NewStore wraps the given client in a Store. A nil client is allowed.
func NewStore(c *redis.Client) *Store {
	return &Store{client: c}
}

// Get attempts to fetch the key and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Put marshals v and sets the key with TTL. A non-positive TTL skips the
// write entirely, which turns caching off.
func (s *Store) Put(ctx context.Context, key string, v any, ttl time.Duration) error {
	if s == nil || s.client == nil || ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

// Clear drops every cached entry.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.FlushDB(ctx).Err()
}

// Aside tries the cache first, on miss it calls fetch (which must populate
// dest), then stores the result with ttl. Cache write failures are
// swallowed: the cache is a shortcut, never an authority.
func (s *Store) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := s.Get(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = s.Put(ctx, key, dest, ttl)
	return nil
}

// GetJSON reads the key through the default client.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	return NewStore(client).Get(ctx, key, dest)
}

// SetJSON writes the key through the default client.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	return NewStore(client).Put(ctx, key, v, ttl)
}

// Aside runs the cache-aside pattern through the default client.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	return NewStore(client).Aside(ctx, key, dest, ttl, fetch)
}
