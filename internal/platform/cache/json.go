package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss reports a key with no stored value.
var ErrMiss = errors.New("cache: miss")

// JSONStore keeps JSON snapshots in Redis under a namespace.
type JSONStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewJSONStore constructs a JSONStore. Entries expire after ttl; zero keeps them forever.
func NewJSONStore(client *redis.Client, namespace string, ttl time.Duration) *JSONStore {
	return &JSONStore{client: client, namespace: namespace, ttl: ttl}
}

// Key composes a namespaced key.
func (s *JSONStore) Key(parts ...string) string {
	return strings.Join(append([]string{s.namespace}, parts...), ":")
}

// Get decodes the value under key into dest. It returns ErrMiss when absent.
func (s *JSONStore) Get(ctx context.Context, key string, dest any) error {
	if s == nil || s.client == nil {
		return ErrMiss
	}
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return nil
}

// Set stores value as JSON under key.
func (s *JSONStore) Set(ctx context.Context, key string, value any) error {
	if s == nil || s.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *JSONStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache: delete %s: %w", key, err)
	}
	return nil
}
