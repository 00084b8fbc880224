// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists carts keyed by session token. Load returns a fresh
// empty cart when no cart exists for the token.
type Store interface {
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, token string, c *Cart) error
	Delete(ctx context.Context, token string) error
}

// RedisStore stores carts as JSON blobs in Redis with a TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed cart store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func cartKey(token string) string {
	return fmt.Sprintf("cart:session:%s", token)
}

// Load retrieves the cart for a token, or an empty cart when none exists
func (s *RedisStore) Load(ctx context.Context, token string) (*Cart, error) {
	if token == "" {
		return nil, fmt.Errorf("session token required for cart")
	}

	data, err := s.client.Get(ctx, cartKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return NewCart(token), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return &c, nil
}

// Save persists the cart for a token
func (s *RedisStore) Save(ctx context.Context, token string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	return s.client.Set(ctx, cartKey(token), data, s.ttl).Err()
}

// Delete removes the cart for a token
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, cartKey(token)).Err()
}
