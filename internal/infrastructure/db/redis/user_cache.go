package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gms2/gms-api/internal/core/domain"
)

const (
	defaultUserTTL = 5 * time.Minute

	// invalidationHold keeps the tombstone long enough to outlive any store
	// read that started before the invalidation.
	invalidationHold = 30 * time.Second
	tombstone        = "-"
)

// UserCache is a read-through cache of stored users backed by Redis.
// Key format: user:<id>
//
// Invalidate leaves a short-lived tombstone instead of deleting the key, and
// Fill only writes absent keys. A read that loaded a row before a concurrent
// write therefore cannot put the stale row back.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache creates a UserCache wrapping the given Redis client. A
// non-positive ttl falls back to defaultUserTTL.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

// cachedUser carries the password hash, which domain.User hides from JSON.
type cachedUser struct {
	domain.User
	PasswordHash string `json:"passwordHash"`
}

// Get returns the cached user, reporting false on a miss.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("user cache get: %w", err)
	}
	if string(raw) == tombstone {
		return nil, false, nil
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, false, fmt.Errorf("user cache decode: %w", err)
	}
	user := cu.User
	user.PasswordHash = cu.PasswordHash
	return &user, true, nil
}

// Fill stores the user until the TTL expires, unless the key already holds
// a cached copy or a tombstone.
func (c *UserCache) Fill(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(cachedUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	return c.client.SetNX(ctx, c.key(user.ID), raw, c.ttl).Err()
}

// Invalidate replaces any cached copy of the user with a tombstone.
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Set(ctx, c.key(id), tombstone, invalidationHold).Err()
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
