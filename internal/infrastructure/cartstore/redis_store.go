package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// NewRedisClient creates a client for addr and verifies the server answers.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

// RedisStore keeps each cart as one JSON value whose TTL is refreshed on every save.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, token string) (*cart.Cart, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return &cart.Cart{Token: token, Lines: []cart.Line{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", token, err)
	}
	if c.Lines == nil {
		c.Lines = []cart.Line{}
	}
	c.Token = token
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+c.Token, data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
