package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisPrefix = "session:"

// RedisRegistry stores sessions as JSON values with a TTL matching the
// session expiry, so Redis itself takes care of sweeping.
type RedisRegistry struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client, now: time.Now}
}

func (r *RedisRegistry) Put(ctx context.Context, token string, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session expires in the past (%s)", s.ExpiresAt.Format(time.RFC3339))
	}
	return r.client.Set(ctx, redisPrefix+token, data, ttl).Err()
}

func (r *RedisRegistry) Get(ctx context.Context, token string) (*Session, error) {
	val, err := r.client.Get(ctx, redisPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// TTL normally handles expiry; the explicit check covers clock
	// drift between app servers.
	if s.Expired(r.now()) {
		_ = r.client.Del(ctx, redisPrefix+token).Err()
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *RedisRegistry) Touch(ctx context.Context, token string) error {
	s, err := r.Get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.LastActivity = r.now()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.client.Set(ctx, redisPrefix+token, data, redis.KeepTTL).Err()
}

func (r *RedisRegistry) Remove(ctx context.Context, token string) error {
	return r.client.Del(ctx, redisPrefix+token).Err()
}

func (r *RedisRegistry) RemoveAll(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, redisPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *RedisRegistry) Sweep(ctx context.Context) error {
	// Redis expires keys on its own.
	return nil
}

var _ Registry = (*RedisRegistry)(nil)
