package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "otp:reset:"

// RedisStore implements Store on Redis so multiple service instances
// share password-reset state. Expiry is delegated to key TTLs, which
// makes Sweep a no-op.
type RedisStore struct {
	client      *redis.Client
	resetWindow time.Duration
}

// NewRedisStore creates a Redis-backed store. resetWindow is the time a
// verified code remains usable for the password change.
func NewRedisStore(client *redis.Client, resetWindow time.Duration) *RedisStore {
	return &RedisStore{client: client, resetWindow: resetWindow}
}

func (s *RedisStore) key(email string) string {
	return redisKeyPrefix + email
}

func (s *RedisStore) Put(ctx context.Context, email string, rec Record) error {
	return s.write(ctx, email, rec)
}

func (s *RedisStore) Get(ctx context.Context, email string) (Record, bool, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to read otp record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("failed to decode otp record: %w", err)
	}
	return rec, true, nil
}

func (s *RedisStore) Update(ctx context.Context, email string, rec Record) error {
	return s.write(ctx, email, rec)
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp record: %w", err)
	}
	return nil
}

// Sweep is a no-op: key TTLs expire records server-side.
func (s *RedisStore) Sweep(context.Context, time.Time, time.Duration) (int, error) {
	return 0, nil
}

func (s *RedisStore) write(ctx context.Context, email string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode otp record: %w", err)
	}

	// Verified records live until the reset window closes; unverified
	// ones until the code itself expires.
	var ttl time.Duration
	if rec.Verified {
		ttl = time.Until(rec.VerifiedAt.Add(s.resetWindow))
	} else {
		ttl = time.Until(rec.ExpiresAt)
	}
	if ttl <= 0 {
		ttl = time.Second
	}

	if err := s.client.Set(ctx, s.key(email), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp record: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
