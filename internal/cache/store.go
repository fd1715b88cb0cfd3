package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a thin JSON read-cache over redis.  A nil redis client disables
// it entirely: every Get misses and every Set is a no-op, so the gateway
// degrades to fetch-through when redis is down at startup.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore wraps the redis client.  A non-positive ttl defaults to 30s;
// availability is time-sensitive and cached copies must stay short-lived.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Enabled reports whether a redis client is attached.
func (s *Store) Enabled() bool { return s != nil && s.rdb != nil }

// GetJSON loads and decodes the entry under key into out.  Returns false
// on a miss, a decode failure, or when the store is disabled.
func (s *Store) GetJSON(ctx context.Context, key string, out any) bool {
	if !s.Enabled() {
		return false
	}
	bs, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(bs, out) == nil
}

// SetJSON stores val under key with the store's TTL.  Failures are dropped;
// a cache write must never fail the request that produced the data.
func (s *Store) SetJSON(ctx context.Context, key string, val any) {
	if !s.Enabled() {
		return
	}
	bs, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = s.rdb.SetEx(ctx, key, bs, s.ttl).Err()
}

// Delete removes the given keys.  Missing keys are fine.
func (s *Store) Delete(ctx context.Context, keys ...string) {
	if !s.Enabled() || len(keys) == 0 {
		return
	}
	_ = s.rdb.Del(ctx, keys...).Err()
}
