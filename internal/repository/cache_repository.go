package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const availabilityKeyPrefix = "availability"

// AvailabilityCacheRepository stores computed slot snapshots in Redis for a
// short TTL. Snapshots are advisory, so a stale entry only widens the
// time-of-check window; tenant invalidation keeps schedule edits visible
// promptly.
type AvailabilityCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCacheRepository creates the cache repository. A nil client
// disables caching entirely.
func NewAvailabilityCacheRepository(client *redis.Client, ttl time.Duration) *AvailabilityCacheRepository {
	return &AvailabilityCacheRepository{client: client, ttl: ttl}
}

// SnapshotKey builds the cache key for one availability query shape.
func SnapshotKey(tenantID, date, staffID string, durationMinutes, bufferMinutes int) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d:%d", availabilityKeyPrefix, tenantID, date, staffID, durationMinutes, bufferMinutes)
}

// Get loads a cached snapshot into dest. The bool result reports a cache hit.
func (r *AvailabilityCacheRepository) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores a snapshot under the repository TTL.
func (r *AvailabilityCacheRepository) Set(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateTenant removes every cached snapshot of a tenant. Returns the
// number of keys dropped.
func (r *AvailabilityCacheRepository) InvalidateTenant(ctx context.Context, tenantID string) (int, error) {
	if r.client == nil {
		return 0, nil
	}
	pattern := fmt.Sprintf("%s:%s:*", availabilityKeyPrefix, tenantID)
	var dropped int
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return dropped, fmt.Errorf("cache invalidate: %w", err)
		}
		dropped++
	}
	if err := iter.Err(); err != nil {
		return dropped, fmt.Errorf("cache scan: %w", err)
	}
	return dropped, nil
}
