// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/grimoire/internal/core/entity"
)

// # Clock

// Clock abstracts time so TTL expiry can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements [Clock].
func (SystemClock) Now() time.Time { return time.Now() }

// # Snapshots

// Snapshot is one merged aggregation and the time it was taken.
type Snapshot struct {
	Entities  []entity.Unified `json:"entities"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// FreshAt reports whether the snapshot is younger than ttl at now.
func (s *Snapshot) FreshAt(now time.Time, ttl time.Duration) bool {
	return s != nil && now.Sub(s.FetchedAt) < ttl
}

// SnapshotStore holds at most one snapshot. Load returns (nil, nil) when
// nothing is stored. Saves are last-writer-wins.
type SnapshotStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// # In-process store

// MemoryStore keeps the snapshot in process memory.
type MemoryStore struct {
	slot atomic.Pointer[Snapshot]
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements [SnapshotStore].
func (m *MemoryStore) Load(context.Context) (*Snapshot, error) {
	return m.slot.Load(), nil
}

// Save implements [SnapshotStore].
func (m *MemoryStore) Save(_ context.Context, snapshot Snapshot) error {
	m.slot.Store(&snapshot)
	return nil
}

// # Shared store

// redisCommands is the subset of the redis client the store needs.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore shares one snapshot across replicas. The key expires with the
// TTL so an abandoned snapshot does not outlive its usefulness.
type RedisStore struct {
	client redisCommands
	key    string
	ttl    time.Duration
}

// NewRedisStore returns a store writing to key with the given expiry.
func NewRedisStore(client redisCommands, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: key, ttl: ttl}
}

// Load implements [SnapshotStore].
func (r *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("search: load snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("search: decode snapshot: %w", err)
	}
	return &snapshot, nil
}

// Save implements [SnapshotStore].
func (r *RedisStore) Save(ctx context.Context, snapshot Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("search: encode snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("search: save snapshot: %w", err)
	}
	return nil
}
