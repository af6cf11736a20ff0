// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/internal/platform/ctxutil"
)

// DefaultTTL is how long an aggregation is served before providers are
// queried again.
const DefaultTTL = 5 * time.Minute

// Aggregator merges every provider's records behind a TTL snapshot.
//
// Concurrent callers that find the snapshot stale each refresh it; the last
// save wins. Refreshing is idempotent so the race is tolerated.
type Aggregator struct {
	providers []Provider
	store     SnapshotStore
	clock     Clock
	ttl       time.Duration

	cacheLookups  *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
}

// AggregatorOption customizes an [Aggregator].
type AggregatorOption func(*Aggregator)

// WithStore replaces the default in-process [MemoryStore].
func WithStore(store SnapshotStore) AggregatorOption {
	return func(a *Aggregator) { a.store = store }
}

// WithClock replaces [SystemClock].
func WithClock(clock Clock) AggregatorOption {
	return func(a *Aggregator) { a.clock = clock }
}

// WithMetrics attaches the cache lookup ("result") and provider failure
// ("provider") counters.
func WithMetrics(cacheLookups, fetchFailures *prometheus.CounterVec) AggregatorOption {
	return func(a *Aggregator) {
		a.cacheLookups = cacheLookups
		a.fetchFailures = fetchFailures
	}
}

// NewAggregator builds an aggregator over providers. A non-positive ttl
// falls back to [DefaultTTL].
func NewAggregator(providers []Provider, ttl time.Duration, opts ...AggregatorOption) *Aggregator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	aggregator := &Aggregator{
		providers: providers,
		store:     NewMemoryStore(),
		clock:     SystemClock{},
		ttl:       ttl,
	}
	for _, opt := range opts {
		opt(aggregator)
	}
	return aggregator
}

// Entities returns the merged collection, refreshing it when the snapshot
// is missing or older than the TTL.
//
// Provider failures never surface here: a failed provider contributes no
// records. The only error is the caller's own context ending mid-refresh.
func (a *Aggregator) Entities(ctx context.Context) ([]entity.Unified, error) {
	logger := ctxutil.GetLogger(ctx)

	snapshot, err := a.store.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "search_snapshot_load_failed", slog.Any("error", err))
	}

	if snapshot.FreshAt(a.clock.Now(), a.ttl) {
		a.observeLookup("hit")
		return snapshot.Entities, nil
	}
	a.observeLookup("miss")

	merged, loaded := a.collect(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Nothing answered: keep serving misses so the next call retries
	// instead of caching an empty catalog for a full TTL.
	if loaded == 0 && len(a.providers) > 0 {
		logger.WarnContext(ctx, "search_all_providers_failed", slog.Int("providers", len(a.providers)))
		return merged, nil
	}

	fresh := Snapshot{Entities: merged, FetchedAt: a.clock.Now()}
	if err := a.store.Save(ctx, fresh); err != nil {
		logger.WarnContext(ctx, "search_snapshot_save_failed", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "search_cache_refreshed",
		slog.Int("entities", len(merged)),
		slog.Int("providers_ok", loaded),
		slog.Int("providers_total", len(a.providers)),
	)
	return merged, nil
}

// collect loads every provider concurrently and waits for all of them to
// settle. Each task absorbs its own failure so siblings are never cancelled.
func (a *Aggregator) collect(ctx context.Context) ([]entity.Unified, int) {
	logger := ctxutil.GetLogger(ctx)
	results := make([][]entity.Unified, len(a.providers))
	succeeded := make([]bool, len(a.providers))

	var group errgroup.Group
	for i, provider := range a.providers {
		group.Go(func() error {
			records, err := provider.Load(ctx)
			if err != nil {
				logger.WarnContext(ctx, "provider_fetch_failed",
					slog.String("provider", string(provider.Name())),
					slog.Any("error", err),
				)
				a.observeFailure(provider.Name())
				return nil
			}
			results[i] = records
			succeeded[i] = true
			return nil
		})
	}
	_ = group.Wait()

	total := 0
	for _, records := range results {
		total += len(records)
	}

	merged := make([]entity.Unified, 0, total)
	loaded := 0
	for i, records := range results {
		for _, record := range records {
			merged = append(merged, record.WithPlainText())
		}
		if succeeded[i] {
			loaded++
		}
	}
	return merged, loaded
}

func (a *Aggregator) observeLookup(result string) {
	if a.cacheLookups != nil {
		a.cacheLookups.WithLabelValues(result).Inc()
	}
}

func (a *Aggregator) observeFailure(kind entity.Kind) {
	if a.fetchFailures != nil {
		a.fetchFailures.WithLabelValues(string(kind)).Inc()
	}
}
