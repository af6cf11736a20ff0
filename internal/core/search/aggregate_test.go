// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/internal/core/search"
	"github.com/taibuivan/grimoire/internal/platform/metrics"
)

// # Fakes

type fakeProvider struct {
	kind    entity.Kind
	records []entity.Unified
	err     error
	delay   time.Duration
	calls   atomic.Int32
	started chan<- entity.Kind
	release <-chan struct{}
}

func (f *fakeProvider) Name() entity.Kind { return f.kind }

func (f *fakeProvider) Load(ctx context.Context) ([]entity.Unified, error) {
	f.calls.Add(1)

	if f.started != nil {
		f.started <- f.kind
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func record(kind entity.Kind, id, name string) entity.Unified {
	return entity.Unified{ID: id, Name: name, Type: kind, Status: entity.StatusActive}
}

func fourProviders() []*fakeProvider {
	return []*fakeProvider{
		{kind: entity.KindRule, records: []entity.Unified{record(entity.KindRule, "r1", "Grappling")}},
		{kind: entity.KindSpell, records: []entity.Unified{record(entity.KindSpell, "s1", "Fireball"), record(entity.KindSpell, "s2", "Shield")}},
		{kind: entity.KindTrait, records: []entity.Unified{record(entity.KindTrait, "t1", "Darkvision")}},
		{kind: entity.KindFeat, records: []entity.Unified{record(entity.KindFeat, "f1", "Alert")}},
	}
}

func asProviders(fakes []*fakeProvider) []search.Provider {
	providers := make([]search.Provider, len(fakes))
	for i, fake := range fakes {
		providers[i] = fake
	}
	return providers
}

func callCounts(fakes []*fakeProvider) []int32 {
	counts := make([]int32, len(fakes))
	for i, fake := range fakes {
		counts[i] = fake.calls.Load()
	}
	return counts
}

func entityIDs(items []entity.Unified) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

// # Tests

/*
TestAggregator_TTL verifies that a fresh snapshot suppresses fetches until it expires.
*/
func TestAggregator_TTL(t *testing.T) {
	fakes := fourProviders()
	clock := newFakeClock()
	lookups := metrics.NewSearchCacheCounter()
	aggregator := search.NewAggregator(asProviders(fakes), 5*time.Minute,
		search.WithClock(clock),
		search.WithMetrics(lookups, metrics.NewProviderFailureCounter()),
	)
	ctx := context.Background()

	first, err := aggregator.Entities(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 5)
	assert.Equal(t, []int32{1, 1, 1, 1}, callCounts(fakes))

	clock.Advance(4*time.Minute + 59*time.Second)
	second, err := aggregator.Entities(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []int32{1, 1, 1, 1}, callCounts(fakes), "second call within TTL must not fetch")

	clock.Advance(time.Second)
	_, err = aggregator.Entities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 2, 2, 2}, callCounts(fakes), "call after TTL must refetch")

	assert.Equal(t, 1.0, testutil.ToFloat64(lookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(lookups.WithLabelValues("miss")))
}

/*
TestAggregator_ProviderIsolation verifies that one failing provider only loses its own records.
*/
func TestAggregator_ProviderIsolation(t *testing.T) {
	fakes := fourProviders()
	fakes[1].err = errors.New("dial tcp: connection refused")
	failures := metrics.NewProviderFailureCounter()

	aggregator := search.NewAggregator(asProviders(fakes), time.Minute,
		search.WithMetrics(metrics.NewSearchCacheCounter(), failures),
	)

	entities, err := aggregator.Entities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "t1", "f1"}, entityIDs(entities))
	assert.Equal(t, 1.0, testutil.ToFloat64(failures.WithLabelValues("Spell")))
}

/*
TestAggregator_RegistryOrder checks that output order follows the registry, not completion order.
*/
func TestAggregator_RegistryOrder(t *testing.T) {
	fakes := fourProviders()
	fakes[0].delay = 30 * time.Millisecond
	fakes[1].delay = 20 * time.Millisecond
	fakes[2].delay = 10 * time.Millisecond

	entities, err := search.NewAggregator(asProviders(fakes), time.Minute).Entities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "s1", "s2", "t1", "f1"}, entityIDs(entities))
}

/*
TestAggregator_PrecomputesPlainText checks that cached records carry their visible description text.
*/
func TestAggregator_PrecomputesPlainText(t *testing.T) {
	fakes := fourProviders()
	fakes[3].records[0].Description = `Roll with <span data-type="mention" data-id="s1">@Fireball</span>`

	entities, err := search.NewAggregator(asProviders(fakes), time.Minute).Entities(context.Background())
	require.NoError(t, err)

	alert := entities[len(entities)-1]
	require.Equal(t, "f1", alert.ID)
	alert.Description = "<i>changed</i>"
	assert.Equal(t, "Roll with @Fireball", alert.FuzzyFields().Description)
}

/*
TestAggregator_FetchesConcurrently proves every provider is in flight before any completes.
*/
func TestAggregator_FetchesConcurrently(t *testing.T) {
	fakes := fourProviders()
	started := make(chan entity.Kind, len(fakes))
	release := make(chan struct{})
	for _, fake := range fakes {
		fake.started = started
		fake.release = release
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan []entity.Unified, 1)
	go func() {
		entities, _ := search.NewAggregator(asProviders(fakes), time.Minute).Entities(ctx)
		done <- entities
	}()

	for range fakes {
		select {
		case <-started:
		case <-ctx.Done():
			t.Fatal("providers were not fetched concurrently")
		}
	}
	close(release)

	assert.Len(t, <-done, 5)
}

/*
TestAggregator_AllFailedNotCached ensures a total outage is retried on the next call.
*/
func TestAggregator_AllFailedNotCached(t *testing.T) {
	fakes := fourProviders()
	for _, fake := range fakes {
		fake.err = errors.New("503")
	}
	aggregator := search.NewAggregator(asProviders(fakes), time.Minute)

	entities, err := aggregator.Entities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entities)

	for _, fake := range fakes {
		fake.err = nil
	}
	entities, err = aggregator.Entities(context.Background())
	require.NoError(t, err)
	assert.Len(t, entities, 5)
	assert.Equal(t, []int32{2, 2, 2, 2}, callCounts(fakes))
}

/*
TestAggregator_CancelledContext returns the context error and caches nothing.
*/
func TestAggregator_CancelledContext(t *testing.T) {
	fakes := fourProviders()
	store := search.NewMemoryStore()
	aggregator := search.NewAggregator(asProviders(fakes), time.Minute, search.WithStore(store))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := aggregator.Entities(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

/*
TestAggregator_ConcurrentCallers tolerates refresh races without data loss.
*/
func TestAggregator_ConcurrentCallers(t *testing.T) {
	fakes := fourProviders()
	aggregator := search.NewAggregator(asProviders(fakes), time.Minute)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entities, err := aggregator.Entities(context.Background())
			assert.NoError(t, err)
			assert.Len(t, entities, 5)
		}()
	}
	wg.Wait()

	for _, count := range callCounts(fakes) {
		assert.GreaterOrEqual(t, count, int32(1))
		assert.LessOrEqual(t, count, int32(8))
	}
}
