package pricetick

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"synthpool/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	ticks []*core.PriceTick
	lists int32
	fail  bool
}

func (s *memoryStore) Create(_ context.Context, tick *core.PriceTick) error {
	s.ticks = append(s.ticks, tick)
	return nil
}

func (s *memoryStore) List(_ context.Context, filter core.PriceTickFilter) ([]*core.PriceTick, error) {
	atomic.AddInt32(&s.lists, 1)
	if s.fail {
		return nil, errors.New("db down")
	}

	var out []*core.PriceTick
	for _, tick := range s.ticks {
		if tick.Symbol == filter.Symbol && tick.CreatedAt.After(filter.Since) {
			out = append(out, tick)
		}
	}

	return out, nil
}

func (s *memoryStore) Latest(_ context.Context, symbol string) (*core.PriceTick, error) {
	for i := len(s.ticks) - 1; i >= 0; i-- {
		if s.ticks[i].Symbol == symbol {
			return s.ticks[i], nil
		}
	}

	return nil, core.ErrSymbolNotFound
}

func TestCacheList(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	store := &memoryStore{}
	cached := Cache(store, time.Hour)

	require.NoError(t, cached.Create(ctx, &core.PriceTick{
		TraceID:   "a",
		Symbol:    "BTCUSDT",
		LastPrice: decimal.NewFromInt(67000),
		CreatedAt: now,
	}))

	filter := core.PriceTickFilter{Symbol: "BTCUSDT", Since: now.Add(-24*time.Hour + 10*time.Second)}
	ticks, err := cached.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, ticks, 1)

	// same minute hits the cache
	filter.Since = filter.Since.Add(30 * time.Second)
	ticks, err = cached.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, ticks, 1)
	assert.EqualValues(t, 1, atomic.LoadInt32(&store.lists))

	// a new tick invalidates
	require.NoError(t, cached.Create(ctx, &core.PriceTick{
		TraceID:   "b",
		Symbol:    "BTCUSDT",
		LastPrice: decimal.NewFromInt(67100),
		CreatedAt: now.Add(time.Hour),
	}))

	ticks, err = cached.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, ticks, 2)
	assert.EqualValues(t, 2, atomic.LoadInt32(&store.lists))
}

func TestCacheListNeverWidensSince(t *testing.T) {
	ctx := context.Background()
	since := time.Date(2024, 3, 1, 12, 0, 30, 0, time.UTC)

	store := &memoryStore{ticks: []*core.PriceTick{
		{TraceID: "before", Symbol: "BTCUSDT", CreatedAt: since.Add(-20 * time.Second)},
		{TraceID: "after", Symbol: "BTCUSDT", CreatedAt: since.Add(time.Hour)},
	}}
	cached := Cache(store, time.Hour)

	ticks, err := cached.List(ctx, core.PriceTickFilter{Symbol: "BTCUSDT", Since: since})
	require.NoError(t, err)
	require.Len(t, ticks, 1)
	assert.Equal(t, "after", ticks[0].TraceID)
}

func TestCacheListError(t *testing.T) {
	store := &memoryStore{fail: true}
	cached := Cache(store, time.Hour)

	filter := core.PriceTickFilter{Symbol: "BTCUSDT"}
	_, err := cached.List(context.Background(), filter)
	assert.Error(t, err)

	// errors are not cached
	store.fail = false
	ticks, err := cached.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, ticks)
	assert.EqualValues(t, 2, atomic.LoadInt32(&store.lists))
}
