package pricehistory

import (
	"context"
	"errors"
	"testing"
	"time"

	"synthpool/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTickers struct {
	ticker *core.Ticker
	err    error
}

func (f *fakeTickers) PullTicker(_ context.Context, symbol string) (*core.Ticker, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.ticker, nil
}

type fakeTicks struct {
	ticks map[string]*core.PriceTick
}

func (f *fakeTicks) Create(_ context.Context, tick *core.PriceTick) error {
	if _, ok := f.ticks[tick.TraceID]; !ok {
		f.ticks[tick.TraceID] = tick
	}

	return nil
}

func (f *fakeTicks) List(_ context.Context, _ core.PriceTickFilter) ([]*core.PriceTick, error) {
	return nil, nil
}

func (f *fakeTicks) Latest(_ context.Context, symbol string) (*core.PriceTick, error) {
	return nil, core.ErrSymbolNotFound
}

type fakeCheckpoint struct {
	values map[string]interface{}
}

func (f *fakeCheckpoint) Save(_ context.Context, key string, value interface{}) error {
	f.values[key] = value
	return nil
}

func newWorker(tickers core.ITickerService) (*Worker, *fakeTicks, *fakeCheckpoint) {
	ticks := &fakeTicks{ticks: map[string]*core.PriceTick{}}
	checkpoint := &fakeCheckpoint{values: map[string]interface{}{}}
	cfg := core.PriceHistory{Symbol: "BTCUSDT", Source: "Bybit", Schedule: "@hourly"}

	return New(cfg, time.UTC, tickers, ticks, checkpoint), ticks, checkpoint
}

func TestIngest(t *testing.T) {
	tickers := &fakeTickers{ticker: &core.Ticker{
		Symbol:       "BTCUSDT",
		LastPrice:    decimal.RequireFromString("67321.5"),
		PrevPrice24h: decimal.RequireFromString("66000"),
		Raw:          []byte(`{"symbol":"BTCUSDT","lastPrice":"67321.5"}`),
	}}

	w, ticks, checkpoint := newWorker(tickers)
	now := time.Date(2024, 3, 1, 12, 0, 5, 0, time.UTC)
	w.now = func() time.Time { return now }

	require.NoError(t, w.Ingest(context.Background()))
	require.Len(t, ticks.ticks, 1)

	for _, tick := range ticks.ticks {
		assert.Equal(t, "BTCUSDT", tick.Symbol)
		assert.Equal(t, "Bybit", tick.Source)
		assert.Equal(t, "67321.5", tick.LastPrice.String())
		assert.Equal(t, now, tick.CreatedAt)
		assert.JSONEq(t, `{"symbol":"BTCUSDT","lastPrice":"67321.5"}`, tick.Content.String())
	}

	assert.Equal(t, now, checkpoint.values[checkpointKey])

	// rerun within the hour keeps one row
	w.now = func() time.Time { return now.Add(30 * time.Minute) }
	require.NoError(t, w.Ingest(context.Background()))
	assert.Len(t, ticks.ticks, 1)

	w.now = func() time.Time { return now.Add(time.Hour) }
	require.NoError(t, w.Ingest(context.Background()))
	assert.Len(t, ticks.ticks, 2)
}

func TestIngestFailureSkips(t *testing.T) {
	w, ticks, checkpoint := newWorker(&fakeTickers{err: core.ErrSymbolNotFound})

	err := w.Ingest(context.Background())
	assert.ErrorIs(t, err, core.ErrSymbolNotFound)
	assert.Empty(t, ticks.ticks)
	assert.Empty(t, checkpoint.values)

	w, _, _ = newWorker(&fakeTickers{ticker: &core.Ticker{Symbol: "BTCUSDT"}})
	assert.Error(t, w.Ingest(context.Background()))
}

func TestRunBadSchedule(t *testing.T) {
	w, _, _ := newWorker(&fakeTickers{err: errors.New("unused")})
	w.cfg.Schedule = "whenever"

	assert.Error(t, w.Run(context.Background()))
}
