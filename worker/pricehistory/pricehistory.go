package pricehistory

import (
	"context"
	"fmt"
	"time"

	"synthpool/core"
	"synthpool/pkg/id"
	"synthpool/pkg/metrics"
	"synthpool/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/jmoiron/sqlx/types"
)

const checkpointKey = "price_history_checkpoint"

// Checkpoint where the last stored tick is recorded, satisfied by property.Store
type Checkpoint interface {
	Save(ctx context.Context, key string, value interface{}) error
}

// Worker snapshot the exchange ticker into the price history store
type Worker struct {
	cfg        core.PriceHistory
	loc        *time.Location
	tickers    core.ITickerService
	ticks      core.IPriceTickStore
	checkpoint Checkpoint
	now        func() time.Time
}

// New new price history worker
func New(cfg core.PriceHistory, loc *time.Location, tickers core.ITickerService, ticks core.IPriceTickStore, checkpoint Checkpoint) *Worker {
	return &Worker{
		cfg:        cfg,
		loc:        loc,
		tickers:    tickers,
		ticks:      ticks,
		checkpoint: checkpoint,
		now:        time.Now,
	}
}

// Run ingest on the configured schedule until ctx is done
//
// a failed run is logged and the period skipped, the next tick retries
func (w *Worker) Run(ctx context.Context) error {
	s, err := worker.NewCron("pricehistory", w.cfg.Schedule, w.loc, w.Ingest)
	if err != nil {
		return err
	}

	return s.Run(ctx)
}

// Ingest pull the ticker once and store it
func (w *Worker) Ingest(ctx context.Context) error {
	err := w.ingest(ctx)
	metrics.IngestTotal.WithLabelValues(metrics.Result(err)).Inc()
	return err
}

func (w *Worker) ingest(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricehistory")

	ticker, err := w.tickers.PullTicker(ctx, w.cfg.Symbol)
	if err != nil {
		log.WithError(err).Errorln("tickers.PullTicker", w.cfg.Symbol)
		return err
	}

	if !ticker.LastPrice.IsPositive() {
		return fmt.Errorf("invalid last price %s of %s", ticker.LastPrice, ticker.Symbol)
	}

	now := w.now().UTC()
	// one row per symbol and hour, a rerun in the same hour is a no-op
	traceID := id.UUIDFromString(fmt.Sprintf("price-%s-%s", ticker.Symbol, now.Truncate(time.Hour).Format(time.RFC3339)))

	tick := &core.PriceTick{
		TraceID:       traceID,
		Symbol:        ticker.Symbol,
		LastPrice:     ticker.LastPrice,
		PrevPrice24h:  ticker.PrevPrice24h,
		Price24hPcnt:  ticker.Price24hPcnt,
		Volume24h:     ticker.Volume24h,
		UsdIndexPrice: ticker.UsdIndexPrice,
		Source:        w.cfg.Source,
		Content:       types.JSONText(ticker.Raw),
		CreatedAt:     now,
	}

	if err := w.ticks.Create(ctx, tick); err != nil {
		log.WithError(err).Errorln("ticks.Create", traceID)
		return err
	}

	if err := w.checkpoint.Save(ctx, checkpointKey, tick.CreatedAt); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	log.Infof("stored %s %s at %s", tick.Symbol, tick.LastPrice, tick.CreatedAt.Format(time.RFC3339))
	return nil
}
