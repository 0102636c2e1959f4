package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"synthpool/core"
	"synthpool/service/chain"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// New new pool reader
func New(client core.IChainClient, cfg core.Chain) core.IPoolReader {
	return &poolReader{
		client: client,
		cfg:    cfg,
	}
}

type poolReader struct {
	client core.IChainClient
	cfg    core.Chain
}

// ReadPool read all oracles and the lending pool, any failure fails the whole read
func (r *poolReader) ReadPool(ctx context.Context) (*core.PoolSnapshot, error) {
	var (
		mu     sync.Mutex
		prices = make(map[string]*core.OraclePrice, len(r.cfg.Oracles))
		lp     *core.LendingPool
	)

	g, ctx := errgroup.WithContext(ctx)
	for symbol, objectID := range r.cfg.Oracles {
		symbol, objectID := symbol, objectID
		g.Go(func() error {
			price, err := r.readOracle(ctx, symbol, objectID)
			if err != nil {
				return err
			}

			mu.Lock()
			prices[symbol] = price
			mu.Unlock()
			return nil
		})
	}

	if r.cfg.LendingPool != "" {
		g.Go(func() error {
			pool, err := r.readLendingPool(ctx, r.cfg.LendingPool)
			if err != nil {
				return err
			}

			lp = pool
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &core.PoolSnapshot{
		Prices:      prices,
		LendingPool: lp,
		UpdatedAt:   time.Now(),
	}, nil
}

func (r *poolReader) readOracle(ctx context.Context, symbol, objectID string) (*core.OraclePrice, error) {
	obj, err := r.client.GetObject(ctx, objectID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("chain.GetObject", objectID)
		return nil, fmt.Errorf("read oracle %s: %w", symbol, err)
	}

	price, err := chain.FieldAmount(obj.Fields, "price", core.PriceDecimals)
	if err != nil {
		return nil, fmt.Errorf("read oracle %s: %w", symbol, err)
	}

	return &core.OraclePrice{
		Symbol: symbol,
		Price:  price,
	}, nil
}

func (r *poolReader) readLendingPool(ctx context.Context, objectID string) (*core.LendingPool, error) {
	obj, err := r.client.GetObject(ctx, objectID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("chain.GetObject", objectID)
		return nil, fmt.Errorf("read lending pool: %w", err)
	}

	var pool core.LendingPool
	for _, f := range []struct {
		key      string
		decimals int32
		dst      *core.Amount
	}{
		{"total_supplied", core.TokenDecimals, &pool.TotalSupplied},
		{"total_borrowed", core.TokenDecimals, &pool.TotalBorrowed},
		{"borrow_rate", core.RateDecimals, &pool.BorrowRate},
		{"supply_rate", core.RateDecimals, &pool.SupplyRate},
	} {
		v, err := chain.FieldAmount(obj.Fields, f.key, f.decimals)
		if err != nil {
			return nil, fmt.Errorf("read lending pool: %w", err)
		}

		*f.dst = v
	}

	return &pool, nil
}
