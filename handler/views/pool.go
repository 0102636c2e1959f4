package views

import (
	"time"

	"synthpool/core"

	"github.com/shopspring/decimal"
)

// LendingPool lending pool view
type LendingPool struct {
	*core.LendingPool
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
}

// Pool pool view
type Pool struct {
	Prices      map[string]decimal.Decimal `json:"prices"`
	LendingPool *LendingPool               `json:"lending_pool,omitempty"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// PoolView render pool snapshot
func PoolView(pool *core.PoolSnapshot) Pool {
	view := Pool{
		Prices:    make(map[string]decimal.Decimal, len(pool.Prices)),
		UpdatedAt: pool.UpdatedAt,
	}

	for symbol, p := range pool.Prices {
		view.Prices[symbol] = p.Price.Decimal()
	}

	if lp := pool.LendingPool; lp != nil {
		view.LendingPool = &LendingPool{
			LendingPool:     lp,
			UtilizationRate: lp.UtilizationRate(),
		}
	}

	return view
}
