package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OraclePrice oracle price of an asset, 4 decimals on chain
type OraclePrice struct {
	Symbol string `json:"symbol"`
	Price  Amount `json:"price"`
}

// LendingPool lending pool state
type LendingPool struct {
	TotalSupplied Amount `json:"total_supplied"`
	TotalBorrowed Amount `json:"total_borrowed"`
	// percentage, 2 decimals on chain
	BorrowRate Amount `json:"borrow_rate"`
	SupplyRate Amount `json:"supply_rate"`
}

// UtilizationRate total borrowed / total supplied, zero for an empty pool
func (p *LendingPool) UtilizationRate() decimal.Decimal {
	supplied := p.TotalSupplied.Decimal()
	if !supplied.IsPositive() {
		return decimal.Zero
	}

	return p.TotalBorrowed.Decimal().Div(supplied)
}

// PoolSnapshot pool and oracle state, rebuilt wholesale on every poll
type PoolSnapshot struct {
	Prices      map[string]*OraclePrice `json:"prices"`
	LendingPool *LendingPool            `json:"lending_pool"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// Price usd price of symbol; false if missing or not positive
func (s *PoolSnapshot) Price(symbol string) (decimal.Decimal, bool) {
	if s == nil {
		return decimal.Zero, false
	}

	p, ok := s.Prices[symbol]
	if !ok || p == nil {
		return decimal.Zero, false
	}

	price := p.Price.Decimal()
	if !price.IsPositive() {
		return decimal.Zero, false
	}

	return price, true
}

// CollateralPrice usd price of a collateral, 1 for pegged assets
func (s *PoolSnapshot) CollateralPrice(asset CollateralAsset) (decimal.Decimal, bool) {
	if asset.Pegged() {
		return decimal.NewFromInt(1), true
	}

	return s.Price(asset.PriceSymbol())
}

// IPoolReader read pool and oracle objects from chain
type IPoolReader interface {
	ReadPool(ctx context.Context) (*PoolSnapshot, error)
}
