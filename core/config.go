package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Config synthpool config
type Config struct {
	App          App          `json:"app"`
	DB           db.Config    `json:"db"`
	Chain        Chain        `json:"chain"`
	Sync         Sync         `json:"sync"`
	PriceHistory PriceHistory `json:"price_history"`
	Risk         Risk         `json:"risk"`
}

// App app config
type App struct {
	// chain identity the wallet must report, e.g. sui:testnet
	Network  string `json:"network" valid:"required"`
	Location string `json:"location"`
}

// Chain chain deployment config, all ids are deployment specific
type Chain struct {
	RPC         string                  `json:"rpc" valid:"required"`
	PackageID   string                  `json:"package_id" valid:"required"`
	GasBudget   int64                   `json:"gas_budget"`
	Coins       map[string]CoinConfig   `json:"coins"`
	Oracles     map[string]string       `json:"oracles"`
	LendingPool string                  `json:"lending_pool"`
	Positions   PositionTables          `json:"positions"`
	Actions     map[string]ActionTarget `json:"actions"`
}

// CoinConfig coin type and decimals of a symbol
type CoinConfig struct {
	Type     string `json:"type"`
	Decimals int32  `json:"decimals"`
}

// PositionTables object ids of the per-address position tables
type PositionTables struct {
	Mint   string `json:"mint"`
	Borrow string `json:"borrow"`
	Supply string `json:"supply"`
}

// ActionTarget move call target of an action and the shared objects it takes
type ActionTarget struct {
	Module   string   `json:"module"`
	Function string   `json:"function"`
	Objects  []string `json:"objects"`
}

// Sync synchronizer periods, duration strings like "5s"
type Sync struct {
	BalancePeriod     string `json:"balance_period"`
	PoolInitialPeriod string `json:"pool_initial_period"`
	PoolSteadyPeriod  string `json:"pool_steady_period"`
}

// BalanceInterval balance poll period
func (s Sync) BalanceInterval() time.Duration {
	return cast.ToDuration(s.BalancePeriod)
}

// PoolInitialInterval pool poll period before the first success
func (s Sync) PoolInitialInterval() time.Duration {
	return cast.ToDuration(s.PoolInitialPeriod)
}

// PoolSteadyInterval pool poll period after the first success
func (s Sync) PoolSteadyInterval() time.Duration {
	return cast.ToDuration(s.PoolSteadyPeriod)
}

// PriceHistory price ingestor config
type PriceHistory struct {
	Endpoint string `json:"endpoint" valid:"required"`
	Category string `json:"category"`
	Symbol   string `json:"symbol"`
	Source   string `json:"source"`
	// cron spec
	Schedule string `json:"schedule"`
	CacheTTL string `json:"cache_ttl"`
}

// CacheDuration ttl of cached history queries
func (p PriceHistory) CacheDuration() time.Duration {
	return cast.ToDuration(p.CacheTTL)
}

// Risk risk parameters, percentages
type Risk struct {
	MintRatio        float64 `json:"mint_ratio"`
	LiquidationRatio float64 `json:"liquidation_ratio"`
	LeverageStep     float64 `json:"leverage_step"`
	MaxLeverage      float64 `json:"max_leverage"`
	SafeRatio        float64 `json:"safe_ratio"`
	HealthyRatio     float64 `json:"healthy_ratio"`
	CautionRatio     float64 `json:"caution_ratio"`
}

// Params risk parameters as decimals
func (r Risk) Params() RiskParams {
	return RiskParams{
		MintRatio:        decimal.NewFromFloat(r.MintRatio),
		LiquidationRatio: decimal.NewFromFloat(r.LiquidationRatio),
		LeverageStep:     decimal.NewFromFloat(r.LeverageStep),
		MaxLeverage:      decimal.NewFromFloat(r.MaxLeverage),
		Thresholds: BandThresholds{
			Safe:    decimal.NewFromFloat(r.SafeRatio),
			Healthy: decimal.NewFromFloat(r.HealthyRatio),
			Caution: decimal.NewFromFloat(r.CautionRatio),
		},
	}
}

// RiskParams risk parameters used by the calculator
type RiskParams struct {
	MintRatio        decimal.Decimal
	LiquidationRatio decimal.Decimal
	LeverageStep     decimal.Decimal
	MaxLeverage      decimal.Decimal
	Thresholds       BandThresholds
}

// BandThresholds lower bounds of the safe, healthy and caution bands, percentages
type BandThresholds struct {
	Safe    decimal.Decimal
	Healthy decimal.Decimal
	Caution decimal.Decimal
}
