package config

import (
	"strings"

	"synthpool/core"
)

const (
	defaultBalancePeriod     = "5s"
	defaultPoolInitialPeriod = "3s"
	defaultPoolSteadyPeriod  = "30s"

	defaultEndpoint = "https://api.bybit.com"
	defaultCategory = "spot"
	defaultSymbol   = "BTCUSDT"
	defaultSource   = "Bybit"
	defaultSchedule = "@hourly"
	defaultCacheTTL = "1m"

	defaultGasBudget = 50_000_000
)

func withDefaults(cfg *core.Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.Chain.GasBudget <= 0 {
		cfg.Chain.GasBudget = defaultGasBudget
	}

	for symbol, coin := range cfg.Chain.Coins {
		if coin.Decimals <= 0 {
			coin.Decimals = core.TokenDecimals
			cfg.Chain.Coins[symbol] = coin
		}
	}

	sync := &cfg.Sync
	setDefault(&sync.BalancePeriod, defaultBalancePeriod)
	setDefault(&sync.PoolInitialPeriod, defaultPoolInitialPeriod)
	setDefault(&sync.PoolSteadyPeriod, defaultPoolSteadyPeriod)

	ph := &cfg.PriceHistory
	setDefault(&ph.Endpoint, defaultEndpoint)
	setDefault(&ph.Category, defaultCategory)
	setDefault(&ph.Symbol, defaultSymbol)
	setDefault(&ph.Source, defaultSource)
	setDefault(&ph.Schedule, defaultSchedule)
	setDefault(&ph.CacheTTL, defaultCacheTTL)
	ph.Symbol = strings.ToUpper(ph.Symbol)

	risk := &cfg.Risk
	if risk.MintRatio <= 0 {
		risk.MintRatio = 150
	}

	if risk.LiquidationRatio <= 0 {
		risk.LiquidationRatio = 120
	}

	if risk.LeverageStep <= 0 {
		risk.LeverageStep = 5
	}

	if risk.MaxLeverage <= 0 {
		risk.MaxLeverage = 10
	}

	if risk.SafeRatio <= 0 {
		risk.SafeRatio = 180
	}

	if risk.HealthyRatio <= 0 {
		risk.HealthyRatio = 150
	}

	if risk.CautionRatio <= 0 {
		risk.CautionRatio = 130
	}
}

func setDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
