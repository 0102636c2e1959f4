package risk

import (
	"fmt"

	"synthpool/core"

	"github.com/shopspring/decimal"
)

var (
	// MintRatio collateral ratio required to open a mint position, percentage
	MintRatio = decimal.NewFromInt(150)
	// LiquidationRatio hard liquidation floor, percentage
	LiquidationRatio = decimal.NewFromInt(120)
	// LeverageStep extra minimum ratio per whole multiple of leverage
	LeverageStep = decimal.NewFromInt(5)

	// SafeThreshold ratio >= 180 is safe
	SafeThreshold = decimal.NewFromInt(180)
	// HealthyThreshold ratio >= 150 is healthy
	HealthyThreshold = decimal.NewFromInt(150)
	// CautionThreshold ratio >= 130 is caution, below is at risk
	CautionThreshold = decimal.NewFromInt(130)

	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ErrZeroPrice division by a missing or zero price
var ErrZeroPrice = fmt.Errorf("%w: zero price", core.ErrStaleData)

// DefaultParams built-in risk parameters
func DefaultParams() core.RiskParams {
	return core.RiskParams{
		MintRatio:        MintRatio,
		LiquidationRatio: LiquidationRatio,
		LeverageStep:     LeverageStep,
		MaxLeverage:      decimal.NewFromInt(10),
		Thresholds:       DefaultThresholds(),
	}
}

// CollateralValue amount * price
func CollateralValue(amount, price decimal.Decimal) decimal.Decimal {
	return amount.Mul(price)
}

// CollateralValueUsd usd value of a collateral amount
//
// pegged assets (USDC) ignore price and count 1:1
func CollateralValueUsd(asset core.CollateralAsset, amount, price decimal.Decimal) decimal.Decimal {
	if asset.Pegged() {
		return amount
	}

	return CollateralValue(amount, price)
}

// CollateralRatio collateral / debt * 100
//
// bounded is false when debt is zero, such a position is maximally healthy
func CollateralRatio(collateralUsd, debtUsd decimal.Decimal) (ratio decimal.Decimal, bounded bool) {
	if !debtUsd.IsPositive() {
		return decimal.Zero, false
	}

	return collateralUsd.Mul(hundred).Div(debtUsd), true
}

// DefaultThresholds 180 / 150 / 130
func DefaultThresholds() core.BandThresholds {
	return core.BandThresholds{
		Safe:    SafeThreshold,
		Healthy: HealthyThreshold,
		Caution: CautionThreshold,
	}
}

// Band classify a collateral ratio against the default thresholds
func Band(ratio decimal.Decimal, bounded bool, minRatio decimal.Decimal) core.HealthBand {
	return BandWith(ratio, bounded, minRatio, DefaultThresholds())
}

// BandWith classify a collateral ratio
//
// a ratio under minRatio is at risk even when the thresholds would rate it higher
func BandWith(ratio decimal.Decimal, bounded bool, minRatio decimal.Decimal, t core.BandThresholds) core.HealthBand {
	if !bounded {
		return core.HealthSafe
	}

	if ratio.LessThan(minRatio) {
		return core.HealthAtRisk
	}

	switch {
	case ratio.GreaterThanOrEqual(t.Safe):
		return core.HealthSafe
	case ratio.GreaterThanOrEqual(t.Healthy):
		return core.HealthHealthy
	case ratio.GreaterThanOrEqual(t.Caution):
		return core.HealthCaution
	default:
		return core.HealthAtRisk
	}
}

// State open while debt is outstanding
func State(debt decimal.Decimal) core.PositionState {
	if debt.IsPositive() {
		return core.PositionOpen
	}

	return core.PositionClosed
}
