package risk

import (
	"github.com/shopspring/decimal"
)

// EffectiveMinRatio leverage adjusted liquidation threshold
//
// base + 5 * floor(leverage)
func EffectiveMinRatio(baseRatioPct, leverage decimal.Decimal) decimal.Decimal {
	return EffectiveMinRatioWithStep(baseRatioPct, leverage, LeverageStep)
}

// EffectiveMinRatioWithStep base + step * floor(leverage)
func EffectiveMinRatioWithStep(baseRatioPct, leverage, step decimal.Decimal) decimal.Decimal {
	if leverage.IsNegative() {
		leverage = decimal.Zero
	}

	return baseRatioPct.Add(step.Mul(leverage.Floor()))
}

// PositionSize collateral_usd * leverage
func PositionSize(collateralUsd, leverage decimal.Decimal) decimal.Decimal {
	return collateralUsd.Mul(leverage)
}

// BorrowedAmount units of the borrowed asset bought with positionSizeUsd
func BorrowedAmount(positionSizeUsd, assetPrice decimal.Decimal) (decimal.Decimal, error) {
	if !assetPrice.IsPositive() {
		return decimal.Zero, ErrZeroPrice
	}

	return positionSizeUsd.Div(assetPrice), nil
}

// LeveragedLoan usd fronted by the protocol at entry
//
// loan = borrowed * entry_price - collateral * entry_collateral_price, never negative
func LeveragedLoan(borrowedAmount, entryPrice, collateralAmount, entryCollateralPrice decimal.Decimal) decimal.Decimal {
	loan := borrowedAmount.Mul(entryPrice).Sub(collateralAmount.Mul(entryCollateralPrice))
	if loan.IsNegative() {
		return decimal.Zero
	}

	return loan
}

// LeveragedBacking collateral plus the current value of the borrowed asset
func LeveragedBacking(collateralUsd, borrowedAmount, assetPrice decimal.Decimal) decimal.Decimal {
	return collateralUsd.Add(borrowedAmount.Mul(assetPrice))
}

// LeveragedLiquidationPrice asset price at which backing / loan hits minRatioPct
//
// price = (min_ratio / 100 * loan - collateral_usd) / borrowed, zero if unreachable
func LeveragedLiquidationPrice(collateralUsd, borrowedAmount, loanUsd, minRatioPct decimal.Decimal) decimal.Decimal {
	if !borrowedAmount.IsPositive() || !loanUsd.IsPositive() {
		return decimal.Zero
	}

	price := minRatioPct.Mul(loanUsd).Div(hundred).Sub(collateralUsd).Div(borrowedAmount)
	if !price.IsPositive() {
		return decimal.Zero
	}

	return price
}

// ValidLeverage 1 <= leverage <= limit
func ValidLeverage(leverage, limit decimal.Decimal) bool {
	return leverage.GreaterThanOrEqual(one) && leverage.LessThanOrEqual(limit)
}
