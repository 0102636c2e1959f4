package risk

import (
	"fmt"

	"synthpool/core"

	"github.com/shopspring/decimal"
)

// RequiredCollateral collateral units needed to mint mintAmount at mintRatioPct
//
// required = mint_amount * asset_price * mint_ratio / 100 / collateral_price
func RequiredCollateral(mintAmount, assetPrice, mintRatioPct, collateralPrice decimal.Decimal) (decimal.Decimal, error) {
	if !collateralPrice.IsPositive() {
		return decimal.Zero, ErrZeroPrice
	}

	return mintAmount.Mul(assetPrice).Mul(mintRatioPct).Div(hundred).Div(collateralPrice), nil
}

// LiquidationPrice price of the minted asset at which the ratio hits minRatioPct
//
// price = collateral_usd / (debt_amount * min_ratio / 100), zero when there is no debt
func LiquidationPrice(collateralUsd, debtAmount, minRatioPct decimal.Decimal) decimal.Decimal {
	if !debtAmount.IsPositive() || !minRatioPct.IsPositive() {
		return decimal.Zero
	}

	return collateralUsd.Mul(hundred).Div(debtAmount.Mul(minRatioPct))
}

// CollateralLiquidationPrice price of the collateral at which the ratio hits minRatioPct
//
// price = debt_usd * min_ratio / 100 / collateral_amount
func CollateralLiquidationPrice(collateralAmount, debtUsd, minRatioPct decimal.Decimal) decimal.Decimal {
	if !collateralAmount.IsPositive() {
		return decimal.Zero
	}

	return debtUsd.Mul(minRatioPct).Div(hundred).Div(collateralAmount)
}

// DistanceToLiquidation |liquidation - current| / current * 100
func DistanceToLiquidation(currentPrice, liquidationPrice decimal.Decimal) (decimal.Decimal, bool) {
	if !currentPrice.IsPositive() || !liquidationPrice.IsPositive() {
		return decimal.Zero, false
	}

	return liquidationPrice.Sub(currentPrice).Abs().Mul(hundred).Div(currentPrice), true
}

// MaxMintable largest amount mintable against collateralUsd at mintRatioPct
//
// max = collateral_usd / (mint_ratio / 100) / asset_price, truncated to token decimals
// and never committing more collateral than available
func MaxMintable(collateralUsd, mintRatioPct, assetPrice decimal.Decimal) (decimal.Decimal, error) {
	if !assetPrice.IsPositive() {
		return decimal.Zero, ErrZeroPrice
	}

	if !mintRatioPct.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: mint ratio %s", core.ErrInvalidInput, mintRatioPct)
	}

	if !collateralUsd.IsPositive() {
		return decimal.Zero, nil
	}

	amount := collateralUsd.Mul(hundred).Div(mintRatioPct).Div(assetPrice).Truncate(core.TokenDecimals)

	committed := amount.Mul(assetPrice).Mul(mintRatioPct).Div(hundred)
	if committed.GreaterThan(collateralUsd) {
		amount = amount.Sub(decimal.New(1, -core.TokenDecimals))
	}

	if amount.IsNegative() {
		return decimal.Zero, nil
	}

	return amount, nil
}
