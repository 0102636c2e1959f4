package account

import (
	"fmt"

	"synthpool/core"
	"synthpool/service/chain"

	"github.com/spf13/cast"
)

type amountField struct {
	key      string
	decimals int32
	dst      *core.Amount
}

func readAmounts(fields map[string]interface{}, list ...amountField) error {
	for _, f := range list {
		v, err := chain.FieldAmount(fields, f.key, f.decimals)
		if err != nil {
			return err
		}

		*f.dst = v
	}

	return nil
}

// parseCollateral collateral_type is either the symbol or the enum index
func parseCollateral(fields map[string]interface{}) (core.CollateralAsset, error) {
	v, ok := fields["collateral_type"]
	if !ok {
		return 0, fmt.Errorf("field collateral_type missing")
	}

	if n, err := cast.ToIntE(v); err == nil {
		if asset := core.CollateralAsset(n); asset.Valid() {
			return asset, nil
		}

		return 0, fmt.Errorf("%w: collateral index %d", core.ErrInvalidInput, n)
	}

	return core.ParseCollateralAsset(cast.ToString(v))
}

func parseMintPosition(owner string, fields map[string]interface{}) (*core.MintPosition, error) {
	asset, err := parseCollateral(fields)
	if err != nil {
		return nil, err
	}

	p := &core.MintPosition{
		Owner:          owner,
		CollateralType: asset,
	}

	if err := readAmounts(fields,
		amountField{"collateral_amount", asset.Decimals(), &p.CollateralAmount},
		amountField{"debt_amount", core.TokenDecimals, &p.DebtAmount},
	); err != nil {
		return nil, err
	}

	// older positions carry no ratio and fall back to the liquidation ratio
	if _, ok := fields["min_collateral_ratio"]; ok {
		ratio, err := chain.FieldAmount(fields, "min_collateral_ratio", 0)
		if err != nil {
			return nil, err
		}

		p.MinCollateralRatio = ratio.Decimal()
	}

	return p, nil
}

func parseBorrowPosition(owner string, fields map[string]interface{}) (*core.BorrowPosition, error) {
	asset, err := parseCollateral(fields)
	if err != nil {
		return nil, err
	}

	p := &core.BorrowPosition{
		Owner:          owner,
		CollateralType: asset,
	}

	if err := readAmounts(fields,
		amountField{"collateral_amount", asset.Decimals(), &p.CollateralAmount},
		amountField{"borrowed_amount", core.TokenDecimals, &p.BorrowedAmount},
		amountField{"leverage", core.LeverageDecimals, &p.Leverage},
		amountField{"entry_btc_price", core.PriceDecimals, &p.EntryBtcPrice},
		amountField{"entry_collateral_price", core.PriceDecimals, &p.EntryCollateralPrice},
	); err != nil {
		return nil, err
	}

	return p, nil
}

func parseSupplyPosition(owner string, fields map[string]interface{}) (*core.SupplyPosition, error) {
	p := &core.SupplyPosition{Owner: owner}

	if err := readAmounts(fields,
		amountField{"supplied_amount", core.TokenDecimals, &p.SuppliedAmount},
		amountField{"accrued_interest", core.TokenDecimals, &p.AccruedInterest},
	); err != nil {
		return nil, err
	}

	return p, nil
}
