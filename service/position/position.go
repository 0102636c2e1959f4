package position

import (
	"fmt"

	"synthpool/core"
	"synthpool/internal/risk"
	"synthpool/pkg/number"

	"github.com/shopspring/decimal"
)

// New new position service
func New(params core.RiskParams) core.IPositionService {
	if !params.Thresholds.Safe.IsPositive() {
		params.Thresholds = risk.DefaultThresholds()
	}

	return &positionService{params: params}
}

type positionService struct {
	params core.RiskParams
}

func stale(what string) error {
	return fmt.Errorf("%w: %s", core.ErrStaleData, what)
}

func nullable(d decimal.Decimal, valid bool) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: valid}
}

// prices btc price and collateral price, stale if either is missing
func prices(pool *core.PoolSnapshot, asset core.CollateralAsset) (btc, collateral decimal.Decimal, err error) {
	if pool == nil {
		return btc, collateral, stale("pool not loaded")
	}

	if !asset.Valid() {
		return btc, collateral, fmt.Errorf("%w: unknown collateral", core.ErrInvalidInput)
	}

	btc, ok := pool.Price(core.SymbolBTC)
	if !ok {
		return btc, collateral, stale("BTC price")
	}

	collateral, ok = pool.CollateralPrice(asset)
	if !ok {
		return btc, collateral, stale(asset.String() + " price")
	}

	return btc, collateral, nil
}

// liquidationRatio the position minimum, the protocol floor when the position has none
func (s *positionService) liquidationRatio(positionMin decimal.Decimal) decimal.Decimal {
	if positionMin.IsPositive() {
		return positionMin
	}

	return s.params.LiquidationRatio
}

func (s *positionService) MintMetrics(pool *core.PoolSnapshot, p *core.MintPosition) (*core.PositionMetrics, error) {
	btc, colPrice, err := prices(pool, p.CollateralType)
	if err != nil {
		return nil, err
	}

	collateral := p.CollateralAmount.Decimal()
	debt := p.DebtAmount.Decimal()
	collateralUsd := risk.CollateralValueUsd(p.CollateralType, collateral, colPrice)
	debtUsd := debt.Mul(btc)
	minRatio := s.liquidationRatio(p.MinCollateralRatio)

	ratio, bounded := risk.CollateralRatio(collateralUsd, debtUsd)
	liq := risk.LiquidationPrice(collateralUsd, debt, minRatio)
	distance, hasDistance := risk.DistanceToLiquidation(btc, liq)

	required, err := risk.RequiredCollateral(debt, btc, s.params.MintRatio, colPrice)
	if err != nil {
		return nil, err
	}

	mintable, err := risk.MaxMintable(collateralUsd, s.params.MintRatio, btc)
	if err != nil {
		return nil, err
	}

	headroom := mintable.Sub(debt)
	if headroom.IsNegative() {
		headroom = decimal.Zero
	}

	m := &core.PositionMetrics{
		State:                    risk.State(debt),
		CollateralValueUsd:       collateralUsd,
		DebtValueUsd:             debtUsd,
		CollateralRatioPct:       nullable(ratio, bounded),
		HealthBand:               risk.BandWith(ratio, bounded, minRatio, s.params.Thresholds),
		MinCollateralRatioPct:    minRatio,
		LiquidationPrice:         liq,
		DistanceToLiquidationPct: nullable(distance, hasDistance),
		RequiredCollateral:       number.Ceil(required, p.CollateralType.Decimals()),
		MaxMintable:              headroom,
	}

	if !p.CollateralType.Pegged() && debt.IsPositive() {
		m.CollateralLiquidationPrice = nullable(risk.CollateralLiquidationPrice(collateral, debtUsd, minRatio), true)
	}

	return m, nil
}

func (s *positionService) BorrowMetrics(pool *core.PoolSnapshot, p *core.BorrowPosition) (*core.PositionMetrics, error) {
	btc, colPrice, err := prices(pool, p.CollateralType)
	if err != nil {
		return nil, err
	}

	collateral := p.CollateralAmount.Decimal()
	borrowed := p.BorrowedAmount.Decimal()
	entryBtc := p.EntryBtcPrice.Decimal()
	entryCol := p.EntryCollateralPrice.Decimal()
	if p.CollateralType.Pegged() || !entryCol.IsPositive() {
		entryCol = colPrice
	}

	collateralUsd := risk.CollateralValueUsd(p.CollateralType, collateral, colPrice)
	loan := risk.LeveragedLoan(borrowed, entryBtc, collateral, entryCol)
	backing := risk.LeveragedBacking(collateralUsd, borrowed, btc)
	minRatio := risk.EffectiveMinRatioWithStep(s.params.LiquidationRatio, p.Leverage.Decimal(), s.params.LeverageStep)

	ratio, bounded := risk.CollateralRatio(backing, loan)
	liq := risk.LeveragedLiquidationPrice(collateralUsd, borrowed, loan, minRatio)
	distance, hasDistance := risk.DistanceToLiquidation(btc, liq)
	pnl := risk.Pnl(entryBtc, btc, borrowed)

	return &core.PositionMetrics{
		State:                    risk.State(borrowed),
		CollateralValueUsd:       collateralUsd,
		DebtValueUsd:             loan,
		CollateralRatioPct:       nullable(ratio, bounded),
		HealthBand:               risk.BandWith(ratio, bounded, minRatio, s.params.Thresholds),
		MinCollateralRatioPct:    minRatio,
		LiquidationPrice:         liq,
		DistanceToLiquidationPct: nullable(distance, hasDistance),
		Pnl:                      &pnl,
	}, nil
}

func (s *positionService) SupplyView(pool *core.PoolSnapshot, p *core.SupplyPosition) (*core.SupplyView, error) {
	if pool == nil || pool.LendingPool == nil {
		return nil, stale("lending pool not loaded")
	}

	// the pool lends usdc, valued 1:1
	return &core.SupplyView{
		SuppliedUsd: p.SuppliedAmount.Decimal(),
		InterestUsd: p.AccruedInterest.Decimal(),
		SupplyRate:  pool.LendingPool.SupplyRate.Decimal(),
	}, nil
}

func (s *positionService) QuoteMint(pool *core.PoolSnapshot, req *core.MintQuoteRequest) (*core.MintQuote, error) {
	if req.CollateralAmount.IsNegative() || req.MintAmount.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount", core.ErrInvalidInput)
	}

	btc, colPrice, err := prices(pool, req.CollateralType)
	if err != nil {
		return nil, err
	}

	required, err := risk.RequiredCollateral(req.MintAmount, btc, s.params.MintRatio, colPrice)
	if err != nil {
		return nil, err
	}

	required = number.Ceil(required, req.CollateralType.Decimals())

	collateralUsd := risk.CollateralValueUsd(req.CollateralType, req.CollateralAmount, colPrice)
	debtUsd := req.MintAmount.Mul(btc)
	ratio, bounded := risk.CollateralRatio(collateralUsd, debtUsd)

	available := req.CollateralAmount
	if req.WalletBalance.Valid && req.WalletBalance.Decimal.LessThan(available) {
		available = req.WalletBalance.Decimal
	}

	mintable, err := risk.MaxMintable(risk.CollateralValueUsd(req.CollateralType, available, colPrice), s.params.MintRatio, btc)
	if err != nil {
		return nil, err
	}

	return &core.MintQuote{
		RequiredCollateral: required,
		Sufficient:         req.CollateralAmount.GreaterThanOrEqual(required),
		CollateralValueUsd: collateralUsd,
		DebtValueUsd:       debtUsd,
		CollateralRatioPct: nullable(ratio, bounded),
		HealthBand:         risk.BandWith(ratio, bounded, s.params.LiquidationRatio, s.params.Thresholds),
		LiquidationPrice:   risk.LiquidationPrice(collateralUsd, req.MintAmount, s.params.LiquidationRatio),
		MaxMintable:        mintable,
	}, nil
}

func (s *positionService) QuoteBorrow(pool *core.PoolSnapshot, req *core.BorrowQuoteRequest) (*core.BorrowQuote, error) {
	if req.CollateralAmount.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount", core.ErrInvalidInput)
	}

	if !risk.ValidLeverage(req.Leverage, s.params.MaxLeverage) {
		return nil, fmt.Errorf("%w: leverage %s out of range", core.ErrInvalidInput, req.Leverage)
	}

	btc, colPrice, err := prices(pool, req.CollateralType)
	if err != nil {
		return nil, err
	}

	collateralUsd := risk.CollateralValueUsd(req.CollateralType, req.CollateralAmount, colPrice)
	size := risk.PositionSize(collateralUsd, req.Leverage)

	borrowed, err := risk.BorrowedAmount(size, btc)
	if err != nil {
		return nil, err
	}

	borrowed = number.Floor(borrowed, core.TokenDecimals)

	loan := risk.LeveragedLoan(borrowed, btc, req.CollateralAmount, colPrice)
	backing := risk.LeveragedBacking(collateralUsd, borrowed, btc)
	minRatio := risk.EffectiveMinRatioWithStep(s.params.LiquidationRatio, req.Leverage, s.params.LeverageStep)
	ratio, bounded := risk.CollateralRatio(backing, loan)

	return &core.BorrowQuote{
		CollateralValueUsd:    collateralUsd,
		PositionSizeUsd:       size,
		BorrowedAmount:        borrowed,
		LoanValueUsd:          loan,
		MinCollateralRatioPct: minRatio,
		CollateralRatioPct:    nullable(ratio, bounded),
		HealthBand:            risk.BandWith(ratio, bounded, minRatio, s.params.Thresholds),
		LiquidationPrice:      risk.LeveragedLiquidationPrice(collateralUsd, borrowed, loan, minRatio),
	}, nil
}
