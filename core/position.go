package core

import (
	"github.com/shopspring/decimal"
)

// HealthBand risk band of a position
type HealthBand string

const (
	// HealthSafe ratio >= 180%
	HealthSafe HealthBand = "safe"
	// HealthHealthy ratio >= 150%
	HealthHealthy HealthBand = "healthy"
	// HealthCaution ratio >= 130%
	HealthCaution HealthBand = "caution"
	// HealthAtRisk below 130% or below the position minimum
	HealthAtRisk HealthBand = "at_risk"
)

// PositionState observed lifecycle state
type PositionState string

const (
	// PositionOpen has debt outstanding
	PositionOpen PositionState = "open"
	// PositionClosed debt fully repaid
	PositionClosed PositionState = "closed"
)

// MintPosition synthetic debt minted against collateral
type MintPosition struct {
	Owner            string          `json:"owner"`
	CollateralType   CollateralAsset `json:"collateral_type"`
	CollateralAmount Amount          `json:"collateral_amount"`
	DebtAmount       Amount          `json:"debt_amount"`
	// percentage, e.g. 150
	MinCollateralRatio decimal.Decimal `json:"min_collateral_ratio"`
}

// BorrowPosition leveraged borrow position
type BorrowPosition struct {
	Owner                string          `json:"owner"`
	CollateralType       CollateralAsset `json:"collateral_type"`
	CollateralAmount     Amount          `json:"collateral_amount"`
	BorrowedAmount       Amount          `json:"borrowed_amount"`
	Leverage             Amount          `json:"leverage"`
	EntryBtcPrice        Amount          `json:"entry_btc_price"`
	EntryCollateralPrice Amount          `json:"entry_collateral_price"`
}

// SupplyPosition lending pool deposit
type SupplyPosition struct {
	Owner           string `json:"owner"`
	SuppliedAmount  Amount `json:"supplied_amount"`
	AccruedInterest Amount `json:"accrued_interest"`
}

// Pnl profit and loss of a long position
type Pnl struct {
	Absolute   decimal.Decimal `json:"absolute"`
	Percentage decimal.Decimal `json:"percentage"`
}

// PositionMetrics derived figures, recomputed from every snapshot
type PositionMetrics struct {
	State              PositionState   `json:"state"`
	CollateralValueUsd decimal.Decimal `json:"collateral_value_usd"`
	DebtValueUsd       decimal.Decimal `json:"debt_value_usd"`
	// null when debt is zero (unbounded)
	CollateralRatioPct    decimal.NullDecimal `json:"collateral_ratio_pct"`
	HealthBand            HealthBand          `json:"health_band"`
	MinCollateralRatioPct decimal.Decimal     `json:"min_collateral_ratio_pct"`
	// price of the minted or borrowed asset that triggers liquidation
	LiquidationPrice         decimal.Decimal     `json:"liquidation_price"`
	DistanceToLiquidationPct decimal.NullDecimal `json:"distance_to_liquidation_pct"`
	// price of a non-pegged collateral that triggers liquidation
	CollateralLiquidationPrice decimal.NullDecimal `json:"collateral_liquidation_price"`
	// collateral needed to keep the current debt at the mint ratio
	RequiredCollateral decimal.Decimal `json:"required_collateral"`
	// extra amount still mintable against the posted collateral
	MaxMintable decimal.Decimal `json:"max_mintable"`
	Pnl         *Pnl            `json:"pnl,omitempty"`
}

// SupplyView supply position with usd value
type SupplyView struct {
	SuppliedUsd decimal.Decimal `json:"supplied_usd"`
	InterestUsd decimal.Decimal `json:"interest_usd"`
	SupplyRate  decimal.Decimal `json:"supply_rate"`
}

// MintQuoteRequest user input of the mint panel
type MintQuoteRequest struct {
	CollateralType   CollateralAsset `json:"collateral_type"`
	CollateralAmount decimal.Decimal `json:"collateral_amount"`
	MintAmount       decimal.Decimal `json:"mint_amount"`
	// wallet balance of the collateral coin, caps max mintable
	WalletBalance decimal.NullDecimal `json:"wallet_balance"`
}

// MintQuote mint panel figures
type MintQuote struct {
	RequiredCollateral decimal.Decimal     `json:"required_collateral"`
	Sufficient         bool                `json:"sufficient"`
	CollateralValueUsd decimal.Decimal     `json:"collateral_value_usd"`
	DebtValueUsd       decimal.Decimal     `json:"debt_value_usd"`
	CollateralRatioPct decimal.NullDecimal `json:"collateral_ratio_pct"`
	HealthBand         HealthBand          `json:"health_band"`
	LiquidationPrice   decimal.Decimal     `json:"liquidation_price"`
	MaxMintable        decimal.Decimal     `json:"max_mintable"`
}

// BorrowQuoteRequest user input of the borrow panel
type BorrowQuoteRequest struct {
	CollateralType   CollateralAsset `json:"collateral_type"`
	CollateralAmount decimal.Decimal `json:"collateral_amount"`
	Leverage         decimal.Decimal `json:"leverage"`
}

// BorrowQuote borrow panel figures
type BorrowQuote struct {
	CollateralValueUsd    decimal.Decimal     `json:"collateral_value_usd"`
	PositionSizeUsd       decimal.Decimal     `json:"position_size_usd"`
	BorrowedAmount        decimal.Decimal     `json:"borrowed_amount"`
	LoanValueUsd          decimal.Decimal     `json:"loan_value_usd"`
	MinCollateralRatioPct decimal.Decimal     `json:"min_collateral_ratio_pct"`
	CollateralRatioPct    decimal.NullDecimal `json:"collateral_ratio_pct"`
	HealthBand            HealthBand          `json:"health_band"`
	LiquidationPrice      decimal.Decimal     `json:"liquidation_price"`
}

// IPositionService position valuation
type IPositionService interface {
	MintMetrics(pool *PoolSnapshot, position *MintPosition) (*PositionMetrics, error)
	BorrowMetrics(pool *PoolSnapshot, position *BorrowPosition) (*PositionMetrics, error)
	SupplyView(pool *PoolSnapshot, position *SupplyPosition) (*SupplyView, error)
	QuoteMint(pool *PoolSnapshot, req *MintQuoteRequest) (*MintQuote, error)
	QuoteBorrow(pool *PoolSnapshot, req *BorrowQuoteRequest) (*BorrowQuote, error)
}
