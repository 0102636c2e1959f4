package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// SymbolUSDC usdc
	SymbolUSDC = "USDC"
	// SymbolSUI sui
	SymbolSUI = "SUI"
	// SymbolBTC synthetic btc, the mintable and borrowable asset
	SymbolBTC = "BTC"
)

// CollateralAsset closed set of accepted collaterals
type CollateralAsset int

const (
	_ CollateralAsset = iota
	// CollateralUSDC usd denominated, price fixed at 1
	CollateralUSDC
	// CollateralSUI priced with the SUI/USD oracle
	CollateralSUI
)

// ParseCollateralAsset parse symbol, case insensitive
func ParseCollateralAsset(symbol string) (CollateralAsset, error) {
	switch strings.ToUpper(strings.TrimSpace(symbol)) {
	case SymbolUSDC:
		return CollateralUSDC, nil
	case SymbolSUI:
		return CollateralSUI, nil
	}

	return 0, fmt.Errorf("%w: unknown collateral %q", ErrInvalidInput, symbol)
}

func (a CollateralAsset) String() string {
	switch a {
	case CollateralUSDC:
		return SymbolUSDC
	case CollateralSUI:
		return SymbolSUI
	}

	return "UNKNOWN"
}

// Valid true for a known collateral
func (a CollateralAsset) Valid() bool {
	return a == CollateralUSDC || a == CollateralSUI
}

// Decimals on-chain decimals of the collateral coin
func (a CollateralAsset) Decimals() int32 {
	return TokenDecimals
}

// Pegged true if the asset is already usd denominated
func (a CollateralAsset) Pegged() bool {
	return a == CollateralUSDC
}

// PriceSymbol oracle key, empty for pegged assets
func (a CollateralAsset) PriceSymbol() string {
	if a.Pegged() {
		return ""
	}

	return a.String()
}

// MarshalJSON render as symbol
func (a CollateralAsset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON parse from symbol
func (a *CollateralAsset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	v, err := ParseCollateralAsset(s)
	if err != nil {
		return err
	}

	*a = v
	return nil
}
