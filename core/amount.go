package core

import (
	"math/big"

	"synthpool/pkg/number"

	"github.com/shopspring/decimal"
)

const (
	// TokenDecimals decimals of coin balances and position amounts
	TokenDecimals int32 = 9
	// PriceDecimals decimals of oracle prices
	PriceDecimals int32 = 4
	// LeverageDecimals decimals of leverage multipliers
	LeverageDecimals int32 = 4
	// RateDecimals decimals of lending pool interest rates
	RateDecimals int32 = 2
)

// Amount on-chain fixed-point value, raw is always paired with its decimals
type Amount struct {
	Raw      *big.Int
	Decimals int32
}

// NewAmount new amount from raw value
func NewAmount(raw *big.Int, decimals int32) Amount {
	return Amount{Raw: raw, Decimals: decimals}
}

// AmountFromDecimal scale display value down to raw, truncating
func AmountFromDecimal(d decimal.Decimal, decimals int32) (Amount, error) {
	raw, err := number.ToRaw(d, decimals)
	if err != nil {
		return Amount{}, err
	}

	return NewAmount(raw, decimals), nil
}

// Decimal display value, zero for an unset amount
func (a Amount) Decimal() decimal.Decimal {
	if a.Raw == nil {
		return decimal.Zero
	}

	return number.DisplayOrZero(a.Raw, a.Decimals)
}

// IsZero true if the amount is unset or zero
func (a Amount) IsZero() bool {
	return a.Raw == nil || a.Raw.Sign() == 0
}

func (a Amount) String() string {
	return a.Decimal().String()
}

// MarshalJSON render display value
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.Decimal().MarshalJSON()
}
