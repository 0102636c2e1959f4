package number

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount amount is negative or not an integer
var ErrInvalidAmount = errors.New("invalid amount")

// ToDisplay convert raw fixed-point integer to decimal
//
// display = raw / 10^decimals, exact for any raw width
func ToDisplay(raw *big.Int, decimals int32) (decimal.Decimal, error) {
	if raw == nil || raw.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: raw %v", ErrInvalidAmount, raw)
	}

	if decimals < 0 {
		return decimal.Zero, fmt.Errorf("%w: decimals %d", ErrInvalidAmount, decimals)
	}

	return decimal.NewFromBigInt(raw, -decimals), nil
}

// ToRaw convert decimal to raw fixed-point integer, truncating toward zero
func ToRaw(display decimal.Decimal, decimals int32) (*big.Int, error) {
	if display.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, display)
	}

	if decimals < 0 {
		return nil, fmt.Errorf("%w: decimals %d", ErrInvalidAmount, decimals)
	}

	return display.Shift(decimals).Truncate(0).BigInt(), nil
}

// ParseRaw parse a non-negative base-10 integer string
func ParseRaw(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	raw, ok := new(big.Int).SetString(s, 10)
	if !ok || raw.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return raw, nil
}

// DisplayOrZero like ToDisplay, but returns zero on invalid input
func DisplayOrZero(raw *big.Int, decimals int32) decimal.Decimal {
	d, err := ToDisplay(raw, decimals)
	if err != nil {
		return decimal.Zero
	}

	return d
}
