package risk

import (
	"synthpool/core"

	"github.com/shopspring/decimal"
)

// Pnl profit and loss of a long position of size units
//
// absolute = (current - entry) * size
// percentage = absolute / (entry * size) * 100
func Pnl(entryPrice, currentPrice, size decimal.Decimal) core.Pnl {
	absolute := currentPrice.Sub(entryPrice).Mul(size)

	notional := entryPrice.Mul(size)
	if !notional.IsPositive() {
		return core.Pnl{Absolute: absolute, Percentage: decimal.Zero}
	}

	return core.Pnl{
		Absolute:   absolute,
		Percentage: absolute.Mul(hundred).Div(notional),
	}
}
