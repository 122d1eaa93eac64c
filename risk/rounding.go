package risk

import "github.com/shopspring/decimal"

// LotIncrement is the broker-standard minimum lot and contract step.
var LotIncrement = decimal.RequireFromString("0.01")

// FloorToIncrement rounds v down to a multiple of inc. Used for lots and
// contracts. A non-positive inc falls back to LotIncrement.
func FloorToIncrement(v, inc decimal.Decimal) decimal.Decimal {
	if !inc.IsPositive() {
		inc = LotIncrement
	}
	return v.Div(inc).Floor().Mul(inc)
}

// FloorToWholeUnits rounds v down to a whole number. Used for shares, which
// are never fractional.
func FloorToWholeUnits(v decimal.Decimal) decimal.Decimal {
	return v.Floor()
}
