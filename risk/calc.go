package risk

// EURUSD in a USD account → quote == account, exchangeRate unused.
// USDJPY in a USD account → pip value is in JPY, exchangeRate = USDJPY.

import (
	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

func d(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x)
}

// StopDistance is |entry - stop| in price units.
func StopDistance(entry, stop float64) decimal.Decimal {
	return d(entry).Sub(d(stop)).Abs()
}

// PipValuePerLot returns the value of one pip on one standard lot, in the
// account currency.
func PipValuePerLot(specs market.FXSpecs, accountCurrency string, exchangeRate float64) decimal.Decimal {
	v := d(specs.LotSize).Mul(d(specs.PipSize))
	if specs.QuoteCurrency == accountCurrency {
		return v
	}
	if exchangeRate <= 0 {
		exchangeRate = 1
	}
	return v.Div(d(exchangeRate))
}

// SizeFX returns lots, floored to 0.01. For a foreign quote currency the risk
// amount is multiplied into the quote currency rather than dividing the pip
// value, so an exact quotient never lands one increment low.
func SizeFX(stopDistance, riskAmount decimal.Decimal, specs market.FXSpecs, accountCurrency string, exchangeRate float64) decimal.Decimal {
	if specs.PipSize <= 0 {
		return decimal.Zero
	}
	stopPips := stopDistance.Div(d(specs.PipSize))
	riskPerLot := stopPips.Mul(d(specs.LotSize).Mul(d(specs.PipSize)))
	if !riskPerLot.IsPositive() {
		return decimal.Zero
	}
	if specs.QuoteCurrency != accountCurrency {
		if exchangeRate <= 0 {
			exchangeRate = 1
		}
		riskAmount = riskAmount.Mul(d(exchangeRate))
	}
	return FloorToIncrement(riskAmount.Div(riskPerLot), LotIncrement)
}

// SizeGold returns contracts, floored to 0.01.
func SizeGold(stopDistance, riskAmount decimal.Decimal, specs market.GoldSpecs) decimal.Decimal {
	return sizeByTicks(stopDistance, riskAmount, specs.TickSize, specs.TickValue, LotIncrement)
}

// SizeCommodity returns contracts, floored to the instrument's minimum
// contract size.
func SizeCommodity(stopDistance, riskAmount decimal.Decimal, specs market.CommoditySpecs) decimal.Decimal {
	return sizeByTicks(stopDistance, riskAmount, specs.TickSize, specs.TickValue, d(specs.Increment()))
}

// SizeStock returns whole shares. Risk per share is the stop distance itself.
func SizeStock(stopDistance, riskAmount decimal.Decimal) decimal.Decimal {
	if !stopDistance.IsPositive() {
		return decimal.Zero
	}
	return FloorToWholeUnits(riskAmount.Div(stopDistance))
}

func sizeByTicks(stopDistance, riskAmount decimal.Decimal, tickSize, tickValue float64, inc decimal.Decimal) decimal.Decimal {
	if tickSize <= 0 {
		return decimal.Zero
	}
	ticks := stopDistance.Div(d(tickSize))
	riskPerContract := ticks.Mul(d(tickValue))
	if !riskPerContract.IsPositive() {
		return decimal.Zero
	}
	return FloorToIncrement(riskAmount.Div(riskPerContract), inc)
}
