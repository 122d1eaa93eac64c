package journal

import (
	"math"

	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

// ComputeTradePnl returns the realized P&L a trade contributes to its
// account balance. Every flow that applies or reverts a trade's balance
// contribution goes through this function.
//
// A stored PnL wins. Otherwise an actual exit is prorated against the stop
// distance: exiting at the stop loses exactly the risk amount, exiting past it
// loses more. Without an exit the result gives Win = risk * R:R,
// Loss = -risk and anything else 0.
func ComputeTradePnl(t Trade) float64 {
	if t.PnL != nil && finite(*t.PnL) {
		return *t.PnL
	}

	risk := t.Risk()
	stopDistance := math.Abs(t.EntryPrice - t.StopLoss)

	if t.ActualExit != nil && finite(*t.ActualExit) && stopDistance != 0 {
		exitDistance := *t.ActualExit - t.EntryPrice
		if t.Direction == market.Sell {
			exitDistance = t.EntryPrice - *t.ActualExit
		}
		pnl := sign(exitDistance) * (math.Abs(exitDistance) / stopDistance) * risk
		return round2(pnl)
	}

	switch t.Result {
	case Win:
		return round2(risk * t.RiskToReward)
	case Loss:
		return round2(-risk)
	}
	return 0
}

// ApplyPnl adds pnl to balance. RevertPnl(ApplyPnl(b, p), p) == b.
// Non-finite operands leave the balance untouched.
func ApplyPnl(balance, pnl float64) float64 {
	if !finite(balance) || !finite(pnl) {
		return balance
	}
	return decimal.NewFromFloat(balance).Add(decimal.NewFromFloat(pnl)).InexactFloat64()
}

func RevertPnl(balance, pnl float64) float64 {
	if !finite(balance) || !finite(pnl) {
		return balance
	}
	return decimal.NewFromFloat(balance).Sub(decimal.NewFromFloat(pnl)).InexactFloat64()
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// round2 maps NaN and ±Inf to 0.
func round2(x float64) float64 {
	if !finite(x) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
