// Package metrics derives statistics from journal trades. Every function is
// pure and returns 0 (or the profit factor sentinel) instead of NaN or Inf.
package metrics

import "github.com/rustyeddy/tradelog/market"

// RiskReward returns the planned reward:risk ratio. A zero risk distance
// yields 0.
func RiskReward(dir market.Direction, entry, stopLoss, takeProfit float64) float64 {
	reward := takeProfit - entry
	risk := entry - stopLoss
	if dir == market.Sell {
		reward = entry - takeProfit
		risk = stopLoss - entry
	}
	if risk == 0 {
		return 0
	}
	return reward / risk
}

// EffectiveRiskReward is RiskReward measured against the actual exit when
// there is one.
func EffectiveRiskReward(dir market.Direction, entry, stopLoss, takeProfit float64, actualExit *float64) float64 {
	if actualExit != nil {
		takeProfit = *actualExit
	}
	return RiskReward(dir, entry, stopLoss, takeProfit)
}
