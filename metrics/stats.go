package metrics

import (
	"math"
	"sort"

	"github.com/rustyeddy/tradelog/journal"
)

// ProfitFactorCap stands in for an infinite profit factor (profit with no
// losses) so the value stays numeric and sortable.
const ProfitFactorCap = 999

// DefaultInitialCapital is the starting balance of an equity curve when none
// is configured.
const DefaultInitialCapital = 10000

// WinRate is the percentage of completed trades that are wins. Trades without
// a result are ignored.
func WinRate(trades []journal.Trade) float64 {
	var done, wins int
	for _, t := range trades {
		if !t.Completed() {
			continue
		}
		done++
		if t.Result == journal.Win {
			wins++
		}
	}
	if done == 0 {
		return 0
	}
	return float64(wins) / float64(done) * 100
}

// AverageRiskReward is the mean planned R:R over completed trades.
func AverageRiskReward(trades []journal.Trade) float64 {
	var n int
	var sum float64
	for _, t := range trades {
		if !t.Completed() {
			continue
		}
		n++
		sum += t.RiskToReward
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ProfitFactor is gross profit over gross loss, measured in price distance
// from entry to actual exit. Only trades with a result and an actual exit
// count.
func ProfitFactor(trades []journal.Trade) float64 {
	var grossProfit, grossLoss float64
	for _, t := range trades {
		if !t.Closed() {
			continue
		}
		move := math.Abs(*t.ActualExit - t.EntryPrice)
		switch t.Result {
		case journal.Win:
			grossProfit += move
		case journal.Loss:
			grossLoss += move
		}
	}

	if grossLoss == 0 {
		if grossProfit > 0 {
			return ProfitFactorCap
		}
		return 0
	}
	return grossProfit / grossLoss
}

type GroupStats struct {
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// PerformanceBy computes a win rate per distinct key over completed trades.
func PerformanceBy(trades []journal.Trade, key func(journal.Trade) string) map[string]GroupStats {
	out := map[string]GroupStats{}
	for _, t := range trades {
		if !t.Completed() {
			continue
		}
		k := key(t)
		g := out[k]
		g.Trades++
		if t.Result == journal.Win {
			g.Wins++
		}
		out[k] = g
	}
	for k, g := range out {
		g.WinRate = float64(g.Wins) / float64(g.Trades) * 100
		out[k] = g
	}
	return out
}

func ByPair(trades []journal.Trade) map[string]GroupStats {
	return PerformanceBy(trades, func(t journal.Trade) string { return t.Symbol })
}

func BySession(trades []journal.Trade) map[string]GroupStats {
	return PerformanceBy(trades, func(t journal.Trade) string { return t.Session })
}

// EquityCurve replays closed trades in creation order starting from
// initialCapital. Each point adds the raw price move actualExit - entry.
func EquityCurve(trades []journal.Trade, initialCapital float64) []journal.EquitySnapshot {
	sorted := make([]journal.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	balance := initialCapital
	var points []journal.EquitySnapshot
	for _, t := range sorted {
		if !t.Closed() {
			continue
		}
		balance += *t.ActualExit - t.EntryPrice
		points = append(points, journal.EquitySnapshot{
			Time:    t.CreatedAt,
			TradeID: t.ID,
			Balance: balance,
		})
	}
	return points
}
