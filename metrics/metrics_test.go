package metrics

import (
	"testing"
	"time"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskReward(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		dir                 market.Direction
		entry, stop, target float64
		want                float64
	}{
		{"buy 2R", market.Buy, 100, 95, 110, 2},
		{"sell 3R", market.Sell, 100, 102, 94, 3},
		{"buy target below entry", market.Buy, 100, 95, 97.5, -0.5},
		{"zero risk", market.Buy, 100, 100, 110, 0},
		{"sell zero risk", market.Sell, 50, 50, 40, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, RiskReward(tt.dir, tt.entry, tt.stop, tt.target), 1e-9)
		})
	}
}

func TestEffectiveRiskReward(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, EffectiveRiskReward(market.Buy, 100, 95, 110, nil), 1e-9)
	assert.InDelta(t, 1.0, EffectiveRiskReward(market.Buy, 100, 95, 110, journal.Float(105)), 1e-9)
	assert.InDelta(t, -1.0, EffectiveRiskReward(market.Sell, 100, 105, 90, journal.Float(105)), 1e-9)
}

func TestConfluenceScore(t *testing.T) {
	t.Parallel()

	weights := map[string]float64{"trend": 30, "level": 30, "session": 20, "news": 20}

	assert.InDelta(t, 60.0, ConfluenceScore(weights, []string{"trend", "level"}), 1e-9)
	assert.InDelta(t, 100.0, ConfluenceScore(weights, []string{"trend", "level", "session", "news"}), 1e-9)
	assert.InDelta(t, 30.0, ConfluenceScore(weights, []string{"trend", "trend", "bogus"}), 1e-9)
	assert.Equal(t, 0.0, ConfluenceScore(weights, nil))
	assert.Equal(t, 0.0, ConfluenceScore(map[string]float64{}, []string{"trend"}))
	assert.Equal(t, 0.0, ConfluenceScore(map[string]float64{"a": 0}, []string{"a"}))
}

func TestChecklistScoreAndCategories(t *testing.T) {
	t.Parallel()

	items := []ChecklistItem{
		{ID: "htf-trend", Weight: 25, Category: "structure"},
		{ID: "key-level", Weight: 25, Category: "structure"},
		{ID: "killzone", Weight: 25, Category: "timing"},
		{ID: "no-news", Weight: 25, Category: "timing"},
	}
	selected := []string{"htf-trend", "key-level", "killzone"}

	assert.InDelta(t, 75.0, ChecklistScore(items, selected), 1e-9)

	cats := CategoryScores(items, selected)
	assert.InDelta(t, 100.0, cats["structure"], 1e-9)
	assert.InDelta(t, 50.0, cats["timing"], 1e-9)
}

func TestAssignGrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  journal.Grade
	}{
		{100, journal.GradeAPlus},
		{95, journal.GradeAPlus},
		{94.99, journal.GradeA},
		{85, journal.GradeA},
		{84.9, journal.GradeB},
		{70, journal.GradeB},
		{69.99, journal.GradeC},
		{50, journal.GradeC},
		{49, journal.GradeD},
		{0, journal.GradeD},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AssignGrade(tt.score), "score %v", tt.score)
	}
}

func day(n int) time.Time {
	return time.Date(2024, 5, n, 9, 0, 0, 0, time.UTC)
}

func fixtureTrades() []journal.Trade {
	return []journal.Trade{
		{ID: "t3", Symbol: "EURUSD", Session: "London", Direction: market.Buy, EntryPrice: 1.10, StopLoss: 1.09, ActualExit: journal.Float(1.12), Result: journal.Win, RiskToReward: 2, RiskAmount: journal.Float(100), CreatedAt: day(3)},
		{ID: "t1", Symbol: "EURUSD", Session: "NY", Direction: market.Buy, EntryPrice: 100, StopLoss: 98, ActualExit: journal.Float(99), Result: journal.Loss, RiskToReward: 1, RiskAmount: journal.Float(50), CreatedAt: day(1)},
		{ID: "t2", Symbol: "XAUUSD", Session: "London", Direction: market.Buy, EntryPrice: 1950, StopLoss: 1945, ActualExit: journal.Float(1953), Result: journal.Win, RiskToReward: 3, CreatedAt: day(2)},
		{ID: "t4", Symbol: "XAUUSD", Session: "NY", EntryPrice: 1960, Result: journal.BreakEven, RiskToReward: 2, CreatedAt: day(4)},
		{ID: "t5", Symbol: "GBPUSD", Session: "Asia", EntryPrice: 1.25, RiskToReward: 5, CreatedAt: day(5)},
	}
}

func TestWinRate(t *testing.T) {
	t.Parallel()

	// 2 wins of 4 completed, open trade excluded
	assert.InDelta(t, 50.0, WinRate(fixtureTrades()), 1e-9)
	assert.Equal(t, 0.0, WinRate(nil))
	assert.Equal(t, 0.0, WinRate([]journal.Trade{{Symbol: "open"}}))
}

func TestAverageRiskReward(t *testing.T) {
	t.Parallel()

	// (2 + 1 + 3 + 2) / 4
	assert.InDelta(t, 2.0, AverageRiskReward(fixtureTrades()), 1e-9)
	assert.Equal(t, 0.0, AverageRiskReward(nil))
}

func TestProfitFactor(t *testing.T) {
	t.Parallel()

	// profit 0.02 + 3, loss 1
	assert.InDelta(t, 3.02, ProfitFactor(fixtureTrades()), 1e-9)

	assert.Equal(t, 0.0, ProfitFactor(nil))
	assert.Equal(t, 0.0, ProfitFactor([]journal.Trade{{Result: journal.Win}}))

	onlyWins := []journal.Trade{{EntryPrice: 10, ActualExit: journal.Float(12), Result: journal.Win}}
	assert.Equal(t, float64(ProfitFactorCap), ProfitFactor(onlyWins))

	flat := []journal.Trade{{EntryPrice: 10, ActualExit: journal.Float(10), Result: journal.Win}}
	assert.Equal(t, 0.0, ProfitFactor(flat))
}

func TestPerformanceBy(t *testing.T) {
	t.Parallel()

	pairs := ByPair(fixtureTrades())
	require.Len(t, pairs, 2)
	assert.Equal(t, GroupStats{Trades: 2, Wins: 1, WinRate: 50}, pairs["EURUSD"])
	assert.Equal(t, GroupStats{Trades: 2, Wins: 1, WinRate: 50}, pairs["XAUUSD"])
	_, ok := pairs["GBPUSD"]
	assert.False(t, ok)

	sessions := BySession(fixtureTrades())
	assert.Equal(t, GroupStats{Trades: 2, Wins: 2, WinRate: 100}, sessions["London"])
	assert.Equal(t, GroupStats{Trades: 2, Wins: 0, WinRate: 0}, sessions["NY"])

	byGrade := PerformanceBy(fixtureTrades(), func(t journal.Trade) string { return string(t.Grade) })
	assert.Equal(t, 4, byGrade[""].Trades)
}

func TestEquityCurve(t *testing.T) {
	t.Parallel()

	trades := fixtureTrades()
	points := EquityCurve(trades, DefaultInitialCapital)

	require.Len(t, points, 3)
	assert.Equal(t, "t1", points[0].TradeID)
	assert.InDelta(t, 9999.0, points[0].Balance, 1e-9)
	assert.Equal(t, "t2", points[1].TradeID)
	assert.InDelta(t, 10002.0, points[1].Balance, 1e-9)
	assert.Equal(t, "t3", points[2].TradeID)
	assert.InDelta(t, 10002.02, points[2].Balance, 1e-9)
	assert.True(t, points[2].Time.Equal(day(3)))

	// input order is untouched
	assert.Equal(t, "t3", trades[0].ID)

	assert.Empty(t, EquityCurve(nil, 500))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(fixtureTrades(), DefaultInitialCapital)

	assert.Equal(t, 5, s.Trades)
	assert.Equal(t, 4, s.Completed)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.BreakEvens)
	assert.InDelta(t, 50.0, s.WinRate, 1e-9)
	assert.InDelta(t, 3.02, s.ProfitFactor, 1e-9)
	assert.Len(t, s.Equity, 3)

	// t3: +2R on 100, t1: -0.5R on 50, t2: no risk amount
	assert.InDelta(t, 175.0, s.NetPnL, 1e-9)
}
