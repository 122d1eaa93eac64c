package journal

import (
	"math"
	"testing"

	"github.com/rustyeddy/tradelog/market"
	"github.com/stretchr/testify/assert"
)

func TestComputeTradePnl(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		trade Trade
		want  float64
	}{
		{
			name:  "stored pnl wins",
			trade: Trade{PnL: Float(42.5), ActualExit: Float(2), EntryPrice: 1, StopLoss: 0.5, RiskAmount: Float(100), Result: Loss},
			want:  42.5,
		},
		{
			name:  "buy exit at stop loses risk",
			trade: Trade{Direction: market.Buy, EntryPrice: 1.1050, StopLoss: 1.1000, ActualExit: Float(1.1000), RiskAmount: Float(100)},
			want:  -100,
		},
		{
			name:  "buy partial loss",
			trade: Trade{Direction: market.Buy, EntryPrice: 100, StopLoss: 90, ActualExit: Float(97.5), RiskAmount: Float(200)},
			want:  -50,
		},
		{
			name:  "buy beyond stop amplifies",
			trade: Trade{Direction: market.Buy, EntryPrice: 100, StopLoss: 90, ActualExit: Float(85), RiskAmount: Float(200)},
			want:  -300,
		},
		{
			name:  "sell winner",
			trade: Trade{Direction: market.Sell, EntryPrice: 1950, StopLoss: 1960, ActualExit: Float(1925), RiskAmount: Float(100)},
			want:  250,
		},
		{
			name:  "exit at entry",
			trade: Trade{Direction: market.Sell, EntryPrice: 50, StopLoss: 52, ActualExit: Float(50), RiskAmount: Float(100), Result: BreakEven},
			want:  0,
		},
		{
			name:  "rounded to cents",
			trade: Trade{Direction: market.Buy, EntryPrice: 10, StopLoss: 7, ActualExit: Float(11), RiskAmount: Float(100)},
			want:  33.33,
		},
		{
			name:  "zero stop distance falls back to result",
			trade: Trade{EntryPrice: 10, StopLoss: 10, ActualExit: Float(11), RiskAmount: Float(50), RiskToReward: 2, Result: Win},
			want:  100,
		},
		{
			name:  "win without exit",
			trade: Trade{RiskAmount: Float(50), RiskToReward: 2, Result: Win},
			want:  100,
		},
		{
			name:  "loss without exit",
			trade: Trade{RiskAmount: Float(50), RiskToReward: 2, Result: Loss},
			want:  -50,
		},
		{
			name:  "break-even without exit",
			trade: Trade{RiskAmount: Float(50), RiskToReward: 2, Result: BreakEven},
			want:  0,
		},
		{
			name:  "open trade",
			trade: Trade{RiskAmount: Float(50), RiskToReward: 2},
			want:  0,
		},
		{
			name:  "missing risk amount",
			trade: Trade{RiskToReward: 3, Result: Win},
			want:  0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, ComputeTradePnl(tt.trade), 1e-9)
		})
	}
}

func TestApplyRevertPnlRoundTrip(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		{Direction: market.Buy, EntryPrice: 10, StopLoss: 7, ActualExit: Float(11), RiskAmount: Float(100)},
		{RiskAmount: Float(37.77), RiskToReward: 1.3, Result: Win},
		{RiskAmount: Float(12.34), Result: Loss},
		{PnL: Float(-0.1)},
	}

	for _, balance := range []float64{0, 10000, 10000.1, 2543.87, 99999.99} {
		for _, tr := range trades {
			pnl := ComputeTradePnl(tr)
			assert.Equal(t, balance, RevertPnl(ApplyPnl(balance, pnl), pnl))
		}
	}
}

func TestApplyPnl(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10000.3, ApplyPnl(10000.1, 0.2))
	assert.Equal(t, 9950.0, ApplyPnl(10000, -50))
	assert.Equal(t, 10050.0, RevertPnl(10000, -50))
	assert.Equal(t, 10000.0, ApplyPnl(10000, math.NaN()))
	assert.Equal(t, 10000.0, RevertPnl(10000, math.Inf(1)))
}

func TestComputeTradePnlNonFinite(t *testing.T) {
	t.Parallel()

	// a NaN exit falls back to the result
	tr := Trade{Direction: market.Buy, EntryPrice: 100, StopLoss: 90, ActualExit: Float(math.NaN()), RiskAmount: Float(100), Result: Loss}
	assert.Equal(t, -100.0, ComputeTradePnl(tr))

	tr = Trade{PnL: Float(math.Inf(1)), RiskAmount: Float(100), RiskToReward: 2, Result: Win}
	assert.Equal(t, 200.0, ComputeTradePnl(tr))

	tr = Trade{Direction: market.Buy, EntryPrice: math.Inf(1), StopLoss: 90, ActualExit: Float(95), RiskAmount: Float(100)}
	assert.NotPanics(t, func() { ComputeTradePnl(tr) })
	assert.Zero(t, ComputeTradePnl(tr))
}
