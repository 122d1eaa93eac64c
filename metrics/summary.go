package metrics

import (
	"github.com/rustyeddy/tradelog/journal"
	"github.com/shopspring/decimal"
)

type Summary struct {
	Trades     int `json:"trades"`
	Completed  int `json:"completed"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	BreakEvens int `json:"break_evens"`

	WinRate           float64 `json:"win_rate"`
	AverageRiskReward float64 `json:"average_risk_reward"`
	ProfitFactor      float64 `json:"profit_factor"`
	NetPnL            float64 `json:"net_pnl"`

	ByPair    map[string]GroupStats    `json:"by_pair"`
	BySession map[string]GroupStats    `json:"by_session"`
	Equity    []journal.EquitySnapshot `json:"equity"`
}

func Summarize(trades []journal.Trade, initialCapital float64) Summary {
	s := Summary{
		Trades:            len(trades),
		WinRate:           WinRate(trades),
		AverageRiskReward: AverageRiskReward(trades),
		ProfitFactor:      ProfitFactor(trades),
		ByPair:            ByPair(trades),
		BySession:         BySession(trades),
		Equity:            EquityCurve(trades, initialCapital),
	}

	net := decimal.Zero
	for _, t := range trades {
		switch t.Result {
		case journal.Win:
			s.Wins++
		case journal.Loss:
			s.Losses++
		case journal.BreakEven:
			s.BreakEvens++
		}
		if t.Completed() {
			s.Completed++
		}
		net = net.Add(decimal.NewFromFloat(journal.ComputeTradePnl(t)))
	}
	s.NetPnL = net.InexactFloat64()
	return s
}
