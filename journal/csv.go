package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

// EquitySnapshot is one point of an equity curve.
type EquitySnapshot struct {
	Time    time.Time `json:"time"`
	TradeID string    `json:"trade_id"`
	Balance float64   `json:"balance"`
}

var tradeHeader = []string{
	"trade_id", "account_id", "symbol", "session", "instrument_type", "direction",
	"entry_price", "stop_loss", "take_profit", "actual_exit", "result",
	"risk_amount", "pnl", "position_size", "risk_to_reward", "confluence_score",
	"grade", "checklist", "created_at",
}

// WriteTradesCSV writes trades with their reconstructed P&L.
func WriteTradesCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradeHeader); err != nil {
		return err
	}

	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.AccountID,
			t.Symbol,
			t.Session,
			string(t.InstrumentType),
			string(t.Direction),
			f(t.EntryPrice),
			f(t.StopLoss),
			f(t.TakeProfit),
			optional(t.ActualExit),
			string(t.Result),
			optional(t.RiskAmount),
			strconv.FormatFloat(ComputeTradePnl(t), 'f', 2, 64),
			f(t.PositionSize),
			f(t.RiskToReward),
			f(t.ConfluenceScore),
			string(t.Grade),
			strings.Join(t.Checklist, ";"),
			t.CreatedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteEquityCSV(w io.Writer, points []EquitySnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "trade_id", "balance"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := cw.Write([]string{p.Time.UTC().Format(time.RFC3339), p.TradeID, f(p.Balance)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optional(p *float64) string {
	if p == nil {
		return ""
	}
	return f(*p)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
