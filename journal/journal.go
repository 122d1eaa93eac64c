// journal/journal.go
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradelog/market"
)

var ErrNotFound = errors.New("not found")

type Result string

const (
	Win       Result = "Win"
	Loss      Result = "Loss"
	BreakEven Result = "Break-even"
)

// ParseResult accepts the stored spellings plus win/loss/be in any case.
// An empty string parses to the open (no result) state.
func ParseResult(s string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "win", "w":
		return Win, nil
	case "loss", "l":
		return Loss, nil
	case "break-even", "breakeven", "be":
		return BreakEven, nil
	}
	return "", fmt.Errorf("unknown trade result: %s", s)
}

type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
)

// Trade is a journal entry. Optional fields are pointers; an empty Result
// means the trade is still open.
type Trade struct {
	ID             string                `json:"id"`
	AccountID      string                `json:"account_id"`
	Symbol         string                `json:"symbol"`
	Session        string                `json:"session,omitempty"`
	InstrumentType market.InstrumentType `json:"instrument_type"`
	Direction      market.Direction      `json:"direction"`

	EntryPrice float64  `json:"entry_price"`
	StopLoss   float64  `json:"stop_loss"`
	TakeProfit float64  `json:"take_profit"`
	ActualExit *float64 `json:"actual_exit,omitempty"`

	Result     Result   `json:"result,omitempty"`
	RiskAmount *float64 `json:"risk_amount,omitempty"`
	PnL        *float64 `json:"pnl,omitempty"`

	PositionSize    float64  `json:"position_size"`
	RiskToReward    float64  `json:"risk_to_reward"`
	ConfluenceScore float64  `json:"confluence_score"`
	Grade           Grade    `json:"grade"`
	Checklist       []string `json:"checklist,omitempty"`
	Notes           string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Completed reports whether the trade has a result.
func (t Trade) Completed() bool {
	return t.Result != ""
}

// Closed reports whether the trade has both a result and an actual exit.
func (t Trade) Closed() bool {
	return t.Result != "" && t.ActualExit != nil
}

func (t Trade) Risk() float64 {
	if t.RiskAmount == nil {
		return 0
	}
	return *t.RiskAmount
}

type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Currency       string    `json:"currency"`
	InitialBalance float64   `json:"initial_balance"`
	Balance        float64   `json:"balance"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store is the persistence contract the journal flows depend on.
type Store interface {
	CreateAccount(ctx context.Context, a Account) error
	GetAccount(ctx context.Context, id string) (Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	AdjustBalance(ctx context.Context, id string, fn func(balance float64) float64) (float64, error)

	SaveTrade(ctx context.Context, t Trade) error
	UpdateTrade(ctx context.Context, t Trade) error
	GetTrade(ctx context.Context, id string) (Trade, error)
	ListTrades(ctx context.Context, accountID string) ([]Trade, error)
	DeleteTrade(ctx context.Context, id string) error

	Close() error
}

// Float returns a pointer to v, for the optional trade fields.
func Float(v float64) *float64 {
	return &v
}
