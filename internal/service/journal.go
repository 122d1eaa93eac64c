package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/rustyeddy/tradelog/pkg/id"
	"github.com/rustyeddy/tradelog/risk"
	"go.uber.org/zap"
)

var (
	// ErrSizing is returned when a submitted trade cannot be sized.
	ErrSizing = errors.New("position sizing failed")
	// ErrInvalidTrade is returned when an edit carries a non-finite price or P&L.
	ErrInvalidTrade = errors.New("invalid trade")
)

type Options struct {
	Registry  *market.Registry
	Checklist []metrics.ChecklistItem
	Risk      risk.Config
	Logger    *zap.Logger
	Now       func() time.Time
}

// Journal runs the trade lifecycle flows against a store. Every balance
// change goes through journal.ComputeTradePnl and the store's atomic
// AdjustBalance.
type Journal struct {
	store     journal.Store
	registry  *market.Registry
	checklist []metrics.ChecklistItem
	risk      risk.Config
	log       *zap.Logger
	now       func() time.Time
}

func New(store journal.Store, opts Options) *Journal {
	j := &Journal{
		store:     store,
		registry:  opts.Registry,
		checklist: opts.Checklist,
		risk:      opts.Risk,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if j.registry == nil {
		j.registry = market.NewRegistry()
	}
	if j.log == nil {
		j.log = zap.NewNop()
	}
	if j.now == nil {
		j.now = time.Now
	}
	return j
}

// Input is a trade as entered by the user, before sizing and grading.
type Input struct {
	AccountID      string
	Symbol         string
	Session        string
	InstrumentType market.InstrumentType
	Direction      market.Direction
	EntryPrice     float64
	StopLoss       float64
	TakeProfit     float64
	ActualExit     *float64
	Result         journal.Result
	Risk           *risk.Config // nil uses the journal default
	ExchangeRate   float64 // 0 derives the rate from the entry price
	Checklist      []string
	Notes          string
}

func (j *Journal) OpenAccount(ctx context.Context, name, currency string, balance float64) (journal.Account, error) {
	now := j.now().UTC()
	a := journal.Account{
		ID:             id.NewAt(now),
		Name:           name,
		Currency:       strings.ToUpper(currency),
		InitialBalance: balance,
		Balance:        balance,
		CreatedAt:      now,
	}
	if a.Currency == "" {
		a.Currency = risk.DefaultCurrency
	}
	if err := j.store.CreateAccount(ctx, a); err != nil {
		return journal.Account{}, fmt.Errorf("create account: %w", err)
	}
	j.log.Info("account opened", zap.String("account_id", a.ID), zap.Float64("balance", balance))
	return a, nil
}

// Submit sizes, grades and stores a new trade. A trade submitted already
// closed applies its P&L to the account balance straight away.
func (j *Journal) Submit(ctx context.Context, in Input) (journal.Trade, risk.Result, error) {
	acct, err := j.store.GetAccount(ctx, in.AccountID)
	if err != nil {
		return journal.Trade{}, risk.Result{}, err
	}

	cfg := j.risk
	if in.Risk != nil {
		cfg = *in.Risk
	}

	rate, err := exchangeRate(j.registry, in, acct.Currency)
	if err != nil {
		return journal.Trade{}, risk.Result{}, err
	}

	sizing := risk.CalculatePositionSize(
		risk.Trade{
			InstrumentType: in.InstrumentType,
			EntryPrice:     in.EntryPrice,
			StopLossPrice:  in.StopLoss,
			Direction:      in.Direction,
		},
		risk.Account{Balance: acct.Balance, Currency: acct.Currency},
		cfg,
		j.registry.SpecsFor(in.InstrumentType, in.Symbol),
		rate,
	)
	if !sizing.Valid() {
		return journal.Trade{}, sizing, fmt.Errorf("%w: %s", ErrSizing, strings.Join(sizing.ValidationErrors, "; "))
	}

	now := j.now().UTC()
	t := journal.Trade{
		ID:             id.NewAt(now),
		AccountID:      acct.ID,
		Symbol:         market.NormalizeSymbol(in.Symbol),
		Session:        in.Session,
		InstrumentType: in.InstrumentType,
		Direction:      in.Direction,
		EntryPrice:     in.EntryPrice,
		StopLoss:       in.StopLoss,
		TakeProfit:     in.TakeProfit,
		ActualExit:     in.ActualExit,
		Result:         in.Result,
		RiskAmount:     journal.Float(sizing.RiskAmount),
		PositionSize:   sizing.PositionSize,
		Checklist:      in.Checklist,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	j.grade(&t)

	if err := j.store.SaveTrade(ctx, t); err != nil {
		return journal.Trade{}, sizing, fmt.Errorf("save trade: %w", err)
	}

	if pnl := journal.ComputeTradePnl(t); pnl != 0 {
		if _, err := j.applyPnl(ctx, t.AccountID, pnl); err != nil {
			if derr := j.store.DeleteTrade(ctx, t.ID); derr != nil {
				j.log.Error("trade left without its balance effect, run account sync",
					zap.String("trade_id", t.ID), zap.Error(derr))
			}
			return journal.Trade{}, sizing, err
		}
	}

	j.log.Info("trade submitted",
		zap.String("trade_id", t.ID),
		zap.String("symbol", t.Symbol),
		zap.Float64("size", t.PositionSize),
		zap.Float64("risk", sizing.RiskAmount),
		zap.String("grade", string(t.Grade)),
	)
	return t, sizing, nil
}

// Update replaces a stored trade. The old trade's P&L is reverted and the new
// one applied, so editing never drifts the balance.
func (j *Journal) Update(ctx context.Context, t journal.Trade) (journal.Trade, error) {
	if err := checkFinite(t); err != nil {
		return journal.Trade{}, err
	}
	old, err := j.store.GetTrade(ctx, t.ID)
	if err != nil {
		return journal.Trade{}, err
	}

	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = j.now().UTC()
	if t.AccountID == "" {
		t.AccountID = old.AccountID
	}
	if t.AccountID != old.AccountID {
		if _, err := j.store.GetAccount(ctx, t.AccountID); err != nil {
			return journal.Trade{}, fmt.Errorf("move trade: %w", err)
		}
	}
	j.grade(&t)

	if err := j.store.UpdateTrade(ctx, t); err != nil {
		return journal.Trade{}, fmt.Errorf("update trade: %w", err)
	}

	oldPnl := journal.ComputeTradePnl(old)
	newPnl := journal.ComputeTradePnl(t)

	if old.AccountID == t.AccountID {
		_, err = j.store.AdjustBalance(ctx, t.AccountID, func(b float64) float64 {
			return journal.ApplyPnl(journal.RevertPnl(b, oldPnl), newPnl)
		})
		if err != nil {
			return t, fmt.Errorf("adjust balance: %w", err)
		}
	} else {
		if _, err := j.revertPnl(ctx, old.AccountID, oldPnl); err != nil {
			return t, err
		}
		if _, err := j.applyPnl(ctx, t.AccountID, newPnl); err != nil {
			return t, err
		}
	}

	j.log.Info("trade updated",
		zap.String("trade_id", t.ID),
		zap.Float64("old_pnl", oldPnl),
		zap.Float64("pnl", newPnl),
	)
	return t, nil
}

// Close records an exit on an open trade. An empty result is inferred from
// the sign of the reconstructed P&L.
func (j *Journal) Close(ctx context.Context, tradeID string, exit float64, result journal.Result) (journal.Trade, error) {
	if math.IsNaN(exit) || math.IsInf(exit, 0) {
		return journal.Trade{}, fmt.Errorf("%w: exit must be a finite number", ErrInvalidTrade)
	}
	t, err := j.store.GetTrade(ctx, tradeID)
	if err != nil {
		return journal.Trade{}, err
	}

	t.ActualExit = journal.Float(exit)
	t.Result = result
	if t.Result == "" {
		switch pnl := journal.ComputeTradePnl(t); {
		case pnl > 0:
			t.Result = journal.Win
		case pnl < 0:
			t.Result = journal.Loss
		default:
			t.Result = journal.BreakEven
		}
	}
	return j.Update(ctx, t)
}

// Delete removes a trade and reverts its balance contribution.
func (j *Journal) Delete(ctx context.Context, tradeID string) error {
	t, err := j.store.GetTrade(ctx, tradeID)
	if err != nil {
		return err
	}

	if err := j.store.DeleteTrade(ctx, tradeID); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}

	pnl := journal.ComputeTradePnl(t)
	if pnl != 0 {
		if _, err := j.revertPnl(ctx, t.AccountID, pnl); err != nil {
			j.log.Error("balance revert failed after delete",
				zap.String("trade_id", tradeID), zap.Float64("pnl", pnl), zap.Error(err))
			return err
		}
	}

	j.log.Info("trade deleted", zap.String("trade_id", tradeID), zap.Float64("reverted_pnl", pnl))
	return nil
}

// SyncBalance recomputes an account balance from its initial balance and
// the P&L of every stored trade.
func (j *Journal) SyncBalance(ctx context.Context, accountID string) (float64, error) {
	acct, err := j.store.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	trades, err := j.store.ListTrades(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("list trades: %w", err)
	}

	bal := acct.InitialBalance
	for _, t := range trades {
		bal = journal.ApplyPnl(bal, journal.ComputeTradePnl(t))
	}

	if _, err := j.store.AdjustBalance(ctx, accountID, func(float64) float64 { return bal }); err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	if bal != acct.Balance {
		j.log.Warn("balance drift corrected",
			zap.String("account_id", accountID),
			zap.Float64("stored", acct.Balance),
			zap.Float64("synced", bal),
		)
	}
	return bal, nil
}

// Stats summarizes an account's trades. A zero initialCapital uses
// metrics.DefaultInitialCapital.
func (j *Journal) Stats(ctx context.Context, accountID string, initialCapital float64) (metrics.Summary, error) {
	trades, err := j.store.ListTrades(ctx, accountID)
	if err != nil {
		return metrics.Summary{}, fmt.Errorf("list trades: %w", err)
	}
	if initialCapital == 0 {
		initialCapital = metrics.DefaultInitialCapital
	}
	return metrics.Summarize(trades, initialCapital), nil
}

// checkFinite rejects NaN and ±Inf in the numeric fields of an edited trade.
func checkFinite(t journal.Trade) error {
	fields := map[string]*float64{
		"entry price":   &t.EntryPrice,
		"stop loss":     &t.StopLoss,
		"take profit":   &t.TakeProfit,
		"actual exit":   t.ActualExit,
		"risk amount":   t.RiskAmount,
		"pnl":           t.PnL,
		"position size": &t.PositionSize,
	}
	for name, p := range fields {
		if p != nil && (math.IsNaN(*p) || math.IsInf(*p, 0)) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidTrade, name)
		}
	}
	return nil
}

// exchangeRate returns in.ExchangeRate, or for FX derives it from the entry
// price when the pair's base or quote is the account currency.
func exchangeRate(reg *market.Registry, in Input, accountCurrency string) (float64, error) {
	if in.ExchangeRate != 0 || in.InstrumentType != market.FX {
		return in.ExchangeRate, nil
	}
	rate, err := market.QuoteToAccountRate(in.Symbol, reg.LookupFX(in.Symbol), accountCurrency, in.EntryPrice)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSizing, err)
	}
	return rate, nil
}

func (j *Journal) grade(t *journal.Trade) {
	t.RiskToReward = metrics.RiskReward(t.Direction, t.EntryPrice, t.StopLoss, t.TakeProfit)
	t.ConfluenceScore = metrics.ChecklistScore(j.checklist, t.Checklist)
	t.Grade = metrics.AssignGrade(t.ConfluenceScore)
}

func (j *Journal) applyPnl(ctx context.Context, accountID string, pnl float64) (float64, error) {
	bal, err := j.store.AdjustBalance(ctx, accountID, func(b float64) float64 {
		return journal.ApplyPnl(b, pnl)
	})
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	return bal, nil
}

func (j *Journal) revertPnl(ctx context.Context, accountID string, pnl float64) (float64, error) {
	bal, err := j.store.AdjustBalance(ctx, accountID, func(b float64) float64 {
		return journal.RevertPnl(b, pnl)
	})
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	return bal, nil
}
