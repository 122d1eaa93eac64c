package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rustyeddy/tradelog/market"
)

const tradeColumns = `trade_id, account_id, symbol, session, instrument_type, direction,
	entry_price, stop_loss, take_profit, actual_exit, result, risk_amount, pnl,
	position_size, risk_to_reward, confluence_score, grade, checklist, notes,
	created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (Trade, error) {
	var (
		rec                       Trade
		instrument, dir, res, grd string
		checklist                 string
		actualExit, riskAmt, pnl  sql.NullFloat64
	)

	err := row.Scan(
		&rec.ID,
		&rec.AccountID,
		&rec.Symbol,
		&rec.Session,
		&instrument,
		&dir,
		&rec.EntryPrice,
		&rec.StopLoss,
		&rec.TakeProfit,
		&actualExit,
		&res,
		&riskAmt,
		&pnl,
		&rec.PositionSize,
		&rec.RiskToReward,
		&rec.ConfluenceScore,
		&grd,
		&checklist,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return Trade{}, err
	}

	rec.InstrumentType = market.InstrumentType(instrument)
	rec.Direction = market.Direction(dir)
	rec.Result = Result(res)
	rec.Grade = Grade(grd)
	rec.ActualExit = floatPtr(actualExit)
	rec.RiskAmount = floatPtr(riskAmt)
	rec.PnL = floatPtr(pnl)
	if err := json.Unmarshal([]byte(checklist), &rec.Checklist); err != nil {
		return Trade{}, fmt.Errorf("trade %q checklist: %w", rec.ID, err)
	}
	return rec, nil
}

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(ctx context.Context, id string) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, id)

	rec, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Trade{}, fmt.Errorf("trade %q: %w", id, ErrNotFound)
		}
		return Trade{}, err
	}
	return rec, nil
}

// ListTrades returns an account's trades oldest first. An empty accountID
// lists every trade.
func (j *SQLite) ListTrades(ctx context.Context, accountID string) ([]Trade, error) {
	q := `SELECT ` + tradeColumns + ` FROM trades`
	args := []any{}
	if accountID != "" {
		q += ` WHERE account_id = ?`
		args = append(args, accountID)
	}
	q += ` ORDER BY created_at ASC, trade_id ASC`

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) GetAccount(ctx context.Context, id string) (Account, error) {
	var a Account
	err := j.db.QueryRowContext(ctx, `
		SELECT account_id, name, currency, initial_balance, balance, created_at
		FROM accounts
		WHERE account_id = ?`, id).Scan(
		&a.ID, &a.Name, &a.Currency, &a.InitialBalance, &a.Balance, &a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
		}
		return Account{}, err
	}
	return a, nil
}

func (j *SQLite) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT account_id, name, currency, initial_balance, balance, created_at
		FROM accounts
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Currency, &a.InitialBalance, &a.Balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
