package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

// NewSQLite opens path, which may be a plain file name or a file: URI with
// its own query parameters.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, err
	}
	// One writer keeps balance read-modify-write transactions serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func (j *SQLite) CreateAccount(ctx context.Context, a Account) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO accounts
		(account_id, name, currency, initial_balance, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Currency, a.InitialBalance, a.Balance, a.CreatedAt,
	)
	return err
}

// AdjustBalance reads the current balance of an account, applies fn and
// writes the result back inside a single transaction.
func (j *SQLite) AdjustBalance(ctx context.Context, id string, fn func(balance float64) float64) (float64, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var bal float64
	err = tx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE account_id = ?`, id).Scan(&bal)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}

	bal = fn(bal)
	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = ? WHERE account_id = ?`, bal, id); err != nil {
		return 0, err
	}
	return bal, tx.Commit()
}

func (j *SQLite) SaveTrade(ctx context.Context, t Trade) error {
	checklist, err := json.Marshal(t.Checklist)
	if err != nil {
		return err
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO trades
		(trade_id, account_id, symbol, session, instrument_type, direction,
		 entry_price, stop_loss, take_profit, actual_exit, result, risk_amount, pnl,
		 position_size, risk_to_reward, confluence_score, grade, checklist, notes,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, t.Symbol, t.Session, string(t.InstrumentType), string(t.Direction),
		t.EntryPrice, t.StopLoss, t.TakeProfit, nullFloat(t.ActualExit), string(t.Result),
		nullFloat(t.RiskAmount), nullFloat(t.PnL),
		t.PositionSize, t.RiskToReward, t.ConfluenceScore, string(t.Grade), string(checklist), t.Notes,
		t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (j *SQLite) UpdateTrade(ctx context.Context, t Trade) error {
	checklist, err := json.Marshal(t.Checklist)
	if err != nil {
		return err
	}

	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET
		 account_id = ?, symbol = ?, session = ?, instrument_type = ?, direction = ?,
		 entry_price = ?, stop_loss = ?, take_profit = ?, actual_exit = ?, result = ?,
		 risk_amount = ?, pnl = ?, position_size = ?, risk_to_reward = ?,
		 confluence_score = ?, grade = ?, checklist = ?, notes = ?, updated_at = ?
		WHERE trade_id = ?`,
		t.AccountID, t.Symbol, t.Session, string(t.InstrumentType), string(t.Direction),
		t.EntryPrice, t.StopLoss, t.TakeProfit, nullFloat(t.ActualExit), string(t.Result),
		nullFloat(t.RiskAmount), nullFloat(t.PnL), t.PositionSize, t.RiskToReward,
		t.ConfluenceScore, string(t.Grade), string(checklist), t.Notes, t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return err
	}
	return expectOne(res, "trade", t.ID)
}

func (j *SQLite) DeleteTrade(ctx context.Context, id string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res, "trade", id)
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func expectOne(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
