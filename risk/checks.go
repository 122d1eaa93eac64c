package risk

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	MsgStopEqualsEntry  = "stop loss cannot equal entry price"
	MsgEntryNotPositive = "entry price must be greater than 0"
	MsgStopNotPositive  = "stop loss price must be greater than 0"
	MsgSizeTooSmall     = "position size too small for selected risk"
	MsgEntryNotFinite   = "entry price must be a finite number"
	MsgStopNotFinite    = "stop loss price must be a finite number"
	MsgSpecsNotFinite   = "instrument specs must be finite numbers"
	MsgRateNotFinite    = "exchange rate must be a finite number"
)

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ValidateTrade returns every shape problem with t. An empty slice means the
// trade can be sized.
func ValidateTrade(t Trade) []string {
	errs := []string{}
	entryOK, stopOK := finite(t.EntryPrice), finite(t.StopLossPrice)

	if entryOK && stopOK && t.EntryPrice == t.StopLossPrice {
		errs = append(errs, MsgStopEqualsEntry)
	}
	switch {
	case !entryOK:
		errs = append(errs, MsgEntryNotFinite)
	case t.EntryPrice <= 0:
		errs = append(errs, MsgEntryNotPositive)
	}
	switch {
	case !stopOK:
		errs = append(errs, MsgStopNotFinite)
	case t.StopLossPrice <= 0:
		errs = append(errs, MsgStopNotPositive)
	}
	return errs
}

// ResolveRiskAmount converts cfg into a monetary amount in the account currency.
func ResolveRiskAmount(acct Account, cfg Config) (float64, error) {
	switch cfg.Type {
	case RiskPercent, RiskFixed:
	default:
		return 0, fmt.Errorf("%w: unknown risk type %q", ErrInvalidRiskConfig, cfg.Type)
	}
	if !finite(cfg.Value) {
		return 0, fmt.Errorf("%w: risk value must be a finite number", ErrInvalidRiskConfig)
	}
	if cfg.Value <= 0 {
		return 0, fmt.Errorf("%w: risk value must be greater than 0", ErrInvalidRiskConfig)
	}
	if !finite(acct.Balance) {
		return 0, fmt.Errorf("%w: account balance must be a finite number", ErrInvalidRiskConfig)
	}

	if cfg.Type == RiskPercent {
		amt := decimal.NewFromFloat(acct.Balance).Mul(decimal.NewFromFloat(cfg.Value)).Div(decimal.NewFromInt(100))
		return amt.InexactFloat64(), nil
	}
	return cfg.Value, nil
}
