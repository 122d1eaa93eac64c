package risk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/tradelog/market"
)

// ErrInvalidRiskConfig is returned when a risk configuration cannot be
// turned into a monetary amount.
var ErrInvalidRiskConfig = errors.New("invalid risk configuration")

type RiskType string

const (
	RiskPercent RiskType = "PERCENT" // percent of balance, 1 == 1%
	RiskFixed   RiskType = "FIXED"   // account currency amount
)

func ParseRiskType(s string) (RiskType, error) {
	switch RiskType(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskPercent:
		return RiskPercent, nil
	case RiskFixed:
		return RiskFixed, nil
	}
	return "", fmt.Errorf("%w: unknown risk type %q", ErrInvalidRiskConfig, s)
}

type Config struct {
	Type  RiskType
	Value float64
}

type Account struct {
	Balance  float64
	Currency string // "" means USD
}

const DefaultCurrency = "USD"

func (a Account) CurrencyOrDefault() string {
	if a.Currency == "" {
		return DefaultCurrency
	}
	return a.Currency
}

// Trade is the subset of a journal trade needed for sizing.
type Trade struct {
	InstrumentType market.InstrumentType
	EntryPrice     float64
	StopLossPrice  float64
	Direction      market.Direction
}
