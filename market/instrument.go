package market

import (
	"fmt"
	"strings"
)

// InstrumentType selects the sizing convention used for a trade.
type InstrumentType string

const (
	FX        InstrumentType = "FX"
	Gold      InstrumentType = "GOLD"
	Commodity InstrumentType = "COMMODITY"
	Stock     InstrumentType = "STOCK"
)

// InstrumentTypes lists every supported instrument type.
var InstrumentTypes = []InstrumentType{FX, Gold, Commodity, Stock}

// Known reports whether t is one of the supported instrument types.
func (t InstrumentType) Known() bool {
	switch t {
	case FX, Gold, Commodity, Stock:
		return true
	}
	return false
}

func ParseInstrumentType(s string) (InstrumentType, error) {
	t := InstrumentType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Known() {
		return "", fmt.Errorf("unsupported instrument type: %s", s)
	}
	return t, nil
}

type Direction string

const (
	Buy  Direction = "Buy"
	Sell Direction = "Sell"
)

// ParseDirection accepts buy/sell and long/short in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "long":
		return Buy, nil
	case "sell", "short":
		return Sell, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// NormalizeSymbol uppercases a symbol and drops separators so that
// "EUR_USD", "eur/usd" and "EURUSD" all resolve to the same key.
func NormalizeSymbol(symbol string) string {
	r := strings.NewReplacer("_", "", "/", "", "-", "", " ", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(symbol)))
}
