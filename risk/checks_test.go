package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRiskAmount(t *testing.T) {
	t.Parallel()

	acct := Account{Balance: 10000}

	got, err := ResolveRiskAmount(acct, Config{Type: RiskPercent, Value: 1})
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)

	got, err = ResolveRiskAmount(acct, Config{Type: RiskFixed, Value: 250})
	require.NoError(t, err)
	assert.Equal(t, 250.0, got)

	got, err = ResolveRiskAmount(Account{Balance: 2500}, Config{Type: RiskPercent, Value: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)
}

func TestResolveRiskAmountErrors(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{
		{Type: "", Value: 1},
		{Type: "HALF", Value: 1},
		{Type: RiskFixed, Value: 0},
		{Type: RiskPercent, Value: -2},
		{Type: RiskFixed, Value: math.Inf(1)},
	} {
		_, err := ResolveRiskAmount(Account{Balance: 1000}, cfg)
		assert.True(t, errors.Is(err, ErrInvalidRiskConfig), "%+v", cfg)
	}

	_, err := ResolveRiskAmount(Account{Balance: math.NaN()}, Config{Type: RiskPercent, Value: 1})
	assert.ErrorIs(t, err, ErrInvalidRiskConfig)
}

func TestParseRiskType(t *testing.T) {
	t.Parallel()

	rt, err := ParseRiskType("percent")
	require.NoError(t, err)
	assert.Equal(t, RiskPercent, rt)

	rt, err = ParseRiskType(" Fixed ")
	require.NoError(t, err)
	assert.Equal(t, RiskFixed, rt)

	_, err = ParseRiskType("kelly")
	assert.ErrorIs(t, err, ErrInvalidRiskConfig)
}

func TestValidateTrade(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ValidateTrade(Trade{EntryPrice: 1.1050, StopLossPrice: 1.1000}))

	errs := ValidateTrade(Trade{EntryPrice: 1.1000, StopLossPrice: 1.1000, Direction: market.Buy})
	assert.Contains(t, errs, MsgStopEqualsEntry)
	assert.Len(t, errs, 1)

	errs = ValidateTrade(Trade{EntryPrice: -1, StopLossPrice: 2})
	assert.Equal(t, []string{MsgEntryNotPositive}, errs)

	errs = ValidateTrade(Trade{EntryPrice: 0, StopLossPrice: 0})
	assert.Equal(t, []string{MsgStopEqualsEntry, MsgEntryNotPositive, MsgStopNotPositive}, errs)

	tests := []struct {
		entry, stop float64
		want        []string
	}{
		{math.NaN(), 1.1, []string{MsgEntryNotFinite}},
		{1.1, math.NaN(), []string{MsgStopNotFinite}},
		{math.NaN(), math.NaN(), []string{MsgEntryNotFinite, MsgStopNotFinite}},
		{math.Inf(1), math.Inf(1), []string{MsgEntryNotFinite, MsgStopNotFinite}},
		{math.Inf(-1), -2, []string{MsgEntryNotFinite, MsgStopNotPositive}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateTrade(Trade{EntryPrice: tt.entry, StopLossPrice: tt.stop}), "%v/%v", tt.entry, tt.stop)
	}
}

func TestAccountCurrencyOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "USD", Account{}.CurrencyOrDefault())
	assert.Equal(t, "EUR", Account{Currency: "EUR"}.CurrencyOrDefault())
}

func TestFloorToIncrement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v, inc, want string
	}{
		{"0.2", "0.01", "0.2"},
		{"0.199999", "0.01", "0.19"},
		{"1.239", "0.01", "1.23"},
		{"0.25", "0.1", "0.2"},
		{"7.9", "1", "7"},
		{"0.5", "0", "0.5"},
	}
	for _, tt := range tests {
		got := FloorToIncrement(decimal.RequireFromString(tt.v), decimal.RequireFromString(tt.inc))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s/%s → %s", tt.v, tt.inc, got)
	}
}

func TestFloorToWholeUnits(t *testing.T) {
	t.Parallel()

	assert.True(t, FloorToWholeUnits(decimal.RequireFromString("33.999")).Equal(decimal.NewFromInt(33)))
	assert.True(t, FloorToWholeUnits(decimal.RequireFromString("0.99")).IsZero())
	assert.True(t, FloorToWholeUnits(decimal.NewFromInt(12)).Equal(decimal.NewFromInt(12)))
}

func TestPipValuePerLot(t *testing.T) {
	t.Parallel()

	eur := market.FXSpecs{LotSize: 100000, PipSize: 0.0001, QuoteCurrency: "USD"}
	assert.True(t, PipValuePerLot(eur, "USD", 0).Equal(decimal.NewFromInt(10)))

	jpy := market.FXSpecs{LotSize: 100000, PipSize: 0.01, QuoteCurrency: "JPY"}
	assert.True(t, PipValuePerLot(jpy, "USD", 100).Equal(decimal.NewFromInt(10)))
	// missing rate behaves as 1
	assert.True(t, PipValuePerLot(jpy, "USD", 0).Equal(decimal.NewFromInt(1000)))
}
