package risk

import (
	"fmt"

	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

type Result struct {
	PositionSize           float64  `json:"position_size"`
	RiskAmount             float64  `json:"risk_amount"`
	StopDistancePriceUnits float64  `json:"stop_distance_price_units"`
	ValidationErrors       []string `json:"validation_errors"`
}

// Valid reports whether the result can be trusted.
func (r Result) Valid() bool {
	return len(r.ValidationErrors) == 0
}

func invalid(msgs ...string) Result {
	return Result{ValidationErrors: msgs}
}

// CalculatePositionSize validates t, resolves the risk amount and sizes the
// position with the calculator matching t.InstrumentType.
//
// specs may be nil, in which case the generic defaults for the instrument
// type are used. exchangeRate converts an FX quote currency into the account
// currency; zero or negative means 1. Failures are reported in
// Result.ValidationErrors and never returned as errors.
func CalculatePositionSize(t Trade, acct Account, cfg Config, specs market.Specs, exchangeRate float64) Result {
	if errs := ValidateTrade(t); len(errs) > 0 {
		return invalid(errs...)
	}

	riskAmt, err := ResolveRiskAmount(acct, cfg)
	if err != nil {
		return invalid(err.Error())
	}

	if !t.InstrumentType.Known() {
		return invalid(fmt.Sprintf("unsupported instrument type: %s", t.InstrumentType))
	}
	if specs == nil {
		specs = market.DefaultSpecs(t.InstrumentType)
	}
	if specs.Type() != t.InstrumentType {
		return invalid(fmt.Sprintf("instrument specs do not match instrument type: %s", t.InstrumentType))
	}
	if !specsFinite(specs) {
		return invalid(MsgSpecsNotFinite)
	}
	if !finite(exchangeRate) {
		return invalid(MsgRateNotFinite)
	}

	dist := StopDistance(t.EntryPrice, t.StopLossPrice)
	amt := d(riskAmt)

	var size decimal.Decimal
	switch s := specs.(type) {
	case market.FXSpecs:
		size = SizeFX(dist, amt, s, acct.CurrencyOrDefault(), exchangeRate)
	case market.GoldSpecs:
		size = SizeGold(dist, amt, s)
	case market.CommoditySpecs:
		size = SizeCommodity(dist, amt, s)
	case market.StockSpecs:
		size = SizeStock(dist, amt)
	default:
		return invalid(fmt.Sprintf("unsupported instrument type: %s", t.InstrumentType))
	}

	if !size.IsPositive() {
		return invalid(MsgSizeTooSmall)
	}

	return Result{
		PositionSize:           size.InexactFloat64(),
		RiskAmount:             riskAmt,
		StopDistancePriceUnits: dist.InexactFloat64(),
		ValidationErrors:       []string{},
	}
}

func specsFinite(specs market.Specs) bool {
	switch s := specs.(type) {
	case market.FXSpecs:
		return finite(s.LotSize) && finite(s.PipSize)
	case market.GoldSpecs:
		return finite(s.ContractSize) && finite(s.TickSize) && finite(s.TickValue)
	case market.CommoditySpecs:
		return finite(s.TickSize) && finite(s.TickValue) && finite(s.MinContractSize)
	}
	return true
}
