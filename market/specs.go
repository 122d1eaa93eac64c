package market

// Specs carries the per-instrument conventions a sizing calculator needs.
// The set of implementations is closed: FXSpecs, GoldSpecs, CommoditySpecs
// and StockSpecs.
type Specs interface {
	Type() InstrumentType
	sealed()
}

// FXSpecs describes a currency pair. LotSize is in base-currency units per
// standard lot, PipSize in price units.
type FXSpecs struct {
	LotSize       float64 `yaml:"lot_size" json:"lot_size"`
	PipSize       float64 `yaml:"pip_size" json:"pip_size"`
	QuoteCurrency string  `yaml:"quote_currency" json:"quote_currency"`
}

type GoldSpecs struct {
	ContractSize float64 `yaml:"contract_size" json:"contract_size"`
	TickSize     float64 `yaml:"tick_size" json:"tick_size"`
	TickValue    float64 `yaml:"tick_value" json:"tick_value"`
}

// CommoditySpecs generalizes GoldSpecs for oil, silver, gas and the like.
// MinContractSize is the sizing increment; zero means 0.01.
type CommoditySpecs struct {
	TickSize        float64 `yaml:"tick_size" json:"tick_size"`
	TickValue       float64 `yaml:"tick_value" json:"tick_value"`
	MinContractSize float64 `yaml:"min_contract_size,omitempty" json:"min_contract_size,omitempty"`
}

// StockSpecs is empty: shares need no scaling beyond the share count.
type StockSpecs struct{}

func (FXSpecs) Type() InstrumentType        { return FX }
func (GoldSpecs) Type() InstrumentType      { return Gold }
func (CommoditySpecs) Type() InstrumentType { return Commodity }
func (StockSpecs) Type() InstrumentType     { return Stock }

func (FXSpecs) sealed()        {}
func (GoldSpecs) sealed()      {}
func (CommoditySpecs) sealed() {}
func (StockSpecs) sealed()     {}

const DefaultMinContractSize = 0.01

// Increment returns the contract increment, falling back to DefaultMinContractSize.
func (c CommoditySpecs) Increment() float64 {
	if c.MinContractSize <= 0 {
		return DefaultMinContractSize
	}
	return c.MinContractSize
}

var (
	DefaultFXSpecs        = FXSpecs{LotSize: 100_000, PipSize: 0.0001, QuoteCurrency: "USD"}
	DefaultGoldSpecs      = GoldSpecs{ContractSize: 100, TickSize: 0.01, TickValue: 1}
	DefaultCommoditySpecs = CommoditySpecs{TickSize: 0.01, TickValue: 1, MinContractSize: DefaultMinContractSize}
)

// DefaultSpecs returns the generic fallback specs for an instrument type, or
// nil when the type is unknown.
func DefaultSpecs(t InstrumentType) Specs {
	switch t {
	case FX:
		return DefaultFXSpecs
	case Gold:
		return DefaultGoldSpecs
	case Commodity:
		return DefaultCommoditySpecs
	case Stock:
		return StockSpecs{}
	}
	return nil
}
