// market/instruments.go
package market

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry holds the instrument spec tables. Lookups never fail: an unknown
// symbol gets the generic default for its instrument type.
type Registry struct {
	FX          map[string]FXSpecs        `yaml:"fx"`
	Gold        map[string]GoldSpecs      `yaml:"gold"`
	Commodities map[string]CommoditySpecs `yaml:"commodities"`
}

func fxPair(quote string) FXSpecs {
	pip := 0.0001
	if quote == "JPY" {
		pip = 0.01
	}
	return FXSpecs{LotSize: 100_000, PipSize: pip, QuoteCurrency: quote}
}

var fxPairs = map[string]FXSpecs{
	"EURUSD": fxPair("USD"),
	"GBPUSD": fxPair("USD"),
	"AUDUSD": fxPair("USD"),
	"NZDUSD": fxPair("USD"),
	"USDJPY": fxPair("JPY"),
	"EURJPY": fxPair("JPY"),
	"GBPJPY": fxPair("JPY"),
	"AUDJPY": fxPair("JPY"),
	"USDCAD": fxPair("CAD"),
	"USDCHF": fxPair("CHF"),
	"EURGBP": fxPair("GBP"),
	"EURCHF": fxPair("CHF"),
}

var goldContracts = map[string]GoldSpecs{
	"XAUUSD": DefaultGoldSpecs,
	"GOLD":   DefaultGoldSpecs,
	"GC":     {ContractSize: 100, TickSize: 0.1, TickValue: 10},
}

var commodities = map[string]CommoditySpecs{
	"XAGUSD": {TickSize: 0.001, TickValue: 5, MinContractSize: 0.01},
	"SILVER": {TickSize: 0.001, TickValue: 5, MinContractSize: 0.01},
	"USOIL":  {TickSize: 0.01, TickValue: 10, MinContractSize: 0.01},
	"WTI":    {TickSize: 0.01, TickValue: 10, MinContractSize: 0.01},
	"UKOIL":  {TickSize: 0.01, TickValue: 10, MinContractSize: 0.01},
	"NATGAS": {TickSize: 0.001, TickValue: 10, MinContractSize: 0.1},
	"COPPER": {TickSize: 0.0005, TickValue: 12.5, MinContractSize: 1},
}

// NewRegistry returns a registry seeded with the built-in tables.
func NewRegistry() *Registry {
	r := &Registry{
		FX:          make(map[string]FXSpecs, len(fxPairs)),
		Gold:        make(map[string]GoldSpecs, len(goldContracts)),
		Commodities: make(map[string]CommoditySpecs, len(commodities)),
	}
	for k, v := range fxPairs {
		r.FX[k] = v
	}
	for k, v := range goldContracts {
		r.Gold[k] = v
	}
	for k, v := range commodities {
		r.Commodities[k] = v
	}
	return r
}

// LoadRegistry reads a YAML file of instrument overrides and merges it onto
// the built-in tables. Symbols in the file are normalized before merging.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instruments file: %w", err)
	}

	var extra Registry
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse instruments file: %w", err)
	}

	r := NewRegistry()
	for k, v := range extra.FX {
		r.FX[NormalizeSymbol(k)] = v
	}
	for k, v := range extra.Gold {
		r.Gold[NormalizeSymbol(k)] = v
	}
	for k, v := range extra.Commodities {
		r.Commodities[NormalizeSymbol(k)] = v
	}
	return r, nil
}

func (r *Registry) LookupFX(symbol string) FXSpecs {
	if s, ok := r.FX[NormalizeSymbol(symbol)]; ok {
		return s
	}
	return DefaultFXSpecs
}

func (r *Registry) LookupGold(symbol string) GoldSpecs {
	if s, ok := r.Gold[NormalizeSymbol(symbol)]; ok {
		return s
	}
	return DefaultGoldSpecs
}

func (r *Registry) LookupCommodity(symbol string) CommoditySpecs {
	if s, ok := r.Commodities[NormalizeSymbol(symbol)]; ok {
		return s
	}
	return DefaultCommoditySpecs
}

// SpecsFor returns the specs for symbol under the given instrument type.
// It returns nil only for an unknown instrument type.
func (r *Registry) SpecsFor(t InstrumentType, symbol string) Specs {
	switch t {
	case FX:
		return r.LookupFX(symbol)
	case Gold:
		return r.LookupGold(symbol)
	case Commodity:
		return r.LookupCommodity(symbol)
	case Stock:
		return StockSpecs{}
	}
	return nil
}
