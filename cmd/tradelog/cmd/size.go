package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/risk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Calculate a position size without journaling it",
	Long: `Size a trade from entry, stop and account risk.

Risk defaults come from the config file. The balance defaults to the
configured account balance unless --balance is given.

Examples:
  tradelog size --symbol EURUSD --entry 1.1000 --stop 1.0950
  tradelog size --type GOLD --symbol XAUUSD --entry 2000 --stop 1990 --risk-type fixed --risk-value 100
  tradelog size --symbol EURGBP --entry 0.85 --stop 0.845 --rate 0.79`,
	Args: cobra.NoArgs,
	RunE: runSize,
}

var (
	szType      string
	szSymbol    string
	szDirection string
	szEntry     float64
	szStop      float64
	szBalance   float64
	szCurrency  string
	szRiskType  string
	szRiskValue float64
	szRate      float64
	szJSON      bool
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().StringVarP(&szType, "type", "t", string(market.FX), "instrument type (FX, GOLD, COMMODITY, STOCK)")
	sizeCmd.Flags().StringVarP(&szSymbol, "symbol", "s", "", "instrument symbol, used to look up contract specs")
	sizeCmd.Flags().StringVar(&szDirection, "direction", "buy", "buy or sell")
	sizeCmd.Flags().Float64VarP(&szEntry, "entry", "e", 0, "entry price (required)")
	sizeCmd.Flags().Float64Var(&szStop, "stop", 0, "stop loss price (required)")
	sizeCmd.Flags().Float64VarP(&szBalance, "balance", "b", 0, "account balance (default from config)")
	sizeCmd.Flags().StringVar(&szCurrency, "currency", "", "account currency (default from config)")
	sizeCmd.Flags().StringVar(&szRiskType, "risk-type", "", "percent or fixed (default from config)")
	sizeCmd.Flags().Float64Var(&szRiskValue, "risk-value", 0, "risk percent or fixed amount (default from config)")
	sizeCmd.Flags().Float64Var(&szRate, "rate", 0, "quote currency per account currency (default: derived from entry)")
	sizeCmd.Flags().BoolVar(&szJSON, "json", false, "print the result as JSON")

	sizeCmd.MarkFlagRequired("entry")
	sizeCmd.MarkFlagRequired("stop")
}

func runSize(cmd *cobra.Command, args []string) error {
	it, err := market.ParseInstrumentType(szType)
	if err != nil {
		return err
	}
	dir, err := market.ParseDirection(szDirection)
	if err != nil {
		return err
	}
	rc, err := riskOverride(cfg.Risk.Type, cfg.Risk.Value, szRiskType, szRiskValue)
	if err != nil {
		return err
	}
	reg, err := registry()
	if err != nil {
		return err
	}

	acct := risk.Account{Balance: cfg.Account.Balance, Currency: cfg.Account.Currency}
	if szBalance != 0 {
		acct.Balance = szBalance
	}
	if szCurrency != "" {
		acct.Currency = strings.ToUpper(szCurrency)
	}

	rate := szRate
	if rate == 0 && it == market.FX {
		rate, err = market.QuoteToAccountRate(szSymbol, reg.LookupFX(szSymbol), acct.CurrencyOrDefault(), szEntry)
		if err != nil {
			return fmt.Errorf("%w, pass --rate", err)
		}
	}

	res := risk.CalculatePositionSize(
		risk.Trade{InstrumentType: it, EntryPrice: szEntry, StopLossPrice: szStop, Direction: dir},
		acct,
		rc,
		reg.SpecsFor(it, szSymbol),
		rate,
	)
	log.Debug("sized trade",
		zap.String("type", string(it)),
		zap.String("symbol", market.NormalizeSymbol(szSymbol)),
		zap.Float64("size", res.PositionSize),
		zap.Strings("errors", res.ValidationErrors),
	)

	if szJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printSizing(res, it)
	}

	if !res.Valid() {
		return fmt.Errorf("trade rejected: %s", strings.Join(res.ValidationErrors, "; "))
	}
	return nil
}

func printSizing(res risk.Result, it market.InstrumentType) {
	if !res.Valid() {
		fmt.Println("✗ Trade rejected")
		for _, msg := range res.ValidationErrors {
			fmt.Printf("  - %s\n", msg)
		}
		return
	}
	fmt.Printf("✓ Position size: %g %s\n", res.PositionSize, sizeUnit(it))
	fmt.Printf("  Risk amount:   %.2f\n", res.RiskAmount)
	fmt.Printf("  Stop distance: %g\n", res.StopDistancePriceUnits)
}

func sizeUnit(it market.InstrumentType) string {
	switch it {
	case market.FX:
		return "lots"
	case market.Stock:
		return "shares"
	}
	return "contracts"
}

// riskOverride merges command line risk flags over the configured risk.
func riskOverride(cfgType string, cfgValue float64, flagType string, flagValue float64) (risk.Config, error) {
	if flagType != "" {
		cfgType = flagType
	}
	if flagValue != 0 {
		cfgValue = flagValue
	}
	rt, err := risk.ParseRiskType(cfgType)
	if err != nil {
		return risk.Config{}, err
	}
	return risk.Config{Type: rt, Value: cfgValue}, nil
}
