package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradelog/internal/service"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/spf13/cobra"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Journal, close and review trades",
	Long: `Record trades in the journal. New trades are sized from the account
balance and graded from the checklist items you tick with --check.

Subcommands:
  add    - Size, grade and journal a trade
  list   - List an account's trades
  show   - Show one trade
  close  - Record an exit on an open trade
  delete - Delete a trade and revert its P&L

Examples:
  tradelog trade add --symbol EURUSD --entry 1.1000 --stop 1.0950 --tp 1.1100 --check htf-trend,key-level
  tradelog trade close <trade-id> --exit 1.1080
  tradelog trade list`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Size, grade and journal a trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an account's trades in Org format",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show one trade in Org format",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeCloseCmd = &cobra.Command{
	Use:   "close <trade-id>",
	Short: "Record an exit; the result is inferred when --result is omitted",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeClose,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade and revert its P&L",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var (
	trAccount   string
	trSymbol    string
	trType      string
	trDirection string
	trSession   string
	trEntry     float64
	trStop      float64
	trTP        float64
	trExit      float64
	trResult    string
	trRiskType  string
	trRiskValue float64
	trRate      float64
	trChecks    []string
	trNotes     string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeShowCmd)
	tradeCmd.AddCommand(tradeCloseCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	tradeCmd.PersistentFlags().StringVarP(&trAccount, "account", "a", "", "account ID (default: the only account)")

	f := tradeAddCmd.Flags()
	f.StringVarP(&trSymbol, "symbol", "s", "", "instrument symbol (required)")
	f.StringVarP(&trType, "type", "t", string(market.FX), "instrument type (FX, GOLD, COMMODITY, STOCK)")
	f.StringVar(&trDirection, "direction", "buy", "buy or sell")
	f.StringVar(&trSession, "session", "", "trading session, e.g. London")
	f.Float64VarP(&trEntry, "entry", "e", 0, "entry price (required)")
	f.Float64Var(&trStop, "stop", 0, "stop loss price (required)")
	f.Float64Var(&trTP, "tp", 0, "take profit price")
	f.Float64Var(&trExit, "exit", 0, "actual exit, for trades already closed")
	f.StringVar(&trResult, "result", "", "win, loss or be, for trades already closed")
	f.StringVar(&trRiskType, "risk-type", "", "percent or fixed (default from config)")
	f.Float64Var(&trRiskValue, "risk-value", 0, "risk percent or fixed amount (default from config)")
	f.Float64Var(&trRate, "rate", 0, "quote currency per account currency (default: derived from entry)")
	f.StringSliceVar(&trChecks, "check", nil, "checklist item IDs that were met")
	f.StringVar(&trNotes, "notes", "", "free form notes")
	tradeAddCmd.MarkFlagRequired("symbol")
	tradeAddCmd.MarkFlagRequired("entry")
	tradeAddCmd.MarkFlagRequired("stop")

	tradeCloseCmd.Flags().Float64Var(&trExit, "exit", 0, "actual exit price (required)")
	tradeCloseCmd.Flags().StringVar(&trResult, "result", "", "win, loss or be (default: inferred from P&L)")
	tradeCloseCmd.MarkFlagRequired("exit")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}

	in := service.Input{
		Symbol:       trSymbol,
		Session:      trSession,
		EntryPrice:   trEntry,
		StopLoss:     trStop,
		TakeProfit:   trTP,
		ExchangeRate: trRate,
		Checklist:    trChecks,
		Notes:        trNotes,
	}
	if in.AccountID, err = resolveAccount(cmd, trAccount); err != nil {
		return err
	}
	if in.InstrumentType, err = market.ParseInstrumentType(trType); err != nil {
		return err
	}
	if in.Direction, err = market.ParseDirection(trDirection); err != nil {
		return err
	}
	if in.Result, err = journal.ParseResult(trResult); err != nil {
		return err
	}
	if cmd.Flags().Changed("exit") {
		in.ActualExit = journal.Float(trExit)
	}
	if trRiskType != "" || trRiskValue != 0 {
		rc, err := riskOverride(cfg.Risk.Type, cfg.Risk.Value, trRiskType, trRiskValue)
		if err != nil {
			return err
		}
		in.Risk = &rc
	}

	t, sizing, err := j.Submit(cmd.Context(), in)
	if err != nil {
		if !sizing.Valid() {
			printSizing(sizing, in.InstrumentType)
		}
		return err
	}

	fmt.Printf("✓ Journaled %s %s %s\n", t.ID, t.Symbol, t.Direction)
	fmt.Printf("  Size: %g %s  Risk: %.2f  R:R %.2f  Grade: %s (%.0f%%)\n",
		t.PositionSize, sizeUnit(t.InstrumentType), t.Risk(), t.RiskToReward, t.Grade, t.ConfluenceScore)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	if _, err := openJournal(); err != nil {
		return err
	}
	trades, err := store.ListTrades(cmd.Context(), trAccount)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	fmt.Println(journal.FormatTradesOrg(trades))
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	if _, err := openJournal(); err != nil {
		return err
	}
	t, err := store.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	fmt.Println(journal.FormatTradeOrg(t))
	return nil
}

func runTradeClose(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	result, err := journal.ParseResult(trResult)
	if err != nil {
		return err
	}
	t, err := j.Close(cmd.Context(), args[0], trExit, result)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Closed %s: %s, P&L %.2f\n", t.ID, t.Result, journal.ComputeTradePnl(t))
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	if err := j.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted %s\n", args[0])
	return nil
}
