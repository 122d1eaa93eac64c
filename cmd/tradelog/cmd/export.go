package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades or the equity curve as CSV",
	Long: `Write journal data as CSV, to stdout or a file.

Subcommands:
  trades - One row per trade, with reconstructed P&L
  equity - The equity curve over closed trades

Examples:
  tradelog export trades -o trades.csv
  tradelog export equity --account 01HV...`,
}

var exportTradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Export trades as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExportTrades,
}

var exportEquityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Export the equity curve as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExportEquity,
}

var (
	exportAccount string
	exportOutput  string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportTradesCmd)
	exportCmd.AddCommand(exportEquityCmd)

	exportCmd.PersistentFlags().StringVarP(&exportAccount, "account", "a", "", "account ID (trades: all accounts when empty)")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runExportTrades(cmd *cobra.Command, args []string) error {
	if _, err := openJournal(); err != nil {
		return err
	}
	trades, err := store.ListTrades(cmd.Context(), exportAccount)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	return writeOutput(func(w io.Writer) error {
		return journal.WriteTradesCSV(w, trades)
	})
}

func runExportEquity(cmd *cobra.Command, args []string) error {
	if _, err := openJournal(); err != nil {
		return err
	}
	id, err := resolveAccount(cmd, exportAccount)
	if err != nil {
		return err
	}
	trades, err := store.ListTrades(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	capital := cfg.Metrics.InitialCapital
	if capital == 0 {
		capital = metrics.DefaultInitialCapital
	}
	points := metrics.EquityCurve(trades, capital)
	return writeOutput(func(w io.Writer) error {
		return journal.WriteEquityCSV(w, points)
	})
}

func writeOutput(write func(io.Writer) error) error {
	if exportOutput == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOutput, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("export written", zap.String("path", exportOutput))
	return nil
}
