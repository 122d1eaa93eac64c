package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rustyeddy/tradelog/metrics"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics for an account",
	Long: `Summarize win rate, average R:R, profit factor, net P&L and
per pair and per session win rates.

Examples:
  tradelog stats
  tradelog stats --account 01HV... --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var (
	statsAccount string
	statsJSON    bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsAccount, "account", "a", "", "account ID (default: the only account)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the summary as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	id, err := resolveAccount(cmd, statsAccount)
	if err != nil {
		return err
	}
	s, err := j.Stats(cmd.Context(), id, cfg.Metrics.InitialCapital)
	if err != nil {
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	fmt.Printf("Trades:        %d (%d completed)\n", s.Trades, s.Completed)
	fmt.Printf("Wins/Losses:   %d / %d (%d break-even)\n", s.Wins, s.Losses, s.BreakEvens)
	fmt.Printf("Win rate:      %.1f%%\n", s.WinRate)
	fmt.Printf("Average R:R:   %.2f\n", s.AverageRiskReward)
	fmt.Printf("Profit factor: %s\n", profitFactor(s.ProfitFactor))
	fmt.Printf("Net P&L:       %.2f\n", s.NetPnL)

	printGroups("By pair", s.ByPair)
	printGroups("By session", s.BySession)
	return nil
}

func profitFactor(pf float64) string {
	if pf >= metrics.ProfitFactorCap {
		return "∞"
	}
	return fmt.Sprintf("%.2f", pf)
}

func printGroups(title string, groups map[string]metrics.GroupStats) {
	if len(groups) == 0 {
		return
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\n%s:\n", title)
	for _, k := range keys {
		g := groups[k]
		name := k
		if name == "" {
			name = "(none)"
		}
		fmt.Printf("  %-10s %3d trades  %5.1f%%\n", name, g.Trades, g.WinRate)
	}
}
