package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/internal/logging"
	"github.com/rustyeddy/tradelog/internal/service"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultConfigPath is read when --config is not given and the file exists.
const defaultConfigPath = "tradelog.yaml"

var (
	cfgFile  string
	envFile  string
	dbPath   string
	logLevel string

	cfg   *config.Config
	log   *zap.Logger
	store *journal.SQLite
)

var rootCmd = &cobra.Command{
	Use:   "tradelog",
	Short: "A personal trading journal with risk-based position sizing",
	Long: `Tradelog sizes trades from your account risk, records them in a
SQLite journal and reports on how you trade.

It provides tools for:
  - Position sizing for FX, gold, commodities and stocks
  - Journaling trades with a weighted confluence checklist
  - Keeping account balances in step with realized P&L
  - Win rate, profit factor and equity curve statistics
  - CSV and Org-mode exports`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./tradelog.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "dotenv file with TRADELOG_* overrides (default ./.env when present)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	if dbPath != "" {
		cfg.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err = logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if store != nil {
		if err := store.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		store = nil
	}
	if log != nil {
		_ = log.Sync()
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	c := config.Default()

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	if err := c.ApplyEnv(envFiles...); err != nil {
		return nil, err
	}
	return c, nil
}

// openJournal opens the configured store and wires the journal service.
// Commands that never touch the database do not call it.
func openJournal() (*service.Journal, error) {
	if store == nil {
		s, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		store = s
	}

	reg, err := registry()
	if err != nil {
		return nil, err
	}
	rc, err := cfg.RiskSettings()
	if err != nil {
		return nil, err
	}

	return service.New(store, service.Options{
		Registry:  reg,
		Checklist: cfg.Checklist,
		Risk:      rc,
		Logger:    log,
	}), nil
}

func registry() (*market.Registry, error) {
	return registryFrom(cfg.Instruments)
}

// registryFrom loads instrument overrides from path, or the built-in tables
// when path is empty.
func registryFrom(path string) (*market.Registry, error) {
	if path == "" {
		return market.NewRegistry(), nil
	}
	reg, err := market.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load instruments: %w", err)
	}
	return reg, nil
}

// resolveAccount returns id, or the only account in the journal when id is
// empty.
func resolveAccount(cmd *cobra.Command, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	accts, err := store.ListAccounts(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("list accounts: %w", err)
	}
	switch len(accts) {
	case 0:
		return "", errors.New("no accounts yet, run: tradelog account create")
	case 1:
		return accts[0].ID, nil
	}
	return "", fmt.Errorf("%d accounts in journal, pick one with --account", len(accts))
}
