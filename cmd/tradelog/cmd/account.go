package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage trading accounts",
	Long: `Create and inspect the accounts trades are journaled against.

Subcommands:
  create - Open a new account
  list   - List all accounts
  show   - Show one account
  sync   - Recompute a balance from its trades

Examples:
  tradelog account create --name main --balance 10000
  tradelog account sync 01HV...`,
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new account",
	Args:  cobra.NoArgs,
	RunE:  runAccountCreate,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountShowCmd = &cobra.Command{
	Use:   "show [account-id]",
	Short: "Show one account",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAccountShow,
}

var accountSyncCmd = &cobra.Command{
	Use:   "sync [account-id]",
	Short: "Recompute a balance from the initial balance and every trade's P&L",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAccountSync,
}

var (
	acctName     string
	acctCurrency string
	acctBalance  float64
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountSyncCmd)

	accountCreateCmd.Flags().StringVarP(&acctName, "name", "n", "", "account name (default from config)")
	accountCreateCmd.Flags().StringVar(&acctCurrency, "currency", "", "account currency (default from config)")
	accountCreateCmd.Flags().Float64VarP(&acctBalance, "balance", "b", 0, "starting balance (default from config)")
}

func runAccountCreate(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}

	name, currency, balance := cfg.Account.Name, cfg.Account.Currency, cfg.Account.Balance
	if acctName != "" {
		name = acctName
	}
	if acctCurrency != "" {
		currency = acctCurrency
	}
	if acctBalance != 0 {
		balance = acctBalance
	}
	if balance <= 0 {
		return fmt.Errorf("balance must be positive")
	}

	a, err := j.OpenAccount(cmd.Context(), name, currency, balance)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Created account %s (%s) %.2f %s\n", a.ID, a.Name, a.Balance, a.Currency)
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	if _, err := openJournal(); err != nil {
		return err
	}
	accts, err := store.ListAccounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	for _, a := range accts {
		fmt.Printf("%s  %-12s %12.2f %s\n", a.ID, a.Name, a.Balance, a.Currency)
	}
	return nil
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	if _, err := openJournal(); err != nil {
		return err
	}
	id, err := resolveAccount(cmd, firstArg(args))
	if err != nil {
		return err
	}
	a, err := store.GetAccount(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}

	fmt.Printf("Account:  %s\n", a.ID)
	fmt.Printf("Name:     %s\n", a.Name)
	fmt.Printf("Currency: %s\n", a.Currency)
	fmt.Printf("Initial:  %.2f\n", a.InitialBalance)
	fmt.Printf("Balance:  %.2f\n", a.Balance)
	fmt.Printf("Created:  %s\n", a.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func runAccountSync(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	id, err := resolveAccount(cmd, firstArg(args))
	if err != nil {
		return err
	}
	bal, err := j.SyncBalance(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Balance synced: %.2f\n", bal)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
