package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradelog/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage the tradelog configuration file.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  tradelog config init -o tradelog.yaml
  tradelog config validate -f tradelog.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings, including
the default confluence checklist.

Example:
  tradelog config init -o tradelog.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  tradelog config validate -f tradelog.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", defaultConfigPath, "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if err := c.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("✓ Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  tradelog --config %s account create\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	rc, err := c.RiskSettings()
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if c.Instruments != "" {
		if _, err := registryFrom(c.Instruments); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	fmt.Printf("✓ Configuration valid: %s\n", configValidatePath)
	fmt.Printf("  Account: %s (%.2f %s)\n", c.Account.Name, c.Account.Balance, c.Account.Currency)
	fmt.Printf("  Risk: %s %g\n", rc.Type, rc.Value)
	fmt.Printf("  Journal: %s\n", c.Journal.DBPath)
	fmt.Printf("  Checklist: %d items\n", len(c.Checklist))
	return nil
}
