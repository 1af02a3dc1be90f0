package cmd

import (
	"fmt"
	"strings"

	"github.com/1cbyc/1cbyc-trading-bot/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate, validate or show configuration",
	Long: `Manage configuration files.

Subcommands:
  init     - Write a configuration file for an account profile
  validate - Validate an existing configuration file
  show     - Print the effective configuration after env overrides

Examples:
  tradebot config init --profile micro -o tradebot.yaml
  tradebot config validate -f tradebot.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var (
	configInitOutput   string
	configInitProfile  string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configValidateCmd, configShowCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "tradebot.yaml", "output config file path")
	configInitCmd.Flags().StringVarP(&configInitProfile, "profile", "p", "demo",
		"account profile ("+strings.Join(config.Profiles, ", ")+")")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Profile(configInitProfile)
	if err != nil {
		return err
	}
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Created %s configuration: %s\n", configInitProfile, configInitOutput)
	fmt.Fprintf(w, "Edit the file and run with:\n  tradebot run -c %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(w, "  Account:    %s (%.2f %s)\n", cfg.Account.ID, cfg.Account.Balance, cfg.Account.Currency)
	fmt.Fprintf(w, "  Symbols:    %s\n", strings.Join(cfg.Engine.Symbols, ", "))
	fmt.Fprintf(w, "  Evaluators: %d enabled, threshold %.2f\n", cfg.Evaluators.Count(), cfg.Engine.ConfidenceThreshold)
	fmt.Fprintf(w, "  Journal:    %s\n", cfg.Journal.Type)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
