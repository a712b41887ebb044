package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}

	fmt.Println("  [General]")
	fmt.Printf("    Default budget: %s\n", cli.FormatMoney(cfg.General.DefaultBudget))
	fmt.Printf("    Database:       %s\n", dbPath)
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Overshoot:      %s\n", cfg.Budget.Overshoot)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:          %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `tally setup` to reconfigure.")
	return nil
}
