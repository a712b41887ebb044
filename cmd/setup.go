package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues backs the huh form fields.
type setupValues struct {
	budget    string
	overshoot string
	theme     string
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	vals := setupValues{
		budget:    strconv.FormatInt(cfg.General.DefaultBudget, 10),
		overshoot: cfg.Budget.Overshoot,
		theme:     cfg.Appearance.Theme,
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Starting budget").
				Description("Used until you set a budget in the tracker.").
				Value(&vals.budget).
				Validate(validateBudget),
			huh.NewSelect[string]().
				Title("When an expense goes over budget").
				Options(
					huh.NewOption("Lower the budget by the overshoot", ledger.PolicyAdjust.String()),
					huh.NewOption("Keep the budget and flag the overrun", ledger.PolicyCeiling.String()),
				).
				Value(&vals.overshoot),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	applySetup(&cfg, vals)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `tally setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func validateBudget(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func applySetup(cfg *config.Config, vals setupValues) {
	if b, err := strconv.ParseInt(strings.TrimSpace(vals.budget), 10, 64); err == nil {
		cfg.General.DefaultBudget = b
	}
	if _, err := ledger.ParsePolicy(vals.overshoot); err == nil {
		cfg.Budget.Overshoot = vals.overshoot
	}
	cfg.Appearance.Theme = theme.ByName(vals.theme).Name
}
