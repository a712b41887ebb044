package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored expenses and the saved budget",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	n := len(s.tracker.State().Expenses)
	if !flagYes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %d expense(s) and the saved budget?", n)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	if err := s.store.Reset(); err != nil {
		return err
	}
	fmt.Printf("  Removed %d expense(s). Budget reset to %d on next start.\n", n, s.cfg.General.DefaultBudget)
	return nil
}
