package cmd

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show budget totals and all expenses",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.tracker.State()
	fmt.Println()
	fmt.Println(cli.RenderTitle("Your Expenses"))
	fmt.Println(cli.RenderSummary(state.Totals))
	fmt.Println()

	if len(state.Expenses) == 0 {
		fmt.Println(cli.RenderEmpty())
		fmt.Println()
		return nil
	}
	fmt.Print(cli.RenderTable(cli.ExpenseTable(state.Expenses)))

	if saved, err := s.store.UpdatedAt(store.KeyExpenses); err == nil && !saved.IsZero() {
		fmt.Printf("  Last change %s\n", humanize.Time(saved))
	}
	return nil
}
