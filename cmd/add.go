package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/ledger"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add NAME COST",
	Short: "Record an expense",
	Long:  "Record an expense dated today. COST is a whole, non-negative amount.",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.tracker.Add(args[0], args[1])
	if err != nil {
		return err
	}
	if !res.Ok() {
		if errors.Is(res.Err, ledger.ErrInvalidCost) {
			return fmt.Errorf("cost %q: %w", args[1], res.Err)
		}
		return res.Err
	}
	if res.Notice != nil {
		fmt.Println(cli.RenderNotice(*res.Notice))
	}

	state := s.tracker.State()
	last := state.Expenses[len(state.Expenses)-1]
	fmt.Printf("  Added %s (%s) %s\n", last.Name, last.Date, cli.FormatMoney(last.Cost))
	fmt.Println(cli.RenderSummary(state.Totals))
	return nil
}
