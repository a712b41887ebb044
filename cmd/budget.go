package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget [AMOUNT]",
	Short: "Show or set the budget",
	Long:  "With no argument, print the totals. With AMOUNT, set the budget; it must be at least what has been spent.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		res, err := s.tracker.EditBudget(args[0])
		if err != nil {
			return err
		}
		if !res.Ok() {
			return errors.New(model.MsgInvalidBudget)
		}
	}

	fmt.Println(cli.RenderSummary(s.tracker.State().Totals))
	return nil
}
