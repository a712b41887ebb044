package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/tally/internal/cli"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm INDEX",
	Aliases: []string{"delete"},
	Short:   "Delete an expense by its position in `tally list`",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(_ *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("index %q is not a number", args[0])
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	before := s.tracker.State().Expenses
	res, err := s.tracker.Delete(n - 1)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return fmt.Errorf("no expense #%d (have %d)", n, len(before))
	}

	removed := before[n-1]
	fmt.Printf("  Deleted %s (%s) %s\n", removed.Name, removed.Date, cli.FormatMoney(removed.Cost))
	fmt.Println(cli.RenderSummary(s.tracker.State().Totals))
	return nil
}
