package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rustyeddy/stockbot/journal"
	"github.com/rustyeddy/stockbot/pkg/id"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the run journal",
	Long: `Query and display recorded runs from the SQLite journal.

Subcommands:
  list  - List every recorded run
  show  - Show one run as an Org-mode report
  days  - Print the day-by-day log of a run

Examples:
  stockbot journal list
  stockbot journal show 01HZX3R6Q2M8N4T5V7W9Y0A1B2
  stockbot journal days 01HZX3R6Q2M8N4T5V7W9Y0A1B2`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDaysCmd = &cobra.Command{
	Use:   "days <run-id>",
	Short: "Print the daily log of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDays,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalDaysCmd)

	journalCmd.PersistentFlags().StringVar(&journalDBPath, "db", "./stockbot.sqlite", "path to SQLite journal DB")
}

func openJournal() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

// parseRunID rejects anything that is not a ULID before touching the database.
func parseRunID(s string) (string, error) {
	if _, err := id.Time(s); err != nil {
		return "", fmt.Errorf("bad run id %q: %w", s, err)
	}
	return s, nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tCREATED\tSTRATEGY\tDATASET\tDAYS\tFINAL CASH\tRETURN")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%.2f%%\n",
			r.RunID,
			r.Created.Format("2006-01-02 15:04"),
			r.Strategy,
			r.Dataset,
			r.Days,
			journal.FormatMoney(r.FinalCash, r.Currency),
			r.ReturnPct,
		)
	}
	return tw.Flush()
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	runID, err := parseRunID(args[0])
	if err != nil {
		return err
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	run, err := j.GetRun(runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	s, err := run.Org()
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func runJournalDays(cmd *cobra.Command, args []string) error {
	runID, err := parseRunID(args[0])
	if err != nil {
		return err
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	days, err := j.ListDays(runID)
	if err != nil {
		return fmt.Errorf("query days: %w", err)
	}
	if len(days) == 0 {
		return fmt.Errorf("run %q has no recorded days", runID)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DAY\tOPEN\tHEURISTIC\tRSI\tTRADE\tFILLED\tCASH\tSHARES\t")
	for _, d := range days {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%d\t%d\t%.2f\t%d\t\n",
			d.Index, d.Open, d.Heuristic, d.RSI, d.Decision, d.Filled, d.Cash, d.Shares)
	}
	return tw.Flush()
}
