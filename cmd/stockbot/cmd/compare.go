package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rustyeddy/stockbot/backtest"
	"github.com/rustyeddy/stockbot/market"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [strategy...]",
	Short: "Run several strategies over the same price file",
	Long: `Compare runs each strategy over the same data, each from a fresh
all-cash portfolio, and prints one row per strategy. With no arguments
every registered strategy is run.

Examples:
  stockbot compare --data AMZN.csv
  stockbot compare --data AMZN.csv rsi-heuristic buy-and-hold`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&runData, "data", "d", "", "path to price CSV (date,open,close)")
	compareCmd.Flags().Float64VarP(&runCash, "cash", "c", 0, "initial cash")
	compareCmd.Flags().BoolVar(&runSkip, "skip-invalid", false, "skip rejected trades instead of aborting")
	compareCmd.Flags().StringVar(&runDB, "db", "", "journal every run to this SQLite database")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	series, err := market.LoadCSV(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Data.Path, err)
	}

	j, err := backtest.OpenJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	runner := &backtest.Runner{
		Config:  cfg,
		Journal: j,
		Logger:  slog.Default(),
	}
	reps, err := runner.Compare(cmd.Context(), series, cfg.Data.Path, args)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d days\n\n", cfg.Data.Path, len(series))
	backtest.PrintComparison(os.Stdout, reps)
	return nil
}
