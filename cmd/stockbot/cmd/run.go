package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rustyeddy/stockbot/backtest"
	"github.com/rustyeddy/stockbot/config"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one strategy over a price file",
	Long: `Run replays a daily price CSV through a single strategy, starting from
an all-cash portfolio, and prints the final report.

Settings come from the --config file (or the defaults) and may be
overridden with flags.

Examples:
  stockbot run --data AMZN.csv
  stockbot run --data AMZN.csv --strategy buy-and-hold --cash 5000
  stockbot run -f simulation.yaml --trace`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runData     string
	runStrategy string
	runCash     float64
	runSkip     bool
	runTrace    bool
	runDB       string
	runOrg      string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runData, "data", "d", "", "path to price CSV (date,open,close)")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "", "strategy name (rsi-heuristic, buy-and-hold, rsi-ma)")
	runCmd.Flags().Float64VarP(&runCash, "cash", "c", 0, "initial cash")
	runCmd.Flags().BoolVar(&runSkip, "skip-invalid", false, "skip rejected trades instead of aborting")
	runCmd.Flags().BoolVarP(&runTrace, "trace", "t", false, "print every simulated day")
	runCmd.Flags().StringVar(&runDB, "db", "", "journal the run to this SQLite database")
	runCmd.Flags().StringVar(&runOrg, "org", "", "write an org-mode summary to this file")
}

// applyOverrides copies explicitly set flags over the loaded config.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Path = runData
	}
	if flags.Changed("strategy") {
		cfg.Strategy.Name = runStrategy
	}
	if flags.Changed("cash") {
		cfg.Account.InitialCash = runCash
	}
	if flags.Changed("skip-invalid") && runSkip {
		cfg.Simulation.OnInvalidTrade = "skip"
	}
	if flags.Changed("db") {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = runDB
	}
	if flags.Changed("org") {
		cfg.Journal.OrgPath = runOrg
	}
	return cfg.Validate()
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
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
	if runTrace {
		runner.Trace = os.Stdout
	}

	rep, err := runner.RunFile(cmd.Context())
	if err != nil {
		return err
	}

	backtest.PrintReport(os.Stdout, rep)

	if cfg.Journal.OrgPath != "" {
		if err := rep.Run.WriteOrg(cfg.Journal.OrgPath); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
		fmt.Printf("\nWrote %s\n", cfg.Journal.OrgPath)
	}
	return nil
}
