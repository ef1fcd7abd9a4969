package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/rustyeddy/stockbot/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stockbot",
	Short: "A deterministic daily stock trading simulator",
	Long: `Stockbot replays a daily price history through a trading strategy and
reports how the portfolio would have done.

It provides tools for:
  - Running a single strategy over a CSV price file
  - Comparing every strategy on the same data
  - Generating and validating configuration files
  - Querying the SQLite run journal`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var (
	verbose    bool
	configPath string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every simulated day")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "f", "", "path to config file (YAML or JSON)")
}

// loadConfig reads the --config file, or the defaults when none was given.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
