package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/stockbot/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, 10000.0, cfg.Account.InitialCash)
	assert.Equal(t, "rsi-heuristic", cfg.Strategy.Name)
	assert.Equal(t, 14, cfg.Simulation.RSIPeriod)
	assert.Equal(t, 5, cfg.Simulation.HeuristicWindow)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"missing currency", func(c *Config) { c.Account.Currency = "" }, "account.currency is required"},
		{"zero cash", func(c *Config) { c.Account.InitialCash = 0 }, "account.initial_cash must be positive"},
		{"nan cash", func(c *Config) { c.Account.InitialCash = math.NaN() }, "account.initial_cash must be positive"},
		{"infinite cash", func(c *Config) { c.Account.InitialCash = math.Inf(1) }, "account.initial_cash must be positive"},
		{"unknown strategy", func(c *Config) { c.Strategy.Name = "martingale" }, "invalid strategy"},
		{"negative horizon", func(c *Config) { c.Strategy.HorizonDay = -1 }, "strategy.horizon_day"},
		{"zero rsi period", func(c *Config) { c.Simulation.RSIPeriod = 0 }, "simulation.rsi_period must be positive"},
		{"zero heuristic window", func(c *Config) { c.Simulation.HeuristicWindow = 0 }, "simulation.heuristic_window must be positive"},
		{"bad policy", func(c *Config) { c.Simulation.OnInvalidTrade = "retry" }, "simulation.on_invalid_trade"},
		{"skip policy", func(c *Config) { c.Simulation.OnInvalidTrade = "skip" }, ""},
		{"csv without files", func(c *Config) { c.Journal.Type = "csv" }, "runs_file and days_file required"},
		{"csv with files", func(c *Config) {
			c.Journal = JournalConfig{Type: "csv", RunsFile: "runs.csv", DaysFile: "days.csv"}
		}, ""},
		{"sqlite without db", func(c *Config) { c.Journal.Type = "sqlite" }, "db_path required"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"yml format", ".yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Strategy = StrategyConfig{Name: "buy-and-hold", HorizonDay: 250}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))
			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := `
account:
  currency: USD
  initial_cash: 2500
strategy:
  name: rsi-ma
simulation:
  rsi_period: 14
  heuristic_window: 5
  on_invalid_trade: skip
data:
  path: AMZN.csv
journal:
  type: sqlite
  db_path: runs.db
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, cfg.Account.InitialCash)
	assert.Equal(t, "rsi-ma", cfg.Strategy.Name)
	assert.Equal(t, "runs.db", cfg.Journal.DBPath)

	sc := cfg.SimConfig()
	assert.Equal(t, 2500.0, sc.InitialCash)
	assert.Equal(t, sim.SkipInvalid, sc.OnInvalidTrade)
	assert.Equal(t, 14, cfg.StrategyParams().RSIPeriod)
}

func TestLoadInvalid(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account: [1, 2"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  currency: USD\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")

	path = filepath.Join(t.TempDir(), "nan.yaml")
	data := "account:\n  currency: USD\n  initial_cash: .nan\nstrategy:\n  name: buy-and-hold\n" +
		"simulation:\n  rsi_period: 14\n  heuristic_window: 5\n  on_invalid_trade: abort\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "account.initial_cash")
}
