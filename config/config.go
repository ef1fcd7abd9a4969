package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rustyeddy/stockbot/indicators"
	"github.com/rustyeddy/stockbot/sim"
	"github.com/rustyeddy/stockbot/strategies"
	"gopkg.in/yaml.v3"
)

// Config represents the complete simulation configuration
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Strategy   StrategyConfig   `json:"strategy" yaml:"strategy"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Data       DataConfig       `json:"data" yaml:"data"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

// AccountConfig contains the starting portfolio
type AccountConfig struct {
	Currency    string  `json:"currency" yaml:"currency"`
	InitialCash float64 `json:"initial_cash" yaml:"initial_cash"`
}

// StrategyConfig selects and tunes the strategy
type StrategyConfig struct {
	Name       string `json:"name" yaml:"name"`
	HorizonDay int    `json:"horizon_day,omitempty" yaml:"horizon_day,omitempty"`
}

// SimulationConfig contains the indicator windows and error policy
type SimulationConfig struct {
	RSIPeriod       int    `json:"rsi_period" yaml:"rsi_period"`
	HeuristicWindow int    `json:"heuristic_window" yaml:"heuristic_window"`
	OnInvalidTrade  string `json:"on_invalid_trade" yaml:"on_invalid_trade"` // "abort" or "skip"
}

// DataConfig points at the price history
type DataConfig struct {
	Path string `json:"path" yaml:"path"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type     string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	RunsFile string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DaysFile string `json:"days_file,omitempty" yaml:"days_file,omitempty"`
	DBPath   string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	OrgPath  string `json:"org_path,omitempty" yaml:"org_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if cash := c.Account.InitialCash; !(cash > 0) || math.IsInf(cash, 1) {
		return fmt.Errorf("account.initial_cash must be positive and finite")
	}
	if _, err := strategies.ByName(c.Strategy.Name, strategies.Params{}); err != nil {
		return fmt.Errorf("strategy.name: %w", err)
	}
	if c.Strategy.HorizonDay < 0 {
		return fmt.Errorf("strategy.horizon_day must not be negative")
	}
	if c.Simulation.RSIPeriod <= 0 {
		return fmt.Errorf("simulation.rsi_period must be positive")
	}
	if c.Simulation.HeuristicWindow <= 0 {
		return fmt.Errorf("simulation.heuristic_window must be positive")
	}
	switch sim.InvalidTradePolicy(c.Simulation.OnInvalidTrade) {
	case sim.AbortOnInvalid, sim.SkipInvalid:
	default:
		return fmt.Errorf("simulation.on_invalid_trade must be 'abort' or 'skip'")
	}
	switch c.Journal.Type {
	case "none", "":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.DaysFile == "" {
			return fmt.Errorf("journal runs_file and days_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// SimConfig converts the configuration into engine settings.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		InitialCash:     c.Account.InitialCash,
		RSIPeriod:       c.Simulation.RSIPeriod,
		HeuristicWindow: c.Simulation.HeuristicWindow,
		OnInvalidTrade:  sim.InvalidTradePolicy(c.Simulation.OnInvalidTrade),
	}
}

// StrategyParams converts the configuration into strategy parameters.
func (c *Config) StrategyParams() strategies.Params {
	return strategies.Params{
		RSIPeriod:  c.Simulation.RSIPeriod,
		HorizonDay: c.Strategy.HorizonDay,
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:    "USD",
			InitialCash: 10000,
		},
		Strategy: StrategyConfig{
			Name: strategies.RsiAndHeuristic,
		},
		Simulation: SimulationConfig{
			RSIPeriod:       indicators.DefaultRSIPeriod,
			HeuristicWindow: indicators.DefaultHeuristicWindow,
			OnInvalidTrade:  string(sim.AbortOnInvalid),
		},
		Data: DataConfig{
			Path: "AMZN.csv",
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
