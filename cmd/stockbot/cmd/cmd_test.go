package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/stockbot/journal"
	"github.com/rustyeddy/stockbot/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func writePrices(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	data := "Date,Open,Close\n" +
		"2024-01-02,10,10\n" +
		"2024-01-03,9,9\n" +
		"2024-01-04,11,11\n" +
		"2024-01-05,8,8\n" +
		"2024-01-08,12,12\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestRunAndJournal(t *testing.T) {
	prices := writePrices(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.sqlite")
	org := filepath.Join(dir, "run.org")

	err := execute(t, "run", "--data", prices, "--strategy", "buy-and-hold", "--cash", "1000", "--db", db, "--org", org)
	require.NoError(t, err)

	j, err := journal.NewSQLite(db)
	require.NoError(t, err)
	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.Len(t, runs, 1)
	assert.Equal(t, "buy-and-hold", runs[0].Strategy)
	assert.Equal(t, 1200.0, runs[0].FinalCash)

	b, err := os.ReadFile(org)
	require.NoError(t, err)
	assert.Contains(t, string(b), "* BACKTEST: buy-and-hold")

	assert.NoError(t, execute(t, "journal", "list", "--db", db))
	assert.NoError(t, execute(t, "journal", "show", runs[0].RunID, "--db", db))
	assert.NoError(t, execute(t, "journal", "days", runs[0].RunID, "--db", db))
	assert.ErrorContains(t, execute(t, "journal", "show", "missing", "--db", db), "bad run id")
	assert.ErrorContains(t, execute(t, "journal", "days", "missing", "--db", db), "bad run id")

	// a well-formed id that was never recorded
	other := id.New()
	assert.ErrorContains(t, execute(t, "journal", "show", other, "--db", db), "not found")
	assert.ErrorContains(t, execute(t, "journal", "days", other, "--db", db), "no recorded days")
}

func TestRunRejectsUnknownStrategy(t *testing.T) {
	prices := writePrices(t)
	err := execute(t, "run", "--data", prices, "--strategy", "martingale")
	assert.ErrorContains(t, err, "martingale")
}

func TestRunRejectsNonFiniteCash(t *testing.T) {
	prices := writePrices(t)
	for _, cash := range []string{"NaN", "+Inf"} {
		err := execute(t, "run", "--data", prices, "--strategy", "buy-and-hold", "--cash", cash)
		assert.ErrorContains(t, err, "account.initial_cash")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	require.NoError(t, execute(t, "config", "init", "-o", path))
	assert.FileExists(t, path)
	assert.NoError(t, execute(t, "config", "validate", "-f", path))
	configPath = ""
}
