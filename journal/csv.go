package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV writes runs and days to two CSV files.
type CSV struct {
	runs   *csv.Writer
	days   *csv.Writer
	rf, df *os.File
}

var (
	runsHeader = []string{"run_id", "created", "strategy", "dataset", "currency", "days", "initial_cash", "final_cash",
		"final_shares", "final_value", "return_pct", "trades", "buys", "sells", "rejected"}
	daysHeader = []string{"run_id", "day_index", "day", "open", "close", "heuristic", "rsi", "decision", "filled",
		"rejected", "cash", "net_worth", "shares"}
)

func NewCSV(runsPath, daysPath string) (*CSV, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	df, err := os.Create(daysPath)
	if err != nil {
		rf.Close()
		return nil, err
	}

	j := &CSV{runs: csv.NewWriter(rf), days: csv.NewWriter(df), rf: rf, df: df}
	if err := j.write(j.runs, runsHeader); err != nil {
		j.Close()
		return nil, err
	}
	if err := j.write(j.days, daysHeader); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSV) write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSV) RecordRun(r Run) error {
	return j.write(j.runs, []string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		r.Strategy,
		r.Dataset,
		r.Currency,
		strconv.Itoa(r.Days),
		f(r.InitialCash),
		f(r.FinalCash),
		strconv.Itoa(r.FinalShares),
		f(r.FinalValue),
		f(r.ReturnPct),
		strconv.Itoa(r.Trades),
		strconv.Itoa(r.Buys),
		strconv.Itoa(r.Sells),
		strconv.Itoa(r.Rejected),
	})
}

func (j *CSV) RecordDay(d DayRecord) error {
	return j.write(j.days, []string{
		d.RunID,
		strconv.Itoa(d.Index),
		strconv.Itoa(d.Date),
		f(d.Open),
		f(d.Close),
		f(d.Heuristic),
		f(d.RSI),
		strconv.Itoa(d.Decision),
		strconv.Itoa(d.Filled),
		strconv.FormatBool(d.Rejected),
		f(d.Cash),
		f(d.NetWorth),
		strconv.Itoa(d.Shares),
	})
}

func (j *CSV) Close() error {
	j.runs.Flush()
	j.days.Flush()
	rerr := j.runs.Error()
	derr := j.days.Error()

	if err := j.rf.Close(); err != nil && rerr == nil {
		rerr = err
	}
	if err := j.df.Close(); err != nil && derr == nil {
		derr = err
	}
	if rerr != nil {
		return rerr
	}
	return derr
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
