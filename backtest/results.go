package backtest

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/stockbot/journal"
)

// PrintReport writes a human readable summary of a single run.
func PrintReport(w io.Writer, rep Report) {
	r := rep.Run
	money := func(x float64) string { return journal.FormatMoney(x, r.Currency) }

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Created:       %s\n", r.Created.Format(time.RFC3339))
	fmt.Fprintf(w, "Strategy:      %s\n", r.Strategy)
	fmt.Fprintf(w, "Dataset:       %s\n", r.Dataset)
	fmt.Fprintf(w, "Days:          %d\n", r.Days)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", r.Trades)
	fmt.Fprintf(w, "Buys:          %d\n", r.Buys)
	fmt.Fprintf(w, "Sells:         %d\n", r.Sells)
	if r.Rejected > 0 {
		fmt.Fprintf(w, "Rejected:      %d\n", r.Rejected)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Portfolio")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Cash:    %s\n", money(r.InitialCash))
	fmt.Fprintf(w, "End Cash:      %s\n", money(r.FinalCash))
	fmt.Fprintf(w, "Shares Held:   %d\n", r.FinalShares)
	fmt.Fprintf(w, "Liquidation:   %s\n", money(r.FinalValue))
	fmt.Fprintf(w, "Return:        %.2f%%\n", r.ReturnPct)

	fmt.Fprintln(w)
	fmt.Fprintln(w, Summary(r))
}

// Summary is the one line report: starting and final net worth.
func Summary(r journal.Run) string {
	return fmt.Sprintf("starting net worth %s, final net worth %s",
		journal.FormatMoney(r.InitialCash, r.Currency), journal.FormatMoney(r.FinalCash, r.Currency))
}

// PrintComparison writes one row per strategy.
func PrintComparison(w io.Writer, reps []Report) {
	fmt.Fprintf(w, "%-15s %15s %15s %8s %15s %9s\n", "strategy", "start", "final", "shares", "liquidation", "return")
	fmt.Fprintln(w, "-------------------------------------------------------------------------------------")
	for _, rep := range reps {
		r := rep.Run
		fmt.Fprintf(w, "%-15s %15s %15s %8d %15s %8.2f%%\n",
			r.Strategy,
			journal.FormatMoney(r.InitialCash, r.Currency),
			journal.FormatMoney(r.FinalCash, r.Currency),
			r.FinalShares,
			journal.FormatMoney(r.FinalValue, r.Currency),
			r.ReturnPct,
		)
	}
}
