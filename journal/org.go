package journal

import (
	"bytes"
	"os"
	"text/template"
	"time"
)

var runOrgFuncs = template.FuncMap{
	"money": FormatMoney,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var runOrgTemplate = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// Org renders the run as an Org-mode block.
func (r Run) Org() (string, error) {
	buf := new(bytes.Buffer)
	if err := runOrgTemplate.Execute(buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteOrg writes the Org-mode report of the run to path.
func (r Run) WriteOrg(path string) error {
	s, err := r.Org()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const RunOrgTemplate = `* BACKTEST: {{.Strategy}} {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}}
:PROPERTIES:
:RUN_ID:       {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:STRATEGY:     {{.Strategy}}
:DATASET:      {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}}
:DAYS:         {{.Days}}
:START_CASH:   {{printf "%.2f" .InitialCash}}
:END_CASH:     {{printf "%.2f" .FinalCash}}
:END_SHARES:   {{.FinalShares}}
:END_VALUE:    {{printf "%.2f" .FinalValue}}
:RETURN_PCT:   {{printf "%.2f" .ReturnPct}}
:TRADES:       {{.Trades}}
:CREATED:      [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Starting net worth: *{{money .InitialCash .Currency}}*
- Final net worth:    *{{money .FinalCash .Currency}}*
- Holdings value:     *{{money .FinalValue .Currency}}* ({{.FinalShares}} shares at last close)
- Return:             *{{printf "%.2f" .ReturnPct}}%*

** Trade Distribution
| Outcome  | Count |
|----------+-------|
| Buys     | {{.Buys}} |
| Sells    | {{.Sells}} |
| Rejected | {{.Rejected}} |
| Total    | {{.Trades}} |
{{- if .Config }}

** Configuration
#+begin_src json
{{printf "%s" .Config}}
#+end_src
{{- end }}
{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
