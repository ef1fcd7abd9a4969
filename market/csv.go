package market

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrIngestion is wrapped by every error LoadCSV and ReadCSV return for bad
// price data.
var ErrIngestion = errors.New("ingestion error")

// IngestionError describes the row and column that could not be loaded.
type IngestionError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *IngestionError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: bad %s %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *IngestionError) Unwrap() []error {
	return []error{ErrIngestion, e.Err}
}

// LoadCSV reads a daily price file. See ReadCSV for the accepted layout.
func LoadCSV(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IngestionError{Err: err}
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses daily price rows:
//
//	date,open,close
//	Date,Open,High,Low,Close,Adj Close,Volume
//
// A header row is required. When it names "open" and "close" columns those are
// used, otherwise open and close are taken from columns 1 and 2. The date
// column is ignored and days are numbered from 1 in file order. Any malformed
// row aborts the load and nothing is returned.
func ReadCSV(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &IngestionError{Line: 1, Err: ErrEmptySeries}
	}
	if err != nil {
		return nil, &IngestionError{Line: 1, Err: err}
	}

	openCol, closeCol := 1, 2
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "open":
			openCol = i
		case "close":
			closeCol = i
		}
	}

	var out Series
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &IngestionError{Line: pe.Line, Err: err}
			}
			return nil, &IngestionError{Line: line + 1, Err: err}
		}
		line, _ = cr.FieldPos(0)

		open, err := parseField(row, openCol, "open", line)
		if err != nil {
			return nil, err
		}
		closeV, err := parseField(row, closeCol, "close", line)
		if err != nil {
			return nil, err
		}

		out = append(out, Record{Day: len(out) + 1, Open: open, Close: closeV})
	}

	if len(out) == 0 {
		return nil, &IngestionError{Line: line + 1, Err: ErrEmptySeries}
	}
	return out, nil
}

func parseField(row []string, col int, name string, line int) (float64, error) {
	if col >= len(row) {
		return 0, &IngestionError{Line: line, Column: name, Err: errors.New("missing field")}
	}
	raw := strings.TrimSpace(row[col])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &IngestionError{Line: line, Column: name, Value: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &IngestionError{Line: line, Column: name, Value: raw, Err: errors.New("not a finite number")}
	}
	if v <= 0 {
		return 0, &IngestionError{Line: line, Column: name, Value: raw, Err: errors.New("must be positive")}
	}
	return v, nil
}
