package histvar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/histvar/date"
)

// This file defines the error kinds an analysis can fail with. All of them
// abort the run: no partial or best-effort result is ever produced from
// invalid input.

// IncompleteDataError reports a price panel whose tickers do not share a
// single fully populated calendar.
type IncompleteDataError struct {
	Missing []string               // requested tickers absent from the panel
	Gaps    map[string][]date.Date // ticker to trading dates absent from its series
}

func (e *IncompleteDataError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("no data for ticker(s) %s", strings.Join(e.Missing, ", ")))
	}
	tickers := make([]string, 0, len(e.Gaps))
	for t := range e.Gaps {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	for _, t := range tickers {
		parts = append(parts, fmt.Sprintf("%s has no price on %s", t, days(e.Gaps[t])))
	}
	return "incomplete panel: " + strings.Join(parts, "; ")
}

// days formats a list of dates, eliding all but the first three.
func days(dates []date.Date) string {
	show := dates
	var more string
	if len(show) > 3 {
		show = show[:3]
		more = fmt.Sprintf(" and %d more", len(dates)-3)
	}
	strs := make([]string, len(show))
	for i, d := range show {
		strs[i] = d.String()
	}
	return strings.Join(strs, ", ") + more
}

// InvalidPriceError reports a non-positive price, for which a return is
// undefined.
type InvalidPriceError struct {
	Ticker string
	On     date.Date
	Price  float64
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price %g for %s on %s: must be strictly positive", e.Price, e.Ticker, e.On)
}

// WeightMismatchError reports a weight vector that does not line up with the
// panel's tickers, or does not sum to one.
type WeightMismatchError struct {
	Missing []string // tickers with returns but no weight
	Extra   []string // tickers with a weight but no returns
	Sum     float64  // the actual sum, when it is off by more than the tolerance
}

func (e *WeightMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("no weight for %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("weight for unknown ticker(s) %s", strings.Join(e.Extra, ", ")))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("weights sum to %v, want 1 within %v", e.Sum, WeightTolerance))
	}
	return "weight mismatch: " + strings.Join(parts, "; ")
}

// InsufficientDataError reports a return sample too small for a meaningful
// quantile.
type InsufficientDataError struct {
	Got    int
	Want   int
	Window date.Range
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data over %s: %d returns, want at least %d", e.Window, e.Got, e.Want)
}

// DataUnavailableError reports a data source failure. It wraps the cause
// unmodified.
type DataUnavailableError struct {
	Source  string
	Tickers []string
	Err     error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: no data for %s: %v", e.Source, strings.Join(e.Tickers, ", "), e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }
