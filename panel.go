package histvar

import (
	"math"
	"slices"

	"github.com/etnz/histvar/date"
)

// Panel holds the daily adjusted close series for a set of tickers.
//
// Tickers keep their insertion order. Series are date-ascending by
// construction. A Panel is assembled once per run by a [Source] and is not
// mutated afterwards.
type Panel struct {
	tickers []string
	series  map[string]*date.History[float64]
}

// NewPanel returns a new empty price panel.
func NewPanel() *Panel {
	return &Panel{
		tickers: make([]string, 0),
		series:  make(map[string]*date.History[float64]),
	}
}

// Add records the price of a ticker on a given day, creating the ticker's
// series on first use. An existing price on that day is overwritten.
func (p *Panel) Add(ticker string, on date.Date, price float64) {
	h, ok := p.series[ticker]
	if !ok {
		h = new(date.History[float64])
		p.series[ticker] = h
		p.tickers = append(p.tickers, ticker)
	}
	h.Append(on, price)
}

// Has returns true if the panel holds at least one price for that ticker.
func (p *Panel) Has(ticker string) bool {
	h, ok := p.series[ticker]
	return ok && h.Len() > 0
}

// Series returns the price series for a ticker, or nil.
func (p *Panel) Series(ticker string) *date.History[float64] { return p.series[ticker] }

// Tickers returns the panel's tickers in insertion order.
func (p *Panel) Tickers() []string { return slices.Clone(p.tickers) }

// Dates returns the union of all trading dates across tickers, ascending.
func (p *Panel) Dates() []date.Date { return p.dates(p.tickers) }

func (p *Panel) dates(tickers []string) []date.Date {
	histories := make([]date.History[float64], 0, len(tickers))
	for _, t := range tickers {
		if h := p.series[t]; h != nil {
			histories = append(histories, *h)
		}
	}
	return slices.Collect(date.Iterate(histories...))
}

// Range returns the range from the earliest to the latest date in the panel.
func (p *Panel) Range() date.Range {
	dates := p.Dates()
	if len(dates) == 0 {
		return date.Range{}
	}
	return date.Range{From: dates[0], To: dates[len(dates)-1]}
}

// Validate confirms that the panel is complete: every requested ticker is
// present, and all tickers share exactly the same, fully populated set of
// trading dates. It returns that common ascending date index.
//
// Any violation fails with an *IncompleteDataError naming every offending
// ticker and date; the whole panel is then unusable. There is no best-effort
// continuation: silently dropping an asset would change the portfolio
// composition. Validate is idempotent and has no side effects.
func (p *Panel) Validate(requested []string) ([]date.Date, error) {
	if len(requested) == 0 {
		requested = p.tickers
	}

	incomplete := &IncompleteDataError{Gaps: make(map[string][]date.Date)}
	for _, t := range requested {
		if !p.Has(t) {
			incomplete.Missing = append(incomplete.Missing, t)
		}
	}
	if len(incomplete.Missing) > 0 {
		return nil, incomplete
	}

	// The reference calendar is the union of the requested tickers' dates: a
	// ticker lacking any union date has a gap, whether its own calendar is
	// short or misaligned.
	index := p.dates(requested)
	for _, t := range requested {
		h := p.series[t]
		for _, on := range index {
			v, ok := h.Get(on)
			if !ok || math.IsNaN(v) {
				incomplete.Gaps[t] = append(incomplete.Gaps[t], on)
			}
		}
	}
	if len(incomplete.Gaps) > 0 {
		return nil, incomplete
	}
	return index, nil
}
