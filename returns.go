package histvar

import (
	"sort"

	"github.com/etnz/histvar/date"
)

// Returns derives each ticker's simple daily return series from the panel:
// r[i] = p[i]/p[i-1] - 1, dated at the later price. The series is one point
// shorter than the price series, as the first date has no return.
//
// It fails with an *InvalidPriceError on any price that is not strictly
// positive, for which a return is undefined. Returns is a pure function of
// the panel.
func Returns(p *Panel) (map[string]*date.History[float64], error) {
	out := make(map[string]*date.History[float64], len(p.tickers))
	for _, t := range p.tickers {
		r := new(date.History[float64])
		prev := 0.0
		first := true
		for on, price := range p.series[t].Values() {
			// A NaN price fails this check too.
			if !(price > 0) {
				return nil, &InvalidPriceError{Ticker: t, On: on, Price: price}
			}
			if !first {
				r.Append(on, price/prev-1)
			}
			prev, first = price, false
		}
		out[t] = r
	}
	return out, nil
}

// PortfolioReturns combines per-ticker return series into the portfolio
// return series: on each date common to all tickers, the weight-weighted sum
// of the asset returns.
//
// It fails with a *WeightMismatchError when the weight keys do not exactly
// match the tickers, or when the weights do not sum to 1 within
// WeightTolerance.
func PortfolioReturns(byTicker map[string]*date.History[float64], w Weights) (*date.History[float64], error) {
	tickers := make([]string, 0, len(byTicker))
	for t := range byTicker {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	if err := w.check(tickers); err != nil {
		return nil, err
	}

	portfolio := new(date.History[float64])
	if len(tickers) == 0 {
		return portfolio, nil
	}

	// On a validated panel every series has the same dates; intersecting
	// keeps the function correct on its own terms for any input.
	for on := range byTicker[tickers[0]].Values() {
		sum := 0.0
		common := true
		for _, t := range tickers {
			r, ok := byTicker[t].Get(on)
			if !ok {
				common = false
				break
			}
			sum += w[t] * r
		}
		if common {
			portfolio.Append(on, sum)
		}
	}
	return portfolio, nil
}
