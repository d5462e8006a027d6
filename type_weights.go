package histvar

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// WeightTolerance is how far from 1 a weight sum may drift before the vector
// is rejected.
const WeightTolerance = 1e-6

// Weights maps a ticker to its non-negative share of the portfolio value.
type Weights map[string]float64

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}

// Normalize returns a copy of w rescaled so that the weights sum to one.
// It fails when the sum is zero, as there is nothing to rescale.
func (w Weights) Normalize() (Weights, error) {
	sum := w.Sum()
	if sum == 0 {
		return nil, fmt.Errorf("cannot normalize weights: sum is zero")
	}
	out := make(Weights, len(w))
	for t, v := range w {
		out[t] = v / sum
	}
	return out, nil
}

// check verifies that the weight keys exactly match the given tickers and
// that the sum is 1 within WeightTolerance.
func (w Weights) check(tickers []string) error {
	mismatch := &WeightMismatchError{}
	for _, t := range tickers {
		if _, ok := w[t]; !ok {
			mismatch.Missing = append(mismatch.Missing, t)
		}
	}
	known := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		known[t] = true
	}
	for t := range w {
		if !known[t] {
			mismatch.Extra = append(mismatch.Extra, t)
		}
	}
	sort.Strings(mismatch.Missing)
	sort.Strings(mismatch.Extra)
	if len(mismatch.Missing) > 0 || len(mismatch.Extra) > 0 {
		return mismatch
	}
	if sum := w.Sum(); math.Abs(sum-1) > WeightTolerance {
		return &WeightMismatchError{Sum: sum}
	}
	return nil
}

// ParseWeights parses a weight vector like "AAPL=0.6,MSFT=0.4".
// Weights must be non-negative numbers; duplicate tickers are rejected.
func ParseWeights(str string) (Weights, error) {
	w := make(Weights)
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ticker, value, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("invalid weight %q want TICKER=VALUE", part)
		}
		ticker = strings.TrimSpace(ticker)
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %s: %w", ticker, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("invalid weight for %s: %v is negative", ticker, v)
		}
		if _, dup := w[ticker]; dup {
			return nil, fmt.Errorf("duplicate weight for %s", ticker)
		}
		w[ticker] = v
	}
	if len(w) == 0 {
		return nil, fmt.Errorf("empty weight vector %q", str)
	}
	return w, nil
}
