package histvar

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/etnz/histvar/date"
)

// DefaultMinObservations is the smallest return sample accepted for an
// empirical quantile: below two points the quantile is not an order
// statistic over anything.
const DefaultMinObservations = 2

// DefaultConfidences are the levels used when a run specifies none.
var DefaultConfidences = []Confidence{0.90, 0.95, 0.99}

// Confidence is a VaR confidence level in (0,1): the loss is expected to
// exceed the VaR with probability 1-level.
type Confidence float64

func (c Confidence) String() string { return fmt.Sprintf("%g%%", 100*float64(c)) }

// ParseConfidences parses a comma-separated list of levels like "0.95,0.99".
func ParseConfidences(str string) ([]Confidence, error) {
	var confs []Confidence
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid confidence level %q: %w", part, err)
		}
		confs = append(confs, Confidence(c))
	}
	if len(confs) == 0 {
		return nil, fmt.Errorf("empty confidence list %q", str)
	}
	return confs, nil
}

// VaRResult is the value at risk of the portfolio over one window at one
// confidence level.
//
// VaRPercent is the negated empirical quantile of the window's returns, in
// percentage points: a positive value is a loss. When the quantile return
// is itself positive the VaR is negative, a gain; nothing is clamped.
// VaRCurrency is VaRPercent applied to the portfolio notional.
type VaRResult struct {
	Confidence  Confidence
	Window      date.Range
	VaRPercent  Percent
	VaRCurrency Money
}

// FullPeriodVaR computes the historical-simulation VaR of the entire return
// series, once per confidence level.
//
// The empirical quantile at probability 1-c is the value at rank
// floor((1-c)*N) of the ascending-sorted returns. The result window is the
// full span of the series. minObs below DefaultMinObservations is raised to
// it; a series shorter than the minimum fails with an
// *InsufficientDataError.
//
// The computation is historical simulation: deterministic, identical inputs
// give bit-identical results. Results are ordered by confidence ascending.
func FullPeriodVaR(returns *date.History[float64], confidences []Confidence, notional Money, minObs int) ([]VaRResult, error) {
	if minObs < DefaultMinObservations {
		minObs = DefaultMinObservations
	}
	confs, err := checkConfidences(confidences)
	if err != nil {
		return nil, err
	}

	n := returns.Len()
	if n < minObs {
		e := &InsufficientDataError{Got: n, Want: minObs}
		if n > 0 {
			first, _ := returns.First()
			last, _ := returns.Latest()
			e.Window = date.Range{From: first, To: last}
		}
		return nil, e
	}

	first, _ := returns.First()
	last, _ := returns.Latest()
	window := date.Range{From: first, To: last}

	sample := make([]float64, 0, n)
	for _, v := range returns.Values() {
		sample = append(sample, v)
	}
	sort.Float64s(sample)

	results := make([]VaRResult, 0, len(confs))
	for _, c := range confs {
		results = append(results, varAt(sample, c, window, notional))
	}
	return results, nil
}

// varAt computes one VaRResult from an ascending-sorted sample.
func varAt(sorted []float64, c Confidence, window date.Range, notional Money) VaRResult {
	q := sorted[rank(1-float64(c), len(sorted))]
	return VaRResult{
		Confidence:  c,
		Window:      window,
		VaRPercent:  Percent(-100 * q),
		VaRCurrency: notional.Scale(-q),
	}
}

// rank returns the index of the empirical quantile at probability p in an
// ascending sample of n points: floor(p*n), clamped to the sample. The nudge
// keeps mathematically integral products (such as 0.20*5) from flooring one
// rank low in float64 arithmetic.
func rank(p float64, n int) int {
	r := int(math.Floor(p*float64(n) + 1e-9))
	if r < 0 {
		r = 0
	}
	if r >= n {
		r = n - 1
	}
	return r
}

// checkConfidences sorts and deduplicates the levels, substituting the
// defaults for an empty list and rejecting out-of-range values.
func checkConfidences(confidences []Confidence) ([]Confidence, error) {
	if len(confidences) == 0 {
		confidences = DefaultConfidences
	}
	confs := slices.Clone(confidences)
	slices.Sort(confs)
	confs = slices.Compact(confs)
	for _, c := range confs {
		if c <= 0 || c >= 1 {
			return nil, fmt.Errorf("confidence level %v out of range (0,1)", float64(c))
		}
	}
	return confs, nil
}
