package histvar

import (
	"fmt"
	"sort"

	"github.com/etnz/histvar/date"
)

// windowStartSlack is how many calendar days a window's nominal start may
// precede the first return. Three days covers the widest gap between two
// consecutive trading days in a regular week, so the earliest emitted
// window still starts within one trading day of the series start.
const windowStartSlack = 3

// RollingVaR computes the historical-simulation VaR over calendar windows
// sliding through the return series.
//
// Window ends are the series' own dates: a cursor starts on the final date
// and steps backward one `step` at a time (a day by default), snapping to
// the latest return date at or before it, so the last window always ends
// exactly on the final return. For a window end t the nominal window is
// [t-window, t]; the cursor stops once the nominal start falls more than
// windowStartSlack calendar days before the first return, and the reported
// start is the earliest return date at or after the nominal start, so
// emitted windows never reach outside the observed range.
//
// Windows holding fewer than minObs returns are skipped entirely. That is
// a data-sufficiency gate, never an approximation: a kept window is always
// computed from every return it spans.
//
// Results are ordered by window end ascending, then confidence ascending.
func RollingVaR(returns *date.History[float64], window date.Span, step date.Period, confidences []Confidence, notional Money, minObs int) ([]VaRResult, error) {
	if window.IsZero() {
		return nil, fmt.Errorf("rolling window has no length")
	}
	if minObs < DefaultMinObservations {
		minObs = DefaultMinObservations
	}
	confs, err := checkConfidences(confidences)
	if err != nil {
		return nil, err
	}
	if returns.Len() == 0 {
		return nil, &InsufficientDataError{Got: 0, Want: minObs}
	}

	first, _ := returns.First()
	last, _ := returns.Latest()
	earliest := first.Add(-windowStartSlack)

	var results []VaRResult
	var prev date.Date
	for k := 0; ; k++ {
		anchor, _, ok := returns.AsOf(stepBack(last, k, step))
		if !ok {
			break // the cursor fell before the first return
		}
		nominal := window.Back(anchor)
		if nominal.Before(earliest) {
			break
		}
		// A weekly or longer step can snap two cursors to the same date.
		if k > 0 && anchor == prev {
			continue
		}
		prev = anchor

		var sample []float64
		var start date.Date
		for d, v := range returns.Over(date.Range{From: nominal, To: anchor}) {
			if len(sample) == 0 {
				start = d
			}
			sample = append(sample, v)
		}
		if len(sample) < minObs {
			continue
		}
		sort.Float64s(sample)
		w := date.Range{From: start, To: anchor}
		for _, c := range confs {
			results = append(results, varAt(sample, c, w, notional))
		}
	}

	// Windows were collected newest first.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Window.To != results[j].Window.To {
			return results[i].Window.To.Before(results[j].Window.To)
		}
		return results[i].Confidence < results[j].Confidence
	})
	return results, nil
}

// stepBack returns the k-th cursor before day, clamping to the end of the
// month when calendar arithmetic overflows: one month before Mar 31 is
// Feb 28, not Mar 3.
func stepBack(day date.Date, k int, step date.Period) date.Date {
	c := day.Shift(-k, step)
	if step == date.Daily || step == date.Weekly || c.Day() == day.Day() {
		return c
	}
	return c.StartOf(date.Monthly).Add(-1)
}
