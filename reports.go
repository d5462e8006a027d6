package histvar

import (
	"log"
	"math"
	"slices"
	"time"

	"github.com/etnz/histvar/date"
)

// VaRReport is the outcome of one analysis run, ready for rendering.
type VaRReport struct {
	// Range is the span of prices actually loaded.
	Range date.Range
	// Timestamp is the report generation time.
	Timestamp time.Time
	// Source names the price provider.
	Source string

	Tickers         []string
	Weights         Weights
	Notional        Money
	Window          date.Span
	Step            date.Period
	Confidences     []Confidence
	MinObservations int

	// Returns is the portfolio daily return series.
	Returns *date.History[float64]
	// Full holds the full-period results, one per confidence level.
	Full []VaRResult
	// Rolling holds the rolling window results, ordered by window end
	// then confidence.
	Rolling []VaRResult
}

// NewVaRReport loads prices from the source and runs the configured
// analysis over them: validate the panel, derive portfolio returns, and
// compute the VaR in the configured mode.
func NewVaRReport(src Source, cfg Config) (*VaRReport, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if cfg.Normalize {
		sum := cfg.Weights.Sum()
		if cfg.Weights, err = cfg.Weights.Normalize(); err != nil {
			return nil, err
		}
		if math.Abs(sum-1) > WeightTolerance {
			log.Printf("rescaling weights to sum to one (was %g)", sum)
		}
	}

	panel, err := src.Prices(cfg.Tickers, cfg.Range)
	if err != nil {
		return nil, err
	}
	if _, err := panel.Validate(cfg.Tickers); err != nil {
		return nil, err
	}

	byTicker, err := Returns(panel)
	if err != nil {
		return nil, err
	}
	series := make(map[string]*date.History[float64], len(cfg.Tickers))
	for _, t := range cfg.Tickers {
		series[t] = byTicker[t]
	}
	portfolio, err := PortfolioReturns(series, cfg.Weights)
	if err != nil {
		return nil, err
	}

	report := &VaRReport{
		Range:           panel.Range(),
		Timestamp:       time.Now(),
		Source:          src.Name(),
		Tickers:         cfg.Tickers,
		Weights:         cfg.Weights,
		Notional:        cfg.Notional,
		Window:          cfg.Window,
		Step:            cfg.Step,
		Confidences:     cfg.Confidences,
		MinObservations: cfg.MinObservations,
		Returns:         portfolio,
	}
	if cfg.Mode != ModeRolling {
		if report.Full, err = FullPeriodVaR(portfolio, cfg.Confidences, cfg.Notional, cfg.MinObservations); err != nil {
			return nil, err
		}
	}
	if cfg.Mode != ModeFull {
		if report.Rolling, err = RollingVaR(portfolio, cfg.Window, cfg.Step, cfg.Confidences, cfg.Notional, cfg.MinObservations); err != nil {
			return nil, err
		}
		if len(report.Rolling) == 0 {
			log.Printf("no %s window holds %d returns, rolling VaR is empty", cfg.Window, cfg.MinObservations)
		}
	}
	return report, nil
}

// Observations returns the number of portfolio returns in the run.
func (r *VaRReport) Observations() int { return r.Returns.Len() }

// WorstDay returns the date and value of the lowest portfolio return.
func (r *VaRReport) WorstDay() (date.Date, Percent) {
	day, value := date.Date{}, math.Inf(1)
	for on, v := range r.Returns.Values() {
		if v < value {
			day, value = on, v
		}
	}
	return day, Percent(100 * value)
}

// BestDay returns the date and value of the highest portfolio return.
func (r *VaRReport) BestDay() (date.Date, Percent) {
	day, value := date.Date{}, math.Inf(-1)
	for on, v := range r.Returns.Values() {
		if v > value {
			day, value = on, v
		}
	}
	return day, Percent(100 * value)
}

// MeanReturn returns the arithmetic mean of the portfolio returns.
func (r *VaRReport) MeanReturn() Percent {
	if r.Returns.Len() == 0 {
		return Percent(math.NaN())
	}
	var sum float64
	for _, v := range r.Returns.Values() {
		sum += v
	}
	return Percent(100 * sum / float64(r.Returns.Len()))
}

// RollingLevels returns the distinct confidence levels present in the
// rolling results, ascending.
func (r *VaRReport) RollingLevels() []Confidence {
	var levels []Confidence
	for _, res := range r.Rolling {
		if !slices.Contains(levels, res.Confidence) {
			levels = append(levels, res.Confidence)
		}
	}
	slices.Sort(levels)
	return levels
}

// RollingSeries returns the rolling VaR at one confidence level as two
// histories indexed by window end: percent VaR and currency VaR.
func (r *VaRReport) RollingSeries(c Confidence) (percent, currency *date.History[float64]) {
	percent, currency = new(date.History[float64]), new(date.History[float64])
	for _, res := range r.Rolling {
		if res.Confidence != c {
			continue
		}
		percent.Append(res.Window.To, float64(res.VaRPercent))
		currency.Append(res.Window.To, res.VaRCurrency.AsFloat())
	}
	return percent, currency
}
