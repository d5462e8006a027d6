package histvar

import (
	"fmt"
	"slices"

	"github.com/etnz/histvar/date"
)

// Mode selects which VaR computations a run performs.
type Mode int

const (
	ModeBoth Mode = iota
	ModeFull
	ModeRolling
)

func (m Mode) String() string {
	switch m {
	case ModeBoth:
		return "both"
	case ModeFull:
		return "full"
	case ModeRolling:
		return "rolling"
	}
	return "unknown"
}

// ParseMode parses "full", "rolling" or "both".
func ParseMode(str string) (Mode, error) {
	switch str {
	case "both":
		return ModeBoth, nil
	case "full":
		return ModeFull, nil
	case "rolling":
		return ModeRolling, nil
	}
	return ModeBoth, fmt.Errorf("unknown mode %q (want full, rolling or both)", str)
}

// Config holds the parameters of one analysis run.
//
// The zero value of every optional field means its default: an equal-weight
// portfolio, DefaultConfidences, a two-year window stepped daily, a
// EUR 100,000 notional, both computations, DefaultMinObservations.
type Config struct {
	// Tickers to load, in portfolio order.
	Tickers []string
	// Weights per ticker; nil for an equal-weight portfolio.
	Weights Weights
	// Range of price history to load.
	Range date.Range
	// Window is the rolling window calendar length.
	Window date.Span
	// Step is the stride between rolling window ends.
	Step date.Period
	// Confidences are the VaR levels to compute.
	Confidences []Confidence
	// Notional converts percent VaR into a currency loss.
	Notional Money
	// Mode selects full-period VaR, rolling VaR, or both.
	Mode Mode
	// MinObservations is the smallest accepted return sample.
	MinObservations int
	// Normalize rescales weights to sum to one instead of rejecting them.
	Normalize bool
}

// withDefaults returns the config completed with defaults, or the first
// configuration error.
func (c Config) withDefaults() (Config, error) {
	if len(c.Tickers) == 0 {
		return c, fmt.Errorf("no tickers configured")
	}
	seen := make(map[string]bool, len(c.Tickers))
	for _, t := range c.Tickers {
		if t == "" {
			return c, fmt.Errorf("empty ticker")
		}
		if seen[t] {
			return c, fmt.Errorf("duplicate ticker %s", t)
		}
		seen[t] = true
	}
	if c.Range == (date.Range{}) {
		return c, fmt.Errorf("no price range configured")
	}
	if c.Weights == nil {
		c.Weights = make(Weights, len(c.Tickers))
		for _, t := range c.Tickers {
			c.Weights[t] = 1 / float64(len(c.Tickers))
		}
	}
	if len(c.Confidences) == 0 {
		c.Confidences = slices.Clone(DefaultConfidences)
	}
	if c.Window.IsZero() {
		c.Window = date.Span{Years: 2}
	}
	if c.Notional.IsZero() {
		c.Notional = M(100000, "EUR")
	}
	if c.MinObservations < DefaultMinObservations {
		c.MinObservations = DefaultMinObservations
	}
	return c, nil
}
