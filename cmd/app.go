// Package cmd implements the CLI application to analyse portfolio risk.
package cmd

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/histvar"
	"github.com/etnz/histvar/date"
	"github.com/google/subcommands"
)

// Commands lists the subcommands in registration order.
// A main package ranges over Commands to register them, and Execute() the
// user-selected one.
var Commands = []subcommands.Command{
	&varCmd{},
	&rollingCmd{},
	&reportCmd{},
	&fetchCmd{},
	&topicCmd{},
	&assistCmd{},
}

// newSource builds the price source selected on the command line.
func newSource(name, fixtureDir string) (histvar.Source, error) {
	switch name {
	case "eodhd":
		return &histvar.EODHDSource{}, nil
	case "yahoo":
		return &histvar.YahooSource{}, nil
	case "fixture":
		if fixtureDir == "" {
			return nil, fmt.Errorf("-source fixture requires -fixture-dir")
		}
		return &histvar.FixtureSource{Dir: fixtureDir}, nil
	}
	return nil, fmt.Errorf("unknown source %q (want eodhd, yahoo or fixture)", name)
}

// analysisFlags holds the flags shared by the analysis subcommands.
type analysisFlags struct {
	tickers     string
	weights     string
	from        string
	to          string
	window      string
	step        string
	confidences string
	notional    float64
	currency    string
	minObs      int
	normalize   bool
	source      string
	fixtureDir  string
}

func (c *analysisFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.tickers, "tickers", "", "comma-separated tickers for an equal-weight portfolio")
	f.StringVar(&c.weights, "weights", "", "portfolio weights as TICKER=VALUE pairs, e.g. \"MC.PA=0.6,OR.PA=0.4\"")
	f.StringVar(&c.from, "from", "-5y", "start of the price history. See 'topic dates' for supported formats.")
	f.StringVar(&c.to, "to", "0d", "end of the price history. See 'topic dates' for supported formats.")
	f.StringVar(&c.window, "window", "2y", "rolling window calendar length, e.g. 6m, 1y, 2y")
	f.StringVar(&c.step, "step", "daily", "stride between rolling windows: daily, weekly, monthly, quarterly or yearly")
	f.StringVar(&c.confidences, "confidences", "", "comma-separated confidence levels, e.g. 0.90,0.95,0.99")
	f.Float64Var(&c.notional, "notional", 100000, "portfolio value used to convert percent VaR into a currency loss")
	f.StringVar(&c.currency, "currency", "EUR", "currency of the notional (ISO 4217 code)")
	f.IntVar(&c.minObs, "min-obs", histvar.DefaultMinObservations, "smallest accepted daily return sample")
	f.BoolVar(&c.normalize, "normalize", false, "rescale weights to sum to one instead of rejecting them")
	c.setSourceFlags(f)
}

func (c *analysisFlags) setSourceFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "eodhd", "price source: eodhd, yahoo or fixture")
	f.StringVar(&c.fixtureDir, "fixture-dir", "", "directory of JSONL price fixtures for -source fixture")
}

func (c *analysisFlags) newSource() (histvar.Source, error) {
	return newSource(c.source, c.fixtureDir)
}

// config assembles the analysis configuration from the parsed flags.
func (c *analysisFlags) config(mode histvar.Mode) (cfg histvar.Config, err error) {
	cfg.Mode = mode

	switch {
	case c.weights != "":
		if cfg.Weights, err = histvar.ParseWeights(c.weights); err != nil {
			return cfg, err
		}
		for t := range cfg.Weights {
			cfg.Tickers = append(cfg.Tickers, t)
		}
		sort.Strings(cfg.Tickers)
	case c.tickers != "":
		cfg.Tickers = splitList(c.tickers)
	default:
		return cfg, fmt.Errorf("one of -weights or -tickers is required")
	}

	from, err := date.Parse(c.from)
	if err != nil {
		return cfg, fmt.Errorf("invalid -from: %w", err)
	}
	to, err := date.Parse(c.to)
	if err != nil {
		return cfg, fmt.Errorf("invalid -to: %w", err)
	}
	cfg.Range = date.NewRange(from, to)

	if cfg.Window, err = date.ParseSpan(c.window); err != nil {
		return cfg, fmt.Errorf("invalid -window: %w", err)
	}
	if cfg.Step, err = date.ParsePeriod(c.step); err != nil {
		return cfg, fmt.Errorf("invalid -step: %w", err)
	}
	if c.confidences != "" {
		if cfg.Confidences, err = histvar.ParseConfidences(c.confidences); err != nil {
			return cfg, fmt.Errorf("invalid -confidences: %w", err)
		}
	}
	cfg.Notional = histvar.M(c.notional, strings.ToUpper(c.currency))
	cfg.MinObservations = c.minObs
	cfg.Normalize = c.normalize
	return cfg, nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(str string) []string {
	var list []string
	for _, s := range strings.Split(str, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}
	return list
}
