package cmd

import (
	"maps"

	"github.com/etnz/histvar/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the CLI for shell completion. A main package calls
// Complete() on it before parsing flags; install with COMP_INSTALL=1 hvar.
func Completion() *complete.Command {
	analysis := map[string]complete.Predictor{
		"tickers":     predict.Something,
		"weights":     predict.Something,
		"from":        predict.Set{"-1y", "-2y", "-5y", "-10y"},
		"to":          predict.Set{"0d"},
		"window":      predict.Set{"1m", "3m", "6m", "1y", "2y"},
		"step":        predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"},
		"confidences": predict.Set{"0.90,0.95,0.99"},
		"notional":    predict.Something,
		"currency":    predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"},
		"min-obs":     predict.Something,
		"normalize":   predict.Nothing,
		"source":      predict.Set{"eodhd", "yahoo", "fixture"},
		"fixture-dir": predict.Dirs("*"),
	}
	source := map[string]complete.Predictor{
		"source":      analysis["source"],
		"fixture-dir": analysis["fixture-dir"],
	}

	topics, _ := docs.GetAllTopics()
	topics = append(topics, "readme")

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"var": {Flags: analysis},
			"rolling": {Flags: withFlags(analysis, map[string]complete.Predictor{
				"list": predict.Nothing,
			})},
			"report": {Flags: withFlags(analysis, map[string]complete.Predictor{
				"mode": predict.Set{"full", "rolling", "both"},
				"o":    predict.Dirs("*"),
			})},
			"fetch": {Flags: withFlags(source, map[string]complete.Predictor{
				"tickers": predict.Something,
				"from":    analysis["from"],
				"to":      analysis["to"],
				"o":       predict.Dirs("*"),
			})},
			"topic":  {Args: predict.Set(topics)},
			"assist": {Flags: source, Args: predict.Something},
		},
		Flags: map[string]complete.Predictor{
			"eodhd-api-key": predict.Something,
		},
	}
}

func withFlags(base, extra map[string]complete.Predictor) map[string]complete.Predictor {
	m := maps.Clone(base)
	maps.Copy(m, extra)
	return m
}
