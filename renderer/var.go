package renderer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/histvar"
	md "github.com/nao1215/markdown"
)

// VaRMarkdown renders a VaR report to a markdown string.
func VaRMarkdown(r *histvar.VaRReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Value at Risk from %s to %s", r.Range.From, r.Range.To))
	doc.PlainText(fmt.Sprintf("Historical simulation over %d daily returns, priced by %s on %s.",
		r.Observations(), r.Source, r.Timestamp.Format("2006-01-02 15:04")))

	doc.H2("Portfolio")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Weight"},
		Rows:   [][]string{},
	}
	for _, ticker := range r.Tickers {
		table.Rows = append(table.Rows, []string{
			ticker,
			fmt.Sprintf("%.2f%%", 100*r.Weights[ticker]),
		})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Notional: %s", r.Notional))

	if len(r.Full) > 0 {
		renderFullPeriod(doc, r)
	}
	if len(r.Rolling) > 0 {
		renderRolling(doc, r)
	}

	doc.H2("Daily Returns")
	worstDay, worst := r.WorstDay()
	bestDay, best := r.BestDay()
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Statistic", "Value", "On"},
		Rows: [][]string{
			{"Observations", fmt.Sprintf("%d", r.Observations()), ""},
			{"Mean", r.MeanReturn().String(), ""},
			{"Worst day", worst.String(), worstDay.String()},
			{"Best day", best.String(), bestDay.String()},
		},
	})

	return doc.String()
}

// renderFullPeriod writes the full period section: one row per confidence
// level, over the whole return sample.
func renderFullPeriod(doc *md.Markdown, r *histvar.VaRReport) {
	doc.H2("Full Period VaR")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Confidence", "VaR", "VaR (" + r.Notional.Currency() + ")"},
		Rows:   [][]string{},
	}
	for _, res := range r.Full {
		table.Rows = append(table.Rows, []string{
			res.Confidence.String(),
			res.VaRPercent.String(),
			res.VaRCurrency.String(),
		})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("A VaR of x%% at confidence c means: on all but the worst (1-c) of days, "+
		"the portfolio lost less than x%% of its value. Sample window: %s to %s.",
		r.Full[0].Window.From, r.Full[0].Window.To))
}

// renderRolling writes the rolling section: one summary row per confidence
// level, as individual windows are better read off the chart.
func renderRolling(doc *md.Markdown, r *histvar.VaRReport) {
	doc.H2(fmt.Sprintf("Rolling VaR, %s windows every %s", r.Window, r.Step.Name()))
	windows := len(r.Rolling) / len(r.RollingLevels())
	doc.PlainText(fmt.Sprintf("%d windows, each holding at least %d returns.", windows, r.MinObservations))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Confidence", "Latest", "Mean", "Calmest", "Harshest"},
		Rows:   [][]string{},
	}
	for _, level := range r.RollingLevels() {
		percent, _ := r.RollingSeries(level)
		values := make([]float64, 0, percent.Len())
		for _, v := range percent.Values() {
			values = append(values, v)
		}
		_, latest := percent.Latest()
		var sum float64
		for _, v := range values {
			sum += v
		}
		sort.Float64s(values)
		table.Rows = append(table.Rows, []string{
			level.String(),
			histvar.Percent(latest).String(),
			histvar.Percent(sum / float64(len(values))).String(),
			histvar.Percent(values[0]).String(),
			histvar.Percent(values[len(values)-1]).String(),
		})
	}
	doc.Table(table)
}

// ResultList renders results as a flat markdown table, one row per window
// and confidence, for piping into other tools.
func ResultList(results []histvar.VaRResult, notional histvar.Money) string {
	var b strings.Builder
	fmt.Fprintln(&b, "| From | To | Confidence | VaR | VaR ("+notional.Currency()+") |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for _, res := range results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			res.Window.From,
			res.Window.To,
			res.Confidence,
			res.VaRPercent,
			res.VaRCurrency,
		)
	}
	return b.String()
}
