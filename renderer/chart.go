package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/histvar"
	"github.com/vicanso/go-charts/v2"
)

// padded widens a [min, max] interval by 5% so lines keep off the frame.
func padded(values []float64) (min, max float64) {
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	pad := (max - min) * 0.05
	return min - pad, max + pad
}

// portfolioLabel formats the holdings for chart subtitles,
// like "MC.PA 60.0%, OR.PA 40.0%".
func portfolioLabel(r *histvar.VaRReport) string {
	parts := make([]string, 0, len(r.Tickers))
	for _, ticker := range r.Tickers {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", ticker, 100*r.Weights[ticker]))
	}
	return strings.Join(parts, ", ")
}

// RollingChart renders the rolling VaR as a PNG line chart: per confidence
// level, the percent VaR on the left axis and the currency VaR on the
// right one, the x axis holding window end dates.
func RollingChart(r *histvar.VaRReport) ([]byte, error) {
	levels := r.RollingLevels()
	if len(levels) == 0 {
		return nil, errors.New("no rolling results to chart")
	}

	// every level shares the window ends, take them from the first one.
	first, _ := r.RollingSeries(levels[0])
	labels := make([]string, 0, first.Len())
	for on := range first.Values() {
		labels = append(labels, on.String())
	}

	var values [][]float64
	var names []string
	var lefts, rights []float64
	for _, level := range levels {
		percent, currency := r.RollingSeries(level)
		var pct, cur []float64
		for _, v := range percent.Values() {
			pct = append(pct, v)
		}
		for _, v := range currency.Values() {
			cur = append(cur, v)
		}
		values = append(values, pct, cur)
		names = append(names, "VaR "+level.String(), fmt.Sprintf("VaR %s (%s)", level, r.Notional.Currency()))
		lefts = append(lefts, pct...)
		rights = append(rights, cur...)
	}

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
		// percent and currency series alternate between the two axes.
		seriesList[i].AxisIndex = i % 2
	}
	leftMin, leftMax := padded(lefts)
	rightMin, rightMax := padded(rights)

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(fmt.Sprintf("Rolling %s VaR, every %s", r.Window, r.Step.Name()),
			"Portfolio: "+portfolioLabel(r)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(
			charts.YAxisOption{Min: &leftMin, Max: &leftMax, DivideCount: 5},
			charts.YAxisOption{Min: &rightMin, Max: &rightMax, DivideCount: 5, Position: charts.PositionRight},
		),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// FullPeriodChart renders the full period VaR as a PNG bar chart, one bar
// per confidence level, in percent of portfolio value.
func FullPeriodChart(r *histvar.VaRReport) ([]byte, error) {
	if len(r.Full) == 0 {
		return nil, errors.New("no full period results to chart")
	}
	labels := make([]string, 0, len(r.Full))
	values := make([]float64, 0, len(r.Full))
	for _, res := range r.Full {
		labels = append(labels, "VaR "+res.Confidence.String())
		values = append(values, float64(res.VaRPercent))
	}

	painter, err := charts.BarRender([][]float64{values},
		charts.TitleTextOptionFunc("Full Period VaR, % of value",
			"Portfolio: "+portfolioLabel(r)),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// ReturnsChart renders the portfolio daily returns as a PNG line chart.
func ReturnsChart(r *histvar.VaRReport) ([]byte, error) {
	if r.Returns.Len() == 0 {
		return nil, errors.New("no returns to chart")
	}
	labels := make([]string, 0, r.Returns.Len())
	series := make([]float64, 0, r.Returns.Len())
	for on, v := range r.Returns.Values() {
		labels = append(labels, on.String())
		series = append(series, 100*v)
	}
	min, max := padded(series)

	painter, err := charts.LineRender([][]float64{series},
		charts.TitleTextOptionFunc("Daily returns, %", "Portfolio: "+portfolioLabel(r)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &min, Max: &max, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
