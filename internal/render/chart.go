package render

import (
	"fmt"
	"strings"

	"MetalStack/internal/calculator"
	"MetalStack/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	chartHeight   = 8
	chartMinWidth = 20
	chartMaxWidth = 120
	// room for the y-axis labels and the panel border
	chartMargin = 16
)

// ChartWidth is the number of plotted columns for a terminal of width w.
func ChartWidth(w int) int {
	return calculator.ClampWidth(w-chartMargin, chartMinWidth, chartMaxWidth)
}

// Plot draws the series as an ASCII line chart resampled to width columns.
func Plot(series model.PriceSeries, width int) string {
	values := calculator.Resample(series.Floats(), width)
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values, asciigraph.Height(chartHeight), asciigraph.Precision(2))
}

// PeriodSelector lists the dashboard periods with current highlighted.
func PeriodSelector(current model.ChartPeriod) string {
	parts := make([]string, len(model.DashboardPeriods))
	for i, p := range model.DashboardPeriods {
		if p == current {
			parts[i] = selStyle.Render(" " + p.String() + " ")
		} else {
			parts[i] = dimStyle.Render(" " + p.String() + " ")
		}
	}
	return strings.Join(parts, " ")
}

// ChartBody renders the chart, its caption and the period statistics, without
// a border.
func ChartBody(series model.PriceSeries, width int) string {
	if len(series) == 0 {
		return dimStyle.Render("No history available.")
	}

	first, last := series[0], series[len(series)-1]
	lines := []string{
		Plot(series, ChartWidth(width)),
		dimStyle.Render(fmt.Sprintf("%s to %s", first.Date.Format(model.DateLayout), last.Date.Format(model.DateLayout))),
	}

	abs, pct := calculator.Change(series)
	stats := "Period change: " + changeText(abs, pct)
	if high, low, err := calculator.SeriesRange(series); err == nil {
		if pos, err := calculator.RangePosition(last.Price, high, low); err == nil {
			stats += fmt.Sprintf("   Range %s - %s, at %.0f%%", FormatPrice(low), FormatPrice(high), pos*100)
		}
	}
	return strings.Join(append(lines, stats), "\n")
}

// ChartPanel renders the bordered chart panel for the dashboard.
func ChartPanel(metal model.MetalKind, period model.ChartPeriod, series model.PriceSeries, width int) string {
	body := ChartBody(series, width) + "\n" +
		PeriodSelector(period) + "  " + dimStyle.Render("c: hide | < >: period")
	return panel(fmt.Sprintf("%s Price (%s)", metal.Title(), period), body, lipgloss.Color("178"), width)
}

// ChartReport renders a bordered chart for one-shot output.
func ChartReport(metal model.MetalKind, period model.ChartPeriod, series model.PriceSeries, width int) string {
	return panel(fmt.Sprintf("%s Price (%s)", metal.Title(), period), ChartBody(series, width), lipgloss.Color("178"), width)
}
