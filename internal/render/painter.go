package render

import (
	"strings"

	"MetalStack/internal/dashboard"
	"MetalStack/internal/model"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "render")

// Screen is the drawing surface, normally a *terminal.Terminal.
type Screen interface {
	Draw(frame string) error
	Size() (width, height int)
}

// ScreenPainter paints dashboard snapshots onto a Screen.
type ScreenPainter struct {
	screen Screen
}

func NewScreenPainter(screen Screen) *ScreenPainter {
	return &ScreenPainter{screen: screen}
}

// Paint implements dashboard.Painter.
func (p *ScreenPainter) Paint(s dashboard.Snapshot) error {
	width, height := p.screen.Size()
	log.WithField("width", width).WithField("height", height).Trace("paint")
	return p.screen.Draw(Frame(s, width))
}

// Frame lays out the whole dashboard for a terminal width columns wide.
func Frame(s dashboard.Snapshot, width int) string {
	pp, ok := s.Prices[s.Selected]
	sections := []string{
		Logo(width),
		KeyHelp(width),
		MetalsBar(s.Prices, s.Selected, width),
		DetailPanel(s.Selected, pp, ok, width),
	}
	if s.ChartVisible {
		sections = append(sections, ChartPanel(s.Selected, s.Period, s.Series, width))
	}
	sections = append(sections,
		PortfolioPanel(s.Holdings, s.Prices, width),
		HoldingsTable(s.Holdings, s.Prices, true),
		StatusBar(s.Err, s.LastUpdate, s.NextRefresh, s.Now),
	)
	return strings.Join(sections, "\n")
}

// Report renders the one-shot output: metals bar, detail, optional chart,
// portfolio summary and holdings table.
func Report(prices model.Prices, selected model.MetalKind, holdings []model.Holding, chart *ChartData, width int) string {
	pp, ok := prices[selected]
	sections := []string{
		MetalsBar(prices, selected, width),
		DetailPanel(selected, pp, ok, width),
	}
	if chart != nil {
		sections = append(sections, ChartReport(selected, chart.Period, chart.Series, width))
	}
	sections = append(sections,
		PortfolioPanel(holdings, prices, width),
		HoldingsTable(holdings, prices, false),
	)
	return strings.Join(sections, "\n")
}

// ChartData is a fetched history for Report.
type ChartData struct {
	Period model.ChartPeriod
	Series model.PriceSeries
}
