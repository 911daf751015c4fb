package render

import (
	"strings"

	"MetalStack/internal/model"
	"MetalStack/internal/portfolio"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const logo = `╔╦╗╔═╗╔╦╗╔═╗╦  ╔═╗╔╦╗╔═╗╔═╗╦╔═
║║║║╣  ║ ╠═╣║  ╚═╗ ║ ╠═╣║  ╠╩╗
╩ ╩╚═╝ ╩ ╩ ╩╩═╝╚═╝ ╩ ╩ ╩╚═╝╩ ╩`

// Logo renders the banner centred in width.
func Logo(width int) string {
	lines := strings.Split(logo, "\n")
	for i, l := range lines {
		lines[i] = logoStyles[min(i, len(logoStyles)-1)].Render(l)
	}
	return center(strings.Join(lines, "\n"), width)
}

// KeyHelp renders the key binding line.
func KeyHelp(width int) string {
	var b strings.Builder
	for _, kv := range [][2]string{
		{"1-4", " or "}, {"g/s/p/d", ": select metal  "}, {"c", ": chart  "},
		{"< >", ": period  "}, {"r", ": refresh  "}, {"q", ": quit"},
	} {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(dimStyle.Render(kv[1]))
	}
	return center(b.String(), width)
}

func center(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

func changeText(change, pct decimal.Decimal) string {
	s := FormatChange(change, pct)
	if change.IsNegative() {
		return downStyle.Render(s)
	}
	return upStyle.Render(s)
}

// MetalsBar renders every metal's spot price and change side by side,
// highlighting selected.
func MetalsBar(prices model.Prices, selected model.MetalKind, width int) string {
	cellWidth := 0
	if width > 4 {
		cellWidth = (width - 4) / len(model.Metals)
	}
	cells := make([]string, 0, len(model.Metals))
	for _, m := range model.Metals {
		var cell string
		if pp, ok := prices[m]; ok {
			name := boldStyle.Render(m.Short())
			switch {
			case m == selected:
				name = selStyle.Render(m.Short())
			case m == model.Gold:
				name = goldStyle.Render(m.Short())
			}
			cell = name + " " + FormatPrice(pp.Spot) + "\n" + changeText(pp.Change, pp.ChangePct)
		} else {
			cell = "-\n-"
			if m == selected {
				cell = selStyle.Render(m.Short()) + "\n-"
			}
		}
		style := lipgloss.NewStyle().Align(lipgloss.Center)
		if cellWidth > 0 {
			style = style.Width(cellWidth)
		}
		cells = append(cells, style.Render(cell))
	}
	return panel("Precious Metals Spot Prices", lipgloss.JoinHorizontal(lipgloss.Top, cells...), lipgloss.Color("33"), width)
}

// labelled renders two aligned columns.
func labelled(rows [][2]string) string {
	w := 0
	for _, r := range rows {
		w = max(w, lipgloss.Width(r[0]))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		pad := strings.Repeat(" ", w-lipgloss.Width(r[0])+2)
		lines[i] = dimStyle.Render(r[0]) + pad + r[1]
	}
	return strings.Join(lines, "\n")
}

// DetailPanel renders the selected metal's quote.
func DetailPanel(metal model.MetalKind, pp model.PricePoint, ok bool, width int) string {
	var rows [][2]string
	if !ok {
		rows = append(rows, [2]string{"Status", "Loading..."})
	} else {
		rows = append(rows, [2]string{"Spot Price", FormatPrice(pp.Spot)})
		if pp.Bid != nil && !pp.Bid.IsZero() {
			rows = append(rows, [2]string{"Bid", FormatPrice(*pp.Bid)})
		}
		if pp.Ask != nil && !pp.Ask.IsZero() {
			rows = append(rows, [2]string{"Ask", FormatPrice(*pp.Ask)})
		}
		rows = append(rows, [2]string{"24h Change", changeText(pp.Change, pp.ChangePct)})
	}
	return panel(metal.Title()+" Detail", labelled(rows), lipgloss.Color("37"), width)
}

// PortfolioPanel renders totals and per-metal weights.
func PortfolioPanel(items []model.Holding, prices model.Prices, width int) string {
	border := lipgloss.Color("34")
	if len(items) == 0 {
		return panel("Portfolio Summary", dimStyle.Render("No items in portfolio. Use 'metalstack add' to add items."), border, width)
	}

	s := portfolio.Summarize(items, prices)
	rows := [][2]string{
		{"Total Value", boldStyle.Render(FormatPrice(s.TotalValue))},
		{"24h Change", changeText(s.Change, s.ChangePct)},
	}
	for _, m := range model.Metals {
		t := s.ByMetal[m]
		if !t.WeightOz.IsPositive() {
			continue
		}
		rows = append(rows, [2]string{m.Title() + ": " + FormatOunces(t.WeightOz), FormatPrice(t.Value)})
	}
	return panel("Portfolio Summary", labelled(rows), border, width)
}
