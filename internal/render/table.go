package render

import (
	"strconv"

	"MetalStack/internal/model"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// HoldingsTable renders the collection with spot values. Prices may be nil or
// partial; a holding without a quote shows "-" as its value.
func HoldingsTable(items []model.Holding, prices model.Prices, color bool) string {
	tw := table.NewWriter()
	if color {
		tw.SetStyle(table.StyleRounded)
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgYellow}
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.SetTitle("Holdings")
	tw.AppendHeader(table.Row{"#", "Name", "Metal", "Year", "Size", "Qty", "Value"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for i, h := range items {
		year := "-"
		if h.Year != nil {
			year = strconv.Itoa(*h.Year)
		}
		value := "-"
		if pp, ok := prices[h.Metal]; ok {
			value = FormatPrice(h.SpotValue(pp.Spot))
		}
		tw.AppendRow(table.Row{i + 1, h.Name, h.Metal.Title(), year, FormatWeight(h.WeightOz), h.Quantity, value})
	}
	if len(items) == 0 {
		tw.AppendRow(table.Row{"", "No items in portfolio.", "", "", "", "", ""})
	}
	return tw.Render()
}
