package render

import "github.com/charmbracelet/lipgloss"

var (
	gold   = lipgloss.Color("220")
	amber  = lipgloss.Color("178")
	subtle = lipgloss.Color("244")

	logoStyles = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		lipgloss.NewStyle().Bold(true).Foreground(gold),
		lipgloss.NewStyle().Foreground(amber),
	}

	keyStyle   = lipgloss.NewStyle().Foreground(amber)
	dimStyle   = lipgloss.NewStyle().Foreground(subtle)
	boldStyle  = lipgloss.NewStyle().Bold(true)
	goldStyle  = lipgloss.NewStyle().Bold(true).Foreground(gold)
	selStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

func panelStyle(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// panel draws content in a bordered box with a title line. width is the total
// width including the border.
func panel(title, content string, border lipgloss.Color, width int) string {
	body := titleStyle.Foreground(border).Render(title) + "\n" + content
	style := panelStyle(border)
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(body)
}
