package render

import (
	"time"

	"github.com/dustin/go-humanize"
)

const clockLayout = "15:04:05"

// StatusBar renders the error in red when set, otherwise the last update and
// next refresh times.
func StatusBar(errMsg string, lastUpdate, nextRefresh, now time.Time) string {
	if errMsg != "" {
		return errStyle.Render("Error: " + errMsg)
	}
	if lastUpdate.IsZero() {
		return dimStyle.Render("Fetching prices...")
	}
	s := "Updated " + lastUpdate.Format(clockLayout)
	if !nextRefresh.IsZero() {
		s += " • Next " + nextRefresh.Format(clockLayout) +
			" (" + humanize.RelTime(nextRefresh, now, "ago", "from now") + ")"
	}
	return dimStyle.Render(s)
}
