package model

import (
	"fmt"
	"strings"
	"time"
)

// ChartPeriod selects how far back a price history reaches.
type ChartPeriod int

const (
	PeriodWeek ChartPeriod = iota
	PeriodMonth
	PeriodYTD
	PeriodYear
	PeriodFiveYears
	PeriodAll
)

// Periods lists every ChartPeriod.
var Periods = []ChartPeriod{PeriodWeek, PeriodMonth, PeriodYTD, PeriodYear, PeriodFiveYears, PeriodAll}

// DashboardPeriods are the periods the live dashboard cycles through.
// PeriodAll is left out: it expands to hundreds of timeseries requests.
var DashboardPeriods = []ChartPeriod{PeriodWeek, PeriodMonth, PeriodYTD, PeriodYear, PeriodFiveYears}

func (p ChartPeriod) String() string {
	switch p {
	case PeriodWeek:
		return "1w"
	case PeriodMonth:
		return "1m"
	case PeriodYTD:
		return "ytd"
	case PeriodYear:
		return "1y"
	case PeriodFiveYears:
		return "5y"
	case PeriodAll:
		return "all"
	default:
		return fmt.Sprintf("ChartPeriod(%d)", int(p))
	}
}

// ParsePeriod accepts the short labels ("1w", "ytd", ...) and a few long forms.
func ParsePeriod(s string) (ChartPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1w", "week":
		return PeriodWeek, nil
	case "1m", "month":
		return PeriodMonth, nil
	case "ytd":
		return PeriodYTD, nil
	case "1y", "year":
		return PeriodYear, nil
	case "5y", "five-years":
		return PeriodFiveYears, nil
	case "all":
		return PeriodAll, nil
	default:
		return PeriodMonth, fmt.Errorf("unknown period %q", s)
	}
}

// Start returns the first instant covered by p when the window ends at end.
func (p ChartPeriod) Start(end time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return end.AddDate(0, 0, -7)
	case PeriodMonth:
		return end.AddDate(0, 0, -30)
	case PeriodYTD:
		return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, end.Location())
	case PeriodYear:
		return end.AddDate(0, 0, -365)
	case PeriodFiveYears:
		return end.AddDate(0, 0, -365*5)
	default:
		return end.AddDate(0, 0, -365*30)
	}
}

// DashboardPeriod maps a persisted index onto DashboardPeriods, wrapping
// out-of-range values.
func DashboardPeriod(index int) ChartPeriod {
	return DashboardPeriods[WrapPeriodIndex(index)]
}

// WrapPeriodIndex reduces index modulo len(DashboardPeriods), never negative.
func WrapPeriodIndex(index int) int {
	n := len(DashboardPeriods)
	return ((index % n) + n) % n
}
