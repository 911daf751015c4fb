package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date layout used by price histories.
const DateLayout = "2006-01-02"

// HistoryPoint is the price of a metal on one calendar day.
type HistoryPoint struct {
	Date  time.Time
	Price decimal.Decimal
}

// PriceSeries is ordered ascending by date with no duplicate dates.
type PriceSeries []HistoryPoint

// Day truncates t to its calendar date in t's location, returned as UTC midnight
// so that dates compare with Equal regardless of the zone they came from.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// NormalizeSeries sorts points by date and drops duplicate dates, keeping the
// last occurrence of each date in input order.
func NormalizeSeries(points []HistoryPoint) PriceSeries {
	byDay := make(map[time.Time]decimal.Decimal, len(points))
	for _, p := range points {
		byDay[Day(p.Date)] = p.Price
	}
	out := make(PriceSeries, 0, len(byDay))
	for d, v := range byDay {
		out = append(out, HistoryPoint{Date: d, Price: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Floats returns the prices as float64 values for charting.
func (s PriceSeries) Floats() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Price.InexactFloat64()
	}
	return out
}

// WithLive returns a copy of s whose last point reflects the live spot price:
// the last point is replaced when it is dated today, otherwise a point dated
// today is appended. An empty series is returned unchanged.
func (s PriceSeries) WithLive(today time.Time, spot decimal.Decimal) PriceSeries {
	if len(s) == 0 {
		return s
	}
	today = Day(today)
	out := make(PriceSeries, len(s), len(s)+1)
	copy(out, s)
	last := len(out) - 1
	if out[last].Date.Equal(today) {
		out[last] = HistoryPoint{Date: today, Price: spot}
		return out
	}
	if out[last].Date.After(today) {
		return out
	}
	return append(out, HistoryPoint{Date: today, Price: spot})
}
