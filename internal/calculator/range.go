package calculator

import (
	"errors"

	"github.com/shopspring/decimal"

	"MetalStack/internal/model"
)

// SeriesRange returns the highest and lowest price of the series.
func SeriesRange(series model.PriceSeries) (high, low decimal.Decimal, err error) {
	if len(series) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no history points provided")
	}
	high, low = series[0].Price, series[0].Price
	for _, p := range series[1:] {
		if p.Price.GreaterThan(high) {
			high = p.Price
		}
		if p.Price.LessThan(low) {
			low = p.Price
		}
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high], clamped to 0..1.
func RangePosition(current, high, low decimal.Decimal) (float64, error) {
	if high.Equal(low) {
		return 0.5, nil
	}
	if high.LessThan(low) {
		return 0, errors.New("high must be >= low")
	}
	pos := current.Sub(low).Div(high.Sub(low)).InexactFloat64()
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Change returns the absolute and percentage move from the first to the last
// point of the series. Fewer than two points is no change.
func Change(series model.PriceSeries) (abs, pct decimal.Decimal) {
	if len(series) < 2 {
		return decimal.Zero, decimal.Zero
	}
	start := series[0].Price
	end := series[len(series)-1].Price
	abs = end.Sub(start)
	if start.IsZero() {
		return abs, decimal.Zero
	}
	return abs, abs.Div(start).Mul(decimal.NewFromInt(100))
}
