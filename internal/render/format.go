package render

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const currency = "USD"

// FormatPrice renders d as a dollar amount with thousands separators, e.g.
// "$2,650.40".
func FormatPrice(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	cur := money.GetCurrency(currency)
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return sign + money.New(minor, currency).Display()
}

// FormatChange renders an absolute and percentage move, e.g.
// "+$12.30 (+0.47%)".
func FormatChange(change, pct decimal.Decimal) string {
	sign := "+"
	if change.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s%s (%s%s%%)", sign, FormatPrice(change.Abs()), sign, pct.Abs().StringFixed(2))
}

// FormatWeight renders a troy-ounce weight, e.g. "1.5 oz".
func FormatWeight(d decimal.Decimal) string {
	return d.String() + " oz"
}

// FormatOunces renders an aggregate weight with two decimals.
func FormatOunces(d decimal.Decimal) string {
	return d.StringFixed(2) + " oz"
}
