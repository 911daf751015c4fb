package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MetalKind identifies one of the supported precious metals.
type MetalKind string

const (
	Gold      MetalKind = "gold"
	Silver    MetalKind = "silver"
	Platinum  MetalKind = "platinum"
	Palladium MetalKind = "palladium"
)

// Metals lists every MetalKind in display order.
var Metals = []MetalKind{Gold, Silver, Platinum, Palladium}

// ParseMetal accepts a metal name, case-insensitively.
func ParseMetal(s string) (MetalKind, error) {
	m := MetalKind(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown metal %q (want gold, silver, platinum or palladium)", s)
	}
	return m, nil
}

// Valid reports whether m is one of the four supported metals.
func (m MetalKind) Valid() bool {
	switch m {
	case Gold, Silver, Platinum, Palladium:
		return true
	}
	return false
}

// Title returns the capitalized metal name, e.g. "Gold".
func (m MetalKind) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Short returns the abbreviated name used in the metals bar.
func (m MetalKind) Short() string {
	switch m {
	case Platinum:
		return "Plat"
	case Palladium:
		return "Pall"
	default:
		return m.Title()
	}
}

// PricePoint is a spot quote for one metal in USD per troy ounce.
type PricePoint struct {
	Metal     MetalKind
	Spot      decimal.Decimal
	Bid       *decimal.Decimal
	Ask       *decimal.Decimal
	Change    decimal.Decimal
	ChangePct decimal.Decimal
}

// Prices maps each metal to its latest quote.
type Prices map[MetalKind]PricePoint

// Spots returns the spot price of every quoted metal.
func (p Prices) Spots() map[MetalKind]decimal.Decimal {
	out := make(map[MetalKind]decimal.Decimal, len(p))
	for m, pp := range p {
		out[m] = pp.Spot
	}
	return out
}

// Clone returns a shallow copy; PricePoint values are immutable.
func (p Prices) Clone() Prices {
	if p == nil {
		return nil
	}
	out := make(Prices, len(p))
	for m, pp := range p {
		out[m] = pp
	}
	return out
}
