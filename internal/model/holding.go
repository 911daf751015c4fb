package model

import "github.com/shopspring/decimal"

func init() {
	// collection.json stores weights as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Holding is one line of the user's physical collection.
type Holding struct {
	Name     string          `json:"name"`
	Metal    MetalKind       `json:"metal"`
	WeightOz decimal.Decimal `json:"weight_oz"`
	Quantity int             `json:"quantity"`
	Year     *int            `json:"year,omitempty"`
}

// TotalWeight is the combined troy-ounce weight of all pieces.
func (h Holding) TotalWeight() decimal.Decimal {
	return h.WeightOz.Mul(decimal.NewFromInt(int64(h.Quantity)))
}

// SpotValue values the holding at the given spot price per ounce.
func (h Holding) SpotValue(spot decimal.Decimal) decimal.Decimal {
	return h.TotalWeight().Mul(spot)
}
