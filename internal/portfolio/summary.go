package portfolio

import (
	"MetalStack/internal/model"

	"github.com/shopspring/decimal"
)

// MetalTotal aggregates the holdings of one metal.
type MetalTotal struct {
	WeightOz decimal.Decimal
	Value    decimal.Decimal
}

// Summary values a collection at a set of spot prices.
type Summary struct {
	TotalItems int
	TotalValue decimal.Decimal
	// Change is the 24h value change implied by each metal's spot change.
	Change    decimal.Decimal
	ChangePct decimal.Decimal
	ByMetal   map[model.MetalKind]MetalTotal
}

// Summarize values items at prices. Metals without a quote count at zero.
func Summarize(items []model.Holding, prices model.Prices) Summary {
	s := Summary{
		TotalItems: len(items),
		ByMetal:    make(map[model.MetalKind]MetalTotal, len(model.Metals)),
	}
	for _, m := range model.Metals {
		s.ByMetal[m] = MetalTotal{}
	}

	for _, h := range items {
		pp := prices[h.Metal]
		weight := h.TotalWeight()
		value := weight.Mul(pp.Spot)

		t := s.ByMetal[h.Metal]
		t.WeightOz = t.WeightOz.Add(weight)
		t.Value = t.Value.Add(value)
		s.ByMetal[h.Metal] = t

		s.TotalValue = s.TotalValue.Add(value)
		s.Change = s.Change.Add(weight.Mul(pp.Change))
	}

	if prev := s.TotalValue.Sub(s.Change); prev.IsPositive() {
		s.ChangePct = s.Change.Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return s
}
