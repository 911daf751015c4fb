package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"MetalStack/internal/model"

	"github.com/shopspring/decimal"
)

// MockFetcher returns deterministic offline data for development and testing.
type MockFetcher struct {
	Spot map[model.MetalKind]decimal.Decimal
	Err  error
}

// NewMockFetcher seeds a MockFetcher with plausible spot prices.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{Spot: map[model.MetalKind]decimal.Decimal{
		model.Gold:      decimal.RequireFromString("2650.40"),
		model.Silver:    decimal.RequireFromString("31.25"),
		model.Platinum:  decimal.RequireFromString("982.10"),
		model.Palladium: decimal.RequireFromString("1048.75"),
	}}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSpot(_ context.Context, metal model.MetalKind) (model.PricePoint, error) {
	if m.Err != nil {
		return model.PricePoint{}, m.Err
	}
	spot := m.Spot[metal]
	change := spot.Mul(decimal.RequireFromString("0.0042")).Round(2)
	bid := spot.Sub(decimal.RequireFromString("0.50"))
	ask := spot.Add(decimal.RequireFromString("0.50"))
	pct := decimal.Zero
	if prev := spot.Sub(change); !prev.IsZero() {
		pct = change.Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return model.PricePoint{
		Metal:     metal,
		Spot:      spot,
		Bid:       &bid,
		Ask:       &ask,
		Change:    change,
		ChangePct: pct,
	}, nil
}

func (m *MockFetcher) FetchHistory(_ context.Context, metal model.MetalKind, start, end time.Time) (model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	base := m.Spot[metal].InexactFloat64()
	start, end = model.Day(start), model.Day(end)

	var points []model.HistoryPoint
	for d, i := start, 0; !d.After(end); d, i = d.AddDate(0, 0, 1), i+1 {
		p := base * (1 + 0.03*math.Sin(float64(i)/9) - 0.0004*float64(end.Sub(d)/(24*time.Hour)))
		points = append(points, model.HistoryPoint{Date: d, Price: decimal.NewFromFloat(p).Round(2)})
	}
	return model.NormalizeSeries(points), nil
}

// Collector adapts a Fetcher to the price source used by the dashboard and
// the CLI.
type Collector struct {
	Fetcher Fetcher
	TTL     time.Duration
	now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, ttl time.Duration) *Collector {
	return &Collector{Fetcher: fetcher, TTL: ttl, now: time.Now}
}

// FetchAll fetches a quote for every metal, in Metals order. The first
// failure aborts the whole fetch.
func (c *Collector) FetchAll(ctx context.Context) (model.Prices, error) {
	prices := make(model.Prices, len(model.Metals))
	for _, m := range model.Metals {
		pp, err := c.Fetcher.FetchSpot(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("fetch %s spot: %w", m, err)
		}
		prices[m] = pp
	}
	log.WithField("source", c.Fetcher.Name()).Debug("fetched spot prices")
	return prices, nil
}

// FetchHistory fetches the price series of metal covering period, ending today.
func (c *Collector) FetchHistory(ctx context.Context, metal model.MetalKind, period model.ChartPeriod) (model.PriceSeries, error) {
	end := c.now()
	series, err := c.Fetcher.FetchHistory(ctx, metal, period.Start(end), end)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s history: %w", metal, period, err)
	}
	return model.NormalizeSeries(series), nil
}

// CacheTTL is the refresh interval for spot prices.
func (c *Collector) CacheTTL() time.Duration {
	return c.TTL
}
