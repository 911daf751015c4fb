package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"MetalStack/internal/cache"
	"MetalStack/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultYahooURL is the Yahoo Finance chart API host.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using COMEX/NYMEX futures quotes from the
// Yahoo Finance public chart API. It needs no API key.
type YahooFetcher struct {
	BaseURL   string
	SymbolMap map[model.MetalKind]string
	getter    *cachedGetter
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(client *http.Client, c cache.Cache, ttl time.Duration) *YahooFetcher {
	if c == nil {
		c = cache.NewNoopCache()
	}
	header := http.Header{}
	header.Set("User-Agent", "Mozilla/5.0")
	return &YahooFetcher{
		BaseURL: DefaultYahooURL,
		SymbolMap: map[model.MetalKind]string{
			model.Gold:      "GC=F",
			model.Silver:    "SI=F",
			model.Platinum:  "PL=F",
			model.Palladium: "PA=F",
		},
		getter: &cachedGetter{client: client, cache: c, ttl: ttl, header: header},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) fetchChart(ctx context.Context, metal model.MetalKind, params url.Values) (*yahooChart, error) {
	symbol, ok := f.SymbolMap[metal]
	if !ok {
		return nil, fmt.Errorf("yahoo: %w: no symbol for %s", ErrInvalidResponse, metal)
	}
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", f.BaseURL, url.PathEscape(symbol))
	key := "yahoo/" + symbol + "?" + params.Encode()

	body, err := f.getter.get(ctx, key, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo %s: %w: decode: %w", symbol, ErrInvalidResponse, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo %s: %w: %s", symbol, ErrInvalidResponse, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w: no data returned", symbol, ErrInvalidResponse)
	}
	f.getter.store(key, body)
	return &chart, nil
}

func (f *YahooFetcher) FetchSpot(ctx context.Context, metal model.MetalKind) (model.PricePoint, error) {
	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("range", "1d")

	chart, err := f.fetchChart(ctx, metal, params)
	if err != nil {
		return model.PricePoint{}, err
	}
	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice == nil {
		return model.PricePoint{}, fmt.Errorf("yahoo: %w: no market price for %s", ErrInvalidResponse, metal)
	}

	spot := decimal.NewFromFloat(*meta.RegularMarketPrice)
	pp := model.PricePoint{Metal: metal, Spot: spot}
	if meta.ChartPreviousClose != nil && *meta.ChartPreviousClose != 0 {
		prev := decimal.NewFromFloat(*meta.ChartPreviousClose)
		pp.Change = spot.Sub(prev)
		pp.ChangePct = pp.Change.Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return pp, nil
}

func (f *YahooFetcher) FetchHistory(ctx context.Context, metal model.MetalKind, start, end time.Time) (model.PriceSeries, error) {
	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("period1", strconv.FormatInt(model.Day(start).Unix(), 10))
	params.Set("period2", strconv.FormatInt(model.Day(end).AddDate(0, 0, 1).Unix(), 10))

	chart, err := f.fetchChart(ctx, metal, params)
	if err != nil {
		return nil, err
	}

	result := chart.Chart.Result[0]
	var closes []*float64
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	points := make([]model.HistoryPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] == 0 {
			continue // null bars (holidays etc.)
		}
		points = append(points, model.HistoryPoint{
			Date:  model.Day(time.Unix(ts, 0).UTC()),
			Price: decimal.NewFromFloat(*closes[i]),
		})
	}
	return model.NormalizeSeries(points), nil
}
