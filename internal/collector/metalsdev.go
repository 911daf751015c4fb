package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"MetalStack/internal/cache"
	"MetalStack/internal/model"

	"github.com/shopspring/decimal"
)

// maxTimeseriesDays is the longest window metals.dev serves per request.
const maxTimeseriesDays = 30

// MetalsDevFetcher implements Fetcher using the metals.dev REST API.
type MetalsDevFetcher struct {
	BaseURL string
	APIKey  string
	getter  *cachedGetter
}

// NewMetalsDevFetcher creates a fetcher whose responses are cached in c for ttl.
func NewMetalsDevFetcher(baseURL, apiKey string, client *http.Client, c cache.Cache, ttl time.Duration) *MetalsDevFetcher {
	if c == nil {
		c = cache.NewNoopCache()
	}
	return &MetalsDevFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		getter:  &cachedGetter{client: client, cache: c, ttl: ttl},
	}
}

func (f *MetalsDevFetcher) Name() string { return "metalsdev" }

// mdStatus is present on every metals.dev response.
type mdStatus struct {
	Status       string `json:"status"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func (s mdStatus) err() error {
	if s.Status == "failure" {
		return fmt.Errorf("%w: API error %d: %s", ErrInvalidResponse, s.ErrorCode, s.ErrorMessage)
	}
	return nil
}

type mdSpot struct {
	mdStatus
	Rate struct {
		Price         decimal.Decimal  `json:"price"`
		Bid           *decimal.Decimal `json:"bid"`
		Ask           *decimal.Decimal `json:"ask"`
		Change        decimal.Decimal  `json:"change"`
		ChangePercent decimal.Decimal  `json:"change_percent"`
	} `json:"rate"`
}

type mdTimeseries struct {
	mdStatus
	Rates map[string]struct {
		Metals map[string]decimal.Decimal `json:"metals"`
	} `json:"rates"`
}

func (f *MetalsDevFetcher) request(ctx context.Context, endpoint string, params url.Values, out interface{ err() error }) error {
	key := endpoint + "?" + params.Encode()
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", f.APIKey)

	body, err := f.getter.get(ctx, key, f.BaseURL+"/"+endpoint, query)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: %w: decode: %w", endpoint, ErrInvalidResponse, err)
	}
	if err := out.err(); err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	f.getter.store(key, body)
	return nil
}

func (f *MetalsDevFetcher) FetchSpot(ctx context.Context, metal model.MetalKind) (model.PricePoint, error) {
	params := url.Values{}
	params.Set("metal", string(metal))
	params.Set("currency", "USD")

	var resp mdSpot
	if err := f.request(ctx, "metal/spot", params, &resp); err != nil {
		return model.PricePoint{}, err
	}
	if resp.Rate.Price.IsNegative() {
		return model.PricePoint{}, fmt.Errorf("metal/spot: %w: negative price %s", ErrInvalidResponse, resp.Rate.Price)
	}
	return model.PricePoint{
		Metal:     metal,
		Spot:      resp.Rate.Price,
		Bid:       resp.Rate.Bid,
		Ask:       resp.Rate.Ask,
		Change:    resp.Rate.Change,
		ChangePct: resp.Rate.ChangePercent,
	}, nil
}

// FetchHistory walks backwards from end in windows of at most
// maxTimeseriesDays days.
func (f *MetalsDevFetcher) FetchHistory(ctx context.Context, metal model.MetalKind, start, end time.Time) (model.PriceSeries, error) {
	start, end = model.Day(start), model.Day(end)
	var points []model.HistoryPoint

	for cur := end; !cur.Before(start); {
		from := cur.AddDate(0, 0, -maxTimeseriesDays)
		if from.Before(start) {
			from = start
		}

		params := url.Values{}
		params.Set("start_date", from.Format(model.DateLayout))
		params.Set("end_date", cur.Format(model.DateLayout))
		params.Set("currency", "USD")
		params.Set("unit", "toz")

		var resp mdTimeseries
		if err := f.request(ctx, "timeseries", params, &resp); err != nil {
			return nil, err
		}
		dates := make([]string, 0, len(resp.Rates))
		for d := range resp.Rates {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		for _, d := range dates {
			price := resp.Rates[d].Metals[string(metal)]
			if price.IsZero() {
				continue
			}
			day, err := model.ParseDay(d)
			if err != nil {
				log.WithField("date", d).Warn("skipping unparseable timeseries date")
				continue
			}
			points = append(points, model.HistoryPoint{Date: day, Price: price})
		}

		cur = from.AddDate(0, 0, -1)
	}

	return model.NormalizeSeries(points), nil
}
