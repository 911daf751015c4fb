package collector

import (
	"context"
	"errors"
	"time"

	"MetalStack/internal/model"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "collector")

// Error classes returned by fetchers. Callers test with errors.Is.
var (
	ErrNetwork         = errors.New("network error")
	ErrRateLimited     = errors.New("rate limited")
	ErrInvalidResponse = errors.New("invalid response")
)

// Fetcher defines the interface for fetching metal prices.
type Fetcher interface {
	FetchSpot(ctx context.Context, metal model.MetalKind) (model.PricePoint, error)
	FetchHistory(ctx context.Context, metal model.MetalKind, start, end time.Time) (model.PriceSeries, error)
	Name() string
}

type freshKey struct{}

// Fresh marks requests made with the returned context as needing live data:
// fetchers skip cache reads but still store what they receive.
func Fresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshKey{}, true)
}

func isFresh(ctx context.Context) bool {
	v, _ := ctx.Value(freshKey{}).(bool)
	return v
}
