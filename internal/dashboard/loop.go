package dashboard

import (
	"context"
	"fmt"
	"time"

	"MetalStack/internal/model"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "dashboard")

const (
	// pollInterval bounds how long the loop waits for an event before it
	// checks the dirty flag again.
	pollInterval = 100 * time.Millisecond
	queueSize    = 64
)

// PriceSource supplies quotes and history.
type PriceSource interface {
	FetchAll(ctx context.Context) (model.Prices, error)
	FetchHistory(ctx context.Context, metal model.MetalKind, period model.ChartPeriod) (model.PriceSeries, error)
	CacheTTL() time.Duration
}

// PortfolioStore lists the user's holdings.
type PortfolioStore interface {
	List() ([]model.Holding, error)
}

// Refresher triggers an out-of-band price fetch.
type Refresher interface {
	RefreshNow()
}

// Painter draws one frame.
type Painter interface {
	Paint(Snapshot) error
}

type chartKey struct {
	metal  model.MetalKind
	period model.ChartPeriod
}

// Loop is the single owner of ViewState. Producers hand it events with Post;
// Run applies them in arrival order and repaints when the state is dirty.
type Loop struct {
	state     *ViewState
	queue     chan Event
	stopped   chan struct{}
	source    PriceSource
	portfolio PortfolioStore
	refresher Refresher
	painter   Painter
	now       func() time.Time

	lastChart *chartKey
}

// NewLoop creates a Loop seeded with the persisted metal and period index.
func NewLoop(src PriceSource, portfolio PortfolioStore, painter Painter, selected model.MetalKind, periodIndex int) *Loop {
	if !selected.Valid() {
		selected = model.Gold
	}
	l := &Loop{
		state: &ViewState{
			Selected:    selected,
			PeriodIndex: model.WrapPeriodIndex(periodIndex),
		},
		queue:     make(chan Event, queueSize),
		stopped:   make(chan struct{}),
		source:    src,
		portfolio: portfolio,
		painter:   painter,
		now:       time.Now,
	}
	l.state.MarkDirty()
	return l
}

// SetRefresher wires the target of Refresh commands.
func (l *Loop) SetRefresher(r Refresher) {
	l.refresher = r
}

// MarkDirty requests a repaint from any goroutine.
func (l *Loop) MarkDirty() {
	l.state.MarkDirty()
}

// Post enqueues ev. It blocks while the queue is full and gives up, returning
// false, once ctx is done or the loop has exited.
func (l *Loop) Post(ctx context.Context, ev Event) bool {
	select {
	case <-l.stopped:
		return false
	default:
	}
	select {
	case l.queue <- ev:
		return true
	case <-ctx.Done():
		return false
	case <-l.stopped:
		return false
	}
}

// Run processes events until Quit or ctx is cancelled. Events still queued
// behind a Quit are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	l.reloadHoldings()
	l.paintIfDirty()

	timer := time.NewTimer(pollInterval)
	defer timer.Stop()

	for {
		timer.Reset(pollInterval)
		select {
		case <-ctx.Done():
			return nil
		case ev := <-l.queue:
			if l.handle(ctx, ev) {
				return nil
			}
			if l.drain(ctx) {
				return nil
			}
		case <-timer.C:
		}
		l.paintIfDirty()
	}
}

// drain applies every event already queued without waiting.
func (l *Loop) drain(ctx context.Context) (quit bool) {
	for {
		select {
		case ev := <-l.queue:
			if l.handle(ctx, ev) {
				return true
			}
		default:
			return false
		}
	}
}

// State returns the loop's view state. Only safe once Run has returned.
func (l *Loop) State() *ViewState {
	return l.state
}

func (l *Loop) paintIfDirty() {
	if !l.state.takeDirty() {
		return
	}
	if err := l.painter.Paint(l.state.Snapshot(l.now())); err != nil {
		log.WithError(err).Warn("paint failed")
	}
}

// handle applies one event and reports whether the loop should exit.
func (l *Loop) handle(ctx context.Context, ev Event) bool {
	s := l.state
	switch ev := ev.(type) {
	case PricesFetched:
		if ev.Err != nil {
			s.Err = ev.Err.Error()
		} else {
			now := l.now()
			s.Prices = ev.Prices
			s.LastUpdate = now
			s.NextRefresh = now.Add(l.source.CacheTTL())
			s.Err = ""
			l.reloadHoldings()
			l.stitchLive()
		}
	case SelectMetal:
		s.Selected = ev.Metal
		if s.ChartVisible {
			l.loadChart(ctx, false)
		}
	case ToggleChart:
		s.ChartVisible = !s.ChartVisible
		if s.ChartVisible {
			l.loadChart(ctx, true)
		}
	case PrevPeriod:
		if !s.ChartVisible {
			return false
		}
		s.PeriodIndex = model.WrapPeriodIndex(s.PeriodIndex - 1)
		l.loadChart(ctx, false)
	case NextPeriod:
		if !s.ChartVisible {
			return false
		}
		s.PeriodIndex = model.WrapPeriodIndex(s.PeriodIndex + 1)
		l.loadChart(ctx, false)
	case Refresh:
		if l.refresher != nil {
			l.refresher.RefreshNow()
		}
	case Quit:
		return true
	case Ignore:
		return false
	default:
		log.Warnf("unhandled event %T", ev)
		return false
	}
	s.MarkDirty()
	return false
}

// loadChart fetches history for the selected metal and period. Unless force
// is set, the fetch is skipped when both match the last successful one.
func (l *Loop) loadChart(ctx context.Context, force bool) {
	s := l.state
	key := chartKey{metal: s.Selected, period: s.Period()}
	if !force && l.lastChart != nil && *l.lastChart == key {
		return
	}

	series, err := l.source.FetchHistory(ctx, key.metal, key.period)
	if err != nil {
		log.WithError(err).Warn("history fetch failed")
		s.Series = nil
		s.Err = err.Error()
		l.lastChart = nil
		return
	}
	s.Err = ""
	s.Series = series
	l.lastChart = &key
	l.stitchLive()
}

// stitchLive makes the chart end at the live spot price of its metal.
func (l *Loop) stitchLive() {
	s := l.state
	if l.lastChart == nil || len(s.Series) == 0 {
		return
	}
	pp, ok := s.Prices[l.lastChart.metal]
	if !ok {
		return
	}
	s.Series = s.Series.WithLive(l.now(), pp.Spot)
}

func (l *Loop) reloadHoldings() {
	items, err := l.portfolio.List()
	if err != nil {
		log.WithError(err).Warn("holdings reload failed")
		l.state.Err = fmt.Sprintf("load holdings: %v", err)
		return
	}
	l.state.Holdings = items
}
