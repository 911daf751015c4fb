package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"MetalStack/internal/model"
	"MetalStack/internal/terminal"

	"github.com/shopspring/decimal"
)

func prices(gold string) model.Prices {
	return model.Prices{
		model.Gold:   {Metal: model.Gold, Spot: decimal.RequireFromString(gold)},
		model.Silver: {Metal: model.Silver, Spot: decimal.RequireFromString("30")},
	}
}

// trace records the order in which collaborators are called.
type trace struct {
	mu    sync.Mutex
	steps []string
}

func (t *trace) add(s string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps = append(t.steps, s)
}

func (t *trace) list() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.steps...)
}

type historyCall struct {
	metal  model.MetalKind
	period model.ChartPeriod
}

type fakeSource struct {
	mu         sync.Mutex
	prices     model.Prices
	fetchErr   error
	series     model.PriceSeries
	historyErr error
	history    []historyCall
	block      chan struct{} // when set, FetchHistory waits on it
	entered    chan struct{}
	trace      *trace
}

func (f *fakeSource) FetchAll(context.Context) (model.Prices, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.prices, nil
}

func (f *fakeSource) FetchHistory(_ context.Context, metal model.MetalKind, period model.ChartPeriod) (model.PriceSeries, error) {
	f.trace.add("history-start")
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.trace.add("history-end")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, historyCall{metal, period})
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return append(model.PriceSeries(nil), f.series...), nil
}

func (f *fakeSource) CacheTTL() time.Duration { return time.Hour }

func (f *fakeSource) historyCalls() []historyCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]historyCall(nil), f.history...)
}

type fakePortfolio struct {
	items []model.Holding
	trace *trace
}

func (f *fakePortfolio) List() ([]model.Holding, error) {
	f.trace.add("holdings")
	return f.items, nil
}

type fakeRefresher struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeRefresher) RefreshNow() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

// fakePainter keeps every snapshot and lets tests wait for one matching a
// condition.
type fakePainter struct {
	mu     sync.Mutex
	frames []Snapshot
	check  func(Snapshot) error
	bad    error
	notify chan struct{}
}

func newFakePainter() *fakePainter {
	return &fakePainter{notify: make(chan struct{}, 1)}
}

func (p *fakePainter) Paint(s Snapshot) error {
	p.mu.Lock()
	p.frames = append(p.frames, s)
	if p.check != nil && p.bad == nil {
		p.bad = p.check(s)
	}
	p.mu.Unlock()
	select {
	case p.notify <- struct{}{}:
	default:
	}
	return nil
}

func (p *fakePainter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func (p *fakePainter) waitFor(cond func(Snapshot) bool, timeout time.Duration) (Snapshot, bool) {
	deadline := time.After(timeout)
	for {
		p.mu.Lock()
		for i := len(p.frames) - 1; i >= 0; i-- {
			if cond(p.frames[i]) {
				s := p.frames[i]
				p.mu.Unlock()
				return s, true
			}
		}
		p.mu.Unlock()
		select {
		case <-p.notify:
		case <-deadline:
			return Snapshot{}, false
		}
	}
}

type fakeSettings struct {
	mu          sync.Mutex
	metal       model.MetalKind
	periodIndex int
	saved       bool
}

func (f *fakeSettings) SelectedMetal() model.MetalKind { return f.metal }
func (f *fakeSettings) ChartPeriodIndex() int          { return f.periodIndex }

func (f *fakeSettings) SetSelectedMetal(m model.MetalKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metal = m
	f.saved = true
	return nil
}

func (f *fakeSettings) SetChartPeriodIndex(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.periodIndex = i
	return nil
}

// fakeTerminal serves keys from a channel, returning the zero Key after a
// short wait when none is ready.
type fakeTerminal struct {
	keys        chan terminal.Key
	unavailable bool
	mu          sync.Mutex
	closed      bool
}

func newFakeTerminal() *fakeTerminal {
	return &fakeTerminal{keys: make(chan terminal.Key, 8)}
}

func (f *fakeTerminal) ReadKey() (terminal.Key, error) {
	if f.unavailable {
		return terminal.Key{}, terminal.ErrTerminalUnavailable
	}
	select {
	case k := <-f.keys:
		return k, nil
	case <-time.After(10 * time.Millisecond):
		return terminal.Key{}, nil
	}
}

func (f *fakeTerminal) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTerminal) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

var errBoom = errors.New("boom")

func day(s string) time.Time {
	t, err := model.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}
