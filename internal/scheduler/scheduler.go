package scheduler

import (
	"context"
	"time"

	"MetalStack/internal/collector"
	"MetalStack/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "scheduler")

// Source fetches the latest quote for every metal.
type Source interface {
	FetchAll(ctx context.Context) (model.Prices, error)
}

// Result is the outcome of one fetch. Exactly one of Prices and Err is set.
type Result struct {
	Prices model.Prices
	Err    error
}

// Scheduler re-fetches prices on a fixed cadence and on demand. Fetches run on
// a single worker goroutine; triggers that arrive while one is pending are
// dropped.
type Scheduler struct {
	Cron     *cron.Cron
	source   Source
	interval time.Duration
	post     func(Result)

	trigger chan bool // value: bypass the response cache
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewScheduler creates a Scheduler that posts every fetch result with post.
func NewScheduler(src Source, interval time.Duration, post func(Result)) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(),
		source:   src,
		interval: interval,
		post:     post,
		trigger:  make(chan bool, 1),
		done:     make(chan struct{}),
	}
}

// Start performs an initial fetch, which may be served from cache, then
// fetches every interval until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.Cron.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		s.enqueue(true)
	}))
	s.enqueue(false)
	s.Cron.Start()

	go s.run(ctx)
	log.WithField("interval", s.interval).Info("scheduler started")
}

// RefreshNow requests an immediate fetch without moving the cadence. It
// never blocks.
func (s *Scheduler) RefreshNow() {
	s.enqueue(true)
}

// Stop halts the cadence and the worker. A fetch in flight is cancelled
// through its context.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	if s.cancel != nil {
		s.cancel()
	}
}

// Done is closed once the worker has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) enqueue(fresh bool) {
	select {
	case s.trigger <- fresh:
	default:
		log.Debug("refresh already pending")
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			log.Info("scheduler stopped")
			return
		case fresh := <-s.trigger:
			s.fetch(ctx, fresh)
		}
	}
}

func (s *Scheduler) fetch(ctx context.Context, fresh bool) {
	fctx := ctx
	if fresh {
		fctx = collector.Fresh(ctx)
	}
	prices, err := s.source.FetchAll(fctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log.WithError(err).Warn("price refresh failed")
		s.post(Result{Err: err})
		return
	}
	s.post(Result{Prices: prices})
}
