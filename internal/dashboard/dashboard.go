package dashboard

import (
	"context"
	"time"

	"MetalStack/internal/model"
	"MetalStack/internal/scheduler"
)

// shutdownTimeout bounds the wait for background tasks on exit.
const shutdownTimeout = 2 * time.Second

// SettingsStore persists the selection across runs.
type SettingsStore interface {
	SelectedMetal() model.MetalKind
	SetSelectedMetal(model.MetalKind) error
	ChartPeriodIndex() int
	SetChartPeriodIndex(int) error
}

// Terminal is the interactive device: keys in, restored on Close.
type Terminal interface {
	KeyReader
	Close() error
}

// Options wires a Dashboard to its collaborators.
type Options struct {
	Source    PriceSource
	Portfolio PortfolioStore
	Settings  SettingsStore
	Terminal  Terminal
	Painter   Painter
}

// Dashboard is the live display: a render loop fed by a key reader and a
// refresh scheduler.
type Dashboard struct {
	opts Options
	loop *Loop
}

// New creates a Dashboard seeded from the persisted settings.
func New(opts Options) *Dashboard {
	loop := NewLoop(opts.Source, opts.Portfolio, opts.Painter,
		opts.Settings.SelectedMetal(), opts.Settings.ChartPeriodIndex())
	return &Dashboard{opts: opts, loop: loop}
}

// MarkDirty requests a repaint, e.g. after the terminal was resized.
func (d *Dashboard) MarkDirty() {
	d.loop.MarkDirty()
}

// Run blocks until the user quits or ctx is cancelled. On the way out it
// stops the background tasks, saves the selection and restores the terminal.
func (d *Dashboard) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.NewScheduler(d.opts.Source, d.opts.Source.CacheTTL(), func(r scheduler.Result) {
		d.loop.Post(ctx, PricesFetched{Prices: r.Prices, Err: r.Err})
	})
	d.loop.SetRefresher(sched)

	inputDone := make(chan struct{})
	reader := NewInputReader(d.opts.Terminal, d.loop.Post)
	go func() {
		defer close(inputDone)
		reader.Run(ctx)
	}()
	sched.Start(ctx)

	err := d.loop.Run(ctx)

	cancel()
	sched.Stop()
	d.waitFor(inputDone, sched.Done())
	d.saveSettings()

	if cerr := d.opts.Terminal.Close(); cerr != nil {
		log.WithError(cerr).Warn("terminal restore failed")
	}
	return err
}

func (d *Dashboard) waitFor(chs ...<-chan struct{}) {
	deadline := time.NewTimer(shutdownTimeout)
	defer deadline.Stop()
	for _, ch := range chs {
		select {
		case <-ch:
		case <-deadline.C:
			log.Warn("background tasks did not stop in time")
			return
		}
	}
}

func (d *Dashboard) saveSettings() {
	s := d.loop.State()
	if err := d.opts.Settings.SetSelectedMetal(s.Selected); err != nil {
		log.WithError(err).Warn("save selected metal failed")
	}
	if err := d.opts.Settings.SetChartPeriodIndex(s.PeriodIndex); err != nil {
		log.WithError(err).Warn("save chart period failed")
	}
}
