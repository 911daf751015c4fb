package dashboard

import (
	"sync/atomic"
	"time"

	"MetalStack/internal/model"
)

// ViewState is owned by the render loop. Only the dirty flag may be touched
// from other goroutines, and only to set it.
type ViewState struct {
	Prices       model.Prices
	Selected     model.MetalKind
	LastUpdate   time.Time
	NextRefresh  time.Time
	Err          string
	ChartVisible bool
	PeriodIndex  int
	Series       model.PriceSeries
	Holdings     []model.Holding

	dirty atomic.Bool
}

// MarkDirty requests a repaint. Safe from any goroutine.
func (v *ViewState) MarkDirty() {
	v.dirty.Store(true)
}

// takeDirty clears the flag and reports whether it was set.
func (v *ViewState) takeDirty() bool {
	return v.dirty.Swap(false)
}

// Period is the currently selected chart period.
func (v *ViewState) Period() model.ChartPeriod {
	return model.DashboardPeriod(v.PeriodIndex)
}

// Snapshot is an immutable copy of ViewState handed to the painter.
type Snapshot struct {
	Prices       model.Prices
	Selected     model.MetalKind
	LastUpdate   time.Time
	NextRefresh  time.Time
	Err          string
	ChartVisible bool
	PeriodIndex  int
	Period       model.ChartPeriod
	Series       model.PriceSeries
	Holdings     []model.Holding
	Now          time.Time
}

// Snapshot copies every field the painter reads.
func (v *ViewState) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Prices:       v.Prices.Clone(),
		Selected:     v.Selected,
		LastUpdate:   v.LastUpdate,
		NextRefresh:  v.NextRefresh,
		Err:          v.Err,
		ChartVisible: v.ChartVisible,
		PeriodIndex:  v.PeriodIndex,
		Period:       v.Period(),
		Series:       append(model.PriceSeries(nil), v.Series...),
		Holdings:     append([]model.Holding(nil), v.Holdings...),
		Now:          now,
	}
}
