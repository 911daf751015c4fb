package settings

import (
	"fmt"
	"sync"

	"MetalStack/internal/jsonfile"
	"MetalStack/internal/model"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "settings")

// DefaultChartPeriodIndex selects the one-month chart.
const DefaultChartPeriodIndex = 1

type state struct {
	LastSelectedMetal string `json:"last_selected_metal,omitempty"`
	ChartPeriodIndex  *int   `json:"chart_period_index,omitempty"`
}

// Store persists the dashboard's last selected metal and chart period.
// Unreadable or invalid values fall back to defaults.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore creates a Store over the settings file at filePath.
func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

// SelectedMetal returns the persisted metal, defaulting to gold.
func (s *Store) SelectedMetal() model.MetalKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load()
	if m := model.MetalKind(st.LastSelectedMetal); m.Valid() {
		return m
	}
	return model.Gold
}

// SetSelectedMetal persists metal.
func (s *Store) SetSelectedMetal(metal model.MetalKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load()
	st.LastSelectedMetal = string(metal)
	return s.save(st)
}

// ChartPeriodIndex returns the persisted index into model.DashboardPeriods,
// wrapped into range.
func (s *Store) ChartPeriodIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load()
	if st.ChartPeriodIndex == nil {
		return DefaultChartPeriodIndex
	}
	return model.WrapPeriodIndex(*st.ChartPeriodIndex)
}

// SetChartPeriodIndex persists index.
func (s *Store) SetChartPeriodIndex(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load()
	st.ChartPeriodIndex = &index
	return s.save(st)
}

func (s *Store) load() state {
	var st state
	if _, err := jsonfile.Load(s.filePath, &st); err != nil {
		log.WithError(err).Warn("ignoring unreadable settings")
		return state{}
	}
	return st
}

func (s *Store) save(st state) error {
	if err := jsonfile.Save(s.filePath, st); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
