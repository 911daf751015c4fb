package portfolio

import (
	"errors"
	"fmt"
	"sync"

	"MetalStack/internal/jsonfile"
	"MetalStack/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "portfolio")

// ErrNotFound is returned for an index outside the collection.
var ErrNotFound = errors.New("holding not found")

// collection is the on-disk shape of collection.json.
type collection struct {
	Items []model.Holding `json:"items"`
}

// Patch holds optional replacements for the fields of a Holding.
type Patch struct {
	Name     *string
	Metal    *model.MetalKind
	WeightOz *decimal.Decimal
	Quantity *int
	Year     *int
}

// Manager is the holdings store. Every call re-reads the file so that edits
// made by the CLI show up in a running dashboard.
type Manager struct {
	mu       sync.Mutex
	filePath string
}

// NewManager creates a Manager over the collection file at filePath.
func NewManager(filePath string) *Manager {
	return &Manager{filePath: filePath}
}

// Validate checks a holding before it is stored.
func Validate(h model.Holding) error {
	if h.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !h.Metal.Valid() {
		return fmt.Errorf("unknown metal %q", h.Metal)
	}
	if !h.WeightOz.IsPositive() {
		return fmt.Errorf("weight must be positive, got %s", h.WeightOz)
	}
	if h.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", h.Quantity)
	}
	return nil
}

// List returns all holdings in insertion order. A missing file is an empty
// collection.
func (m *Manager) List() ([]model.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.load()
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

// Get returns the holding at index (0-based).
func (m *Manager) Get(index int) (model.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.load()
	if err != nil {
		return model.Holding{}, err
	}
	if index < 0 || index >= len(c.Items) {
		return model.Holding{}, fmt.Errorf("%w: #%d", ErrNotFound, index+1)
	}
	return c.Items[index], nil
}

// Add appends a holding.
func (m *Manager) Add(h model.Holding) error {
	if err := Validate(h); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.load()
	if err != nil {
		return err
	}
	c.Items = append(c.Items, h)
	if err := m.save(c); err != nil {
		return err
	}
	log.WithField("name", h.Name).Info("holding added")
	return nil
}

// Remove deletes the holding at index and returns it.
func (m *Manager) Remove(index int) (model.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.load()
	if err != nil {
		return model.Holding{}, err
	}
	if index < 0 || index >= len(c.Items) {
		return model.Holding{}, fmt.Errorf("%w: #%d", ErrNotFound, index+1)
	}
	removed := c.Items[index]
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	if err := m.save(c); err != nil {
		return model.Holding{}, err
	}
	log.WithField("name", removed.Name).Info("holding removed")
	return removed, nil
}

// Update applies the non-nil fields of p to the holding at index.
func (m *Manager) Update(index int, p Patch) (model.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.load()
	if err != nil {
		return model.Holding{}, err
	}
	if index < 0 || index >= len(c.Items) {
		return model.Holding{}, fmt.Errorf("%w: #%d", ErrNotFound, index+1)
	}

	h := c.Items[index]
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Metal != nil {
		h.Metal = *p.Metal
	}
	if p.WeightOz != nil {
		h.WeightOz = *p.WeightOz
	}
	if p.Quantity != nil {
		h.Quantity = *p.Quantity
	}
	if p.Year != nil {
		year := *p.Year
		h.Year = &year
	}
	if err := Validate(h); err != nil {
		return model.Holding{}, err
	}

	c.Items[index] = h
	if err := m.save(c); err != nil {
		return model.Holding{}, err
	}
	return h, nil
}

// UpdateQuantity sets the quantity of the holding at index.
func (m *Manager) UpdateQuantity(index, quantity int) (model.Holding, error) {
	return m.Update(index, Patch{Quantity: &quantity})
}

func (m *Manager) load() (*collection, error) {
	c := &collection{}
	if _, err := jsonfile.Load(m.filePath, c); err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return c, nil
}

func (m *Manager) save(c *collection) error {
	if c.Items == nil {
		c.Items = []model.Holding{}
	}
	if err := jsonfile.Save(m.filePath, c); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}
