// Package cart implements the cart state transitions and the free-gift
// promotion evaluated after each of them.
//
// A Manager has a single owner and is not safe for concurrent use.
package cart

import (
	"math"

	"github.com/google/uuid"

	"github.com/Cheertaboi/cart-service/internal/models"
)

// ProductSource is the catalog view a Manager needs.
type ProductSource interface {
	Lookup(id int) (models.Product, bool)
	Gift() models.Product
	IsGift(id int) bool
}

// Observer receives the snapshot produced by every operation.
type Observer func(models.Snapshot)

type Option func(*Manager)

func WithID(id string) Option {
	return func(m *Manager) { m.id = id }
}

func WithThreshold(threshold float64) Option {
	return func(m *Manager) { m.threshold = threshold }
}

func WithObserver(fn Observer) Option {
	return func(m *Manager) { m.observers = append(m.observers, fn) }
}

type Manager struct {
	id        string
	catalog   ProductSource
	rule      *PromotionRule
	threshold float64
	observers []Observer

	items     []models.LineItem
	giftAdded bool
	version   uint64
}

func NewManager(catalog ProductSource, opts ...Option) *Manager {
	m := &Manager{
		catalog:   catalog,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.id == "" {
		m.id = uuid.NewString()
	}
	m.rule = NewPromotionRule(m.threshold, catalog.Gift())
	return m
}

func (m *Manager) ID() string {
	return m.id
}

func (m *Manager) Rule() *PromotionRule {
	return m.rule
}

// AddToCart adds one unit of productID. Ids the catalog does not sell are ignored.
func (m *Manager) AddToCart(productID int) models.Snapshot {
	product, ok := m.catalog.Lookup(productID)
	if !ok {
		return m.commit(m.items)
	}

	next := make([]models.LineItem, 0, len(m.items)+1)
	found := false
	for _, it := range m.items {
		if it.ID == product.ID {
			it.Quantity++
			found = true
		}
		next = append(next, it)
	}
	if !found {
		next = append(next, models.LineItem{Product: product, Quantity: 1})
	}
	return m.commit(next)
}

// UpdateQuantity shifts the quantity of productID by delta, clamped at zero.
// Lines that reach zero are removed. The gift line is left untouched.
func (m *Manager) UpdateQuantity(productID, delta int) models.Snapshot {
	if m.catalog.IsGift(productID) {
		return m.commit(m.items)
	}

	next := make([]models.LineItem, 0, len(m.items))
	for _, it := range m.items {
		if it.ID == productID {
			it.Quantity = shiftQuantity(it.Quantity, delta)
		}
		if it.Quantity == 0 && !m.catalog.IsGift(it.ID) {
			continue
		}
		next = append(next, it)
	}
	return m.commit(next)
}

// shiftQuantity returns max(0, q+delta), saturating at math.MaxInt.
func shiftQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, q+delta)
}

// RemoveItem drops the line for productID, the gift included. If the subtotal
// still qualifies the promotion puts the gift straight back.
func (m *Manager) RemoveItem(productID int) models.Snapshot {
	next := make([]models.LineItem, 0, len(m.items))
	for _, it := range m.items {
		if it.ID == productID {
			continue
		}
		next = append(next, it)
	}
	return m.commit(next)
}

func (m *Manager) Clear() models.Snapshot {
	return m.commit(nil)
}

func (m *Manager) Subtotal() float64 {
	return m.rule.Subtotal(m.items)
}

func (m *Manager) GiftAdded() bool {
	return m.giftAdded
}

func (m *Manager) Items() []models.LineItem {
	out := make([]models.LineItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) Snapshot() models.Snapshot {
	s := models.Snapshot{
		CartID:    m.id,
		Version:   m.version,
		Items:     m.Items(),
		Subtotal:  m.Subtotal(),
		Threshold: m.rule.Threshold(),
		GiftAdded: m.giftAdded,
	}
	if s.GiftAdded {
		s.Notification = GiftNotification
	}
	return s
}

// commit installs next as the cart, runs the promotion pass and notifies observers.
func (m *Manager) commit(next []models.LineItem) models.Snapshot {
	items, state := m.rule.Apply(next)
	m.items = items
	m.giftAdded = state == GiftPresent
	m.version++

	snap := m.Snapshot()
	for _, fn := range m.observers {
		fn(snap)
	}
	return snap
}
