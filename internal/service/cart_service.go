package service

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Cheertaboi/cart-service/internal/cart"
	"github.com/Cheertaboi/cart-service/internal/models"
)

// Catalog is what the service exposes to the rendering surface and what the
// cart manager looks products up in.
type Catalog interface {
	cart.ProductSource
	Products() []models.Product
}

// CartService is the single owner of a cart session. Intents arriving from
// concurrent requests are applied one at a time.
type CartService struct {
	mu      sync.Mutex
	catalog Catalog
	manager *cart.Manager
	logger  *zap.Logger

	giftAdded bool
}

func NewCartService(catalog Catalog, logger *zap.Logger, opts ...cart.Option) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CartService{
		catalog: catalog,
		logger:  logger,
	}
	opts = append(opts, cart.WithObserver(s.observe))
	s.manager = cart.NewManager(catalog, opts...)
	s.logger = logger.With(zap.String("cart_id", s.manager.ID()))
	return s
}

func (s *CartService) Products() []models.Product {
	return s.catalog.Products()
}

func (s *CartService) Cart() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Snapshot()
}

func (s *CartService) AddToCart(productID int) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.catalog.Lookup(productID); !ok {
		s.logger.Debug("ignoring unknown product", zap.Int("product_id", productID))
	} else {
		s.logger.Info("adding item", zap.Int("product_id", productID))
	}
	return s.manager.AddToCart(productID)
}

func (s *CartService) UpdateQuantity(productID, delta int) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("updating quantity", zap.Int("product_id", productID), zap.Int("delta", delta))
	return s.manager.UpdateQuantity(productID, delta)
}

func (s *CartService) RemoveItem(productID int) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("removing item", zap.Int("product_id", productID))
	return s.manager.RemoveItem(productID)
}

func (s *CartService) Clear() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("clearing cart")
	return s.manager.Clear()
}

// observe runs inside the manager's commit, so s.mu is already held.
func (s *CartService) observe(snap models.Snapshot) {
	s.logger.Debug("cart updated",
		zap.Uint64("version", snap.Version),
		zap.Int("lines", len(snap.Items)),
		zap.Float64("subtotal", snap.Subtotal),
		zap.Bool("gift_added", snap.GiftAdded),
	)

	if snap.GiftAdded == s.giftAdded {
		return
	}
	s.giftAdded = snap.GiftAdded
	if snap.GiftAdded {
		s.logger.Info("free gift granted", zap.Float64("subtotal", snap.Subtotal), zap.Float64("threshold", snap.Threshold))
	} else {
		s.logger.Info("free gift revoked", zap.Float64("subtotal", snap.Subtotal), zap.Float64("threshold", snap.Threshold))
	}
}
