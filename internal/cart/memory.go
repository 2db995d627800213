package cart

import (
	"context"
	"sync"

	"github.com/waterwise-labs/greywater-api/internal/models"
)

// MemoryStore keeps carts in process memory. Carts vanish on restart, which
// is acceptable for development and for deployments that treat the cart as
// ephemeral session state.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

// NewMemoryStore creates an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.CartItem)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, len(s.carts[sessionID]))
	copy(items, s.carts[sessionID])
	return models.NewCart(sessionID, items), nil
}

func (s *MemoryStore) AddItem(ctx context.Context, sessionID string, item models.CartItem) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[sessionID]
	merged := false
	for i := range items {
		if items[i].VariantID == item.VariantID {
			items[i].Quantity += item.Quantity
			items[i].Title = item.Title
			items[i].Image = item.Image
			items[i].Price = item.Price
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	s.carts[sessionID] = items

	return s.snapshot(sessionID), nil
}

func (s *MemoryStore) UpdateQuantity(ctx context.Context, sessionID, variantID string, quantity int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(sessionID, variantID)
		return s.snapshot(sessionID), nil
	}

	items := s.carts[sessionID]
	for i := range items {
		if items[i].VariantID == variantID {
			items[i].Quantity = quantity
			break
		}
	}

	return s.snapshot(sessionID), nil
}

func (s *MemoryStore) RemoveItem(ctx context.Context, sessionID, variantID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(sessionID, variantID)
	return s.snapshot(sessionID), nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// remove assumes the write lock is held.
func (s *MemoryStore) remove(sessionID, variantID string) {
	items := s.carts[sessionID]
	for i := range items {
		if items[i].VariantID == variantID {
			s.carts[sessionID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// snapshot assumes at least a read lock is held.
func (s *MemoryStore) snapshot(sessionID string) *models.Cart {
	items := make([]models.CartItem, len(s.carts[sessionID]))
	copy(items, s.carts[sessionID])
	return models.NewCart(sessionID, items)
}
