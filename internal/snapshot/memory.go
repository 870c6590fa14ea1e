package snapshot

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// MemoryStore holds snapshots in process memory. Durability ends with the
// process; it exists for tests and for running without any storage backend.
type MemoryStore struct {
	mu        sync.Mutex
	carts     map[string][]domain.LineItem
	wishlists map[string][]domain.WishlistItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:     make(map[string][]domain.LineItem),
		wishlists: make(map[string][]domain.WishlistItem),
	}
}

func (s *MemoryStore) SaveCart(_ context.Context, sessionID string, lines []domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = append([]domain.LineItem(nil), lines...)
	return nil
}

func (s *MemoryStore) LoadCart(_ context.Context, sessionID string) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LineItem(nil), s.carts[sessionID]...), nil
}

func (s *MemoryStore) SaveWishlist(_ context.Context, sessionID string, items []domain.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlists[sessionID] = append([]domain.WishlistItem(nil), items...)
	return nil
}

func (s *MemoryStore) LoadWishlist(_ context.Context, sessionID string) ([]domain.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WishlistItem(nil), s.wishlists[sessionID]...), nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	delete(s.wishlists, sessionID)
	return nil
}
