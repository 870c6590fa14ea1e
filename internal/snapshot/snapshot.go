package snapshot

import (
	"context"

	"storefront/internal/domain"
)

// SchemaVersion tags persisted snapshots. Loading a record with a different
// version discards it, so a future shape change cannot poison hydration.
const SchemaVersion = 1

// Store persists per-session cart and wishlist snapshots. Implementations
// never mutate what they are given; loads of missing sessions return empty
// slices with no error.
type Store interface {
	SaveCart(ctx context.Context, sessionID string, lines []domain.LineItem) error
	LoadCart(ctx context.Context, sessionID string) ([]domain.LineItem, error)
	SaveWishlist(ctx context.Context, sessionID string, items []domain.WishlistItem) error
	LoadWishlist(ctx context.Context, sessionID string) ([]domain.WishlistItem, error)
	Delete(ctx context.Context, sessionID string) error
}

type cartRecord struct {
	Version int               `json:"version"`
	Lines   []domain.LineItem `json:"lineItems"`
}

type wishlistRecord struct {
	Version int                   `json:"version"`
	Items   []domain.WishlistItem `json:"items"`
}
