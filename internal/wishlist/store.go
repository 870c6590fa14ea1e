package wishlist

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

// Persister mirrors wishlist snapshots to durable storage, best effort.
type Persister interface {
	SaveWishlist(ctx context.Context, sessionID string, items []domain.WishlistItem) error
	LoadWishlist(ctx context.Context, sessionID string) ([]domain.WishlistItem, error)
}

// Subscriber is notified after every accepted mutation with a snapshot of the
// session's wishlist.
type Subscriber func(sessionID string, items []domain.WishlistItem)

const persistTimeout = 3 * time.Second

// Store owns the in-memory wishlists of all sessions. The wishlist is keyed
// by product ID alone: no variant granularity, no quantities to merge. Add is
// strictly idempotent; Toggle is the canonical flip operation.
type Store struct {
	mu      sync.Mutex
	lists   map[string]*state
	persist Persister
	logger  *log.Logger

	subMu   sync.Mutex
	subs    map[int]Subscriber
	nextSub int
}

type state struct {
	items []domain.WishlistItem
	index map[string]int
}

func NewStore(persist Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		lists:   make(map[string]*state),
		persist: persist,
		logger:  logger,
		subs:    make(map[int]Subscriber),
	}
}

// Add inserts the item unless its product is already present; a duplicate add
// is a no-op success, never a toggle.
func (s *Store) Add(ctx context.Context, sessionID string, item domain.WishlistItem) []domain.WishlistItem {
	item.ProductID = strings.TrimSpace(item.ProductID)

	s.mu.Lock()
	st := s.stateLocked(ctx, sessionID)
	if _, ok := st.index[item.ProductID]; !ok && item.ProductID != "" {
		st.index[item.ProductID] = len(st.items)
		st.items = append(st.items, item)
	}
	items := snapshotLocked(st)
	s.mu.Unlock()

	metrics.WishlistMutations.WithLabelValues("add").Inc()
	s.afterMutation(sessionID, items)
	return items
}

// Remove deletes the item for productID; removing an absent product is a
// no-op success.
func (s *Store) Remove(ctx context.Context, sessionID, productID string) []domain.WishlistItem {
	s.mu.Lock()
	st := s.stateLocked(ctx, sessionID)
	if i, ok := st.index[productID]; ok {
		st.removeAt(i, productID)
	}
	items := snapshotLocked(st)
	s.mu.Unlock()

	metrics.WishlistMutations.WithLabelValues("remove").Inc()
	s.afterMutation(sessionID, items)
	return items
}

// Toggle adds the item when absent and removes it when present.
func (s *Store) Toggle(ctx context.Context, sessionID string, item domain.WishlistItem) (items []domain.WishlistItem, added bool) {
	item.ProductID = strings.TrimSpace(item.ProductID)

	s.mu.Lock()
	st := s.stateLocked(ctx, sessionID)
	if i, ok := st.index[item.ProductID]; ok {
		st.removeAt(i, item.ProductID)
		added = false
	} else if item.ProductID != "" {
		st.index[item.ProductID] = len(st.items)
		st.items = append(st.items, item)
		added = true
	}
	items = snapshotLocked(st)
	s.mu.Unlock()

	metrics.WishlistMutations.WithLabelValues("toggle").Inc()
	s.afterMutation(sessionID, items)
	return items, added
}

// Contains reports whether the session's wishlist holds productID.
func (s *Store) Contains(ctx context.Context, sessionID, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stateLocked(ctx, sessionID).index[productID]
	return ok
}

// List returns a copy of the session's wishlist in insertion order.
func (s *Store) List(ctx context.Context, sessionID string) []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotLocked(s.stateLocked(ctx, sessionID))
}

// Subscribe registers fn to run after every accepted mutation. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) stateLocked(ctx context.Context, sessionID string) *state {
	if st, ok := s.lists[sessionID]; ok {
		return st
	}
	st := &state{index: make(map[string]int)}
	if s.persist != nil {
		items, err := s.persist.LoadWishlist(ctx, sessionID)
		if err != nil {
			s.logger.Printf("wishlist store: load session=%s error=%v, starting empty", sessionID, err)
		} else {
			for _, item := range items {
				if _, dup := st.index[item.ProductID]; dup || item.ProductID == "" {
					continue
				}
				st.index[item.ProductID] = len(st.items)
				st.items = append(st.items, item)
			}
		}
	}
	s.lists[sessionID] = st
	return st
}

func (s *Store) afterMutation(sessionID string, items []domain.WishlistItem) {
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(sessionID, items)
	}

	if s.persist == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.persist.SaveWishlist(ctx, sessionID, items); err != nil {
			s.logger.Printf("wishlist store: save session=%s error=%v", sessionID, err)
		}
	}()
}

func (st *state) removeAt(i int, productID string) {
	st.items = append(st.items[:i], st.items[i+1:]...)
	delete(st.index, productID)
	for j := i; j < len(st.items); j++ {
		st.index[st.items[j].ProductID] = j
	}
}

func snapshotLocked(st *state) []domain.WishlistItem {
	items := make([]domain.WishlistItem, len(st.items))
	copy(items, st.items)
	return items
}
