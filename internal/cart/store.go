package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

// Persister mirrors cart snapshots to durable storage. Saves are best-effort:
// the store logs failures and keeps going.
type Persister interface {
	SaveCart(ctx context.Context, sessionID string, lines []domain.LineItem) error
	LoadCart(ctx context.Context, sessionID string) ([]domain.LineItem, error)
}

// Subscriber is notified after every accepted mutation with a snapshot of the
// session's cart.
type Subscriber func(sessionID string, cart domain.Cart)

const persistTimeout = 3 * time.Second

// Store owns the in-memory carts of all sessions. Each mutation is atomic;
// derived totals are recomputed on every snapshot rather than cached.
type Store struct {
	mu      sync.Mutex
	carts   map[string]*state
	persist Persister
	logger  *log.Logger

	subMu   sync.Mutex
	subs    map[int]Subscriber
	nextSub int
}

// state is one session's cart: lines in insertion order plus a composite-key
// index for O(1) merge lookup.
type state struct {
	lines []domain.LineItem
	index map[CompositeKey]int
}

func NewStore(persist Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		carts:   make(map[string]*state),
		persist: persist,
		logger:  logger,
		subs:    make(map[int]Subscriber),
	}
}

// AddItemInput carries the candidate line for AddItem. Quantity defaults to 1
// when zero.
type AddItemInput struct {
	ProductID         string `json:"productId"`
	Name              string `json:"name"`
	UnitPriceCents    int64  `json:"unitPriceCents"`
	Currency          string `json:"currency"`
	Image             string `json:"image"`
	Slug              string `json:"slug"`
	AvailableQuantity int    `json:"availableQuantity"`
	Color             string `json:"color"`
	Size              string `json:"size"`
	Quantity          int    `json:"quantity"`
}

// AddItem merges the candidate into an existing line with the same composite
// key by summing quantities, or appends a new line at the end of the display
// order. Quantities clamp to the stock ceiling captured at add time. The add
// is rejected with ErrOutOfStock when the product has no available quantity.
func (s *Store) AddItem(ctx context.Context, sessionID string, in AddItemInput) (domain.Cart, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return domain.Cart{}, errors.New("productId required")
	}
	if in.AvailableQuantity <= 0 {
		return domain.Cart{}, domain.ErrOutOfStock
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}
	key := Key(in.ProductID, in.Color, in.Size)

	s.mu.Lock()
	st := s.stateLocked(ctx, sessionID)
	if i, ok := st.index[key]; ok {
		line := &st.lines[i]
		line.Quantity = clamp(line.Quantity+qty, line.AvailableQuantity)
	} else {
		st.index[key] = len(st.lines)
		st.lines = append(st.lines, domain.LineItem{
			ProductID:         key.ProductID,
			Name:              in.Name,
			UnitPriceCents:    in.UnitPriceCents,
			Currency:          in.Currency,
			Image:             in.Image,
			Slug:              in.Slug,
			AvailableQuantity: in.AvailableQuantity,
			Color:             key.Color,
			Size:              key.Size,
			Quantity:          clamp(qty, in.AvailableQuantity),
		})
	}
	cart := snapshotLocked(st)
	s.mu.Unlock()

	metrics.CartMutations.WithLabelValues("add").Inc()
	s.afterMutation(sessionID, cart)
	return cart, nil
}

// SetQuantity overwrites a line's quantity, clamped to [1, availableQuantity].
// A quantity of zero or less removes the line. Returns ErrNotFound when no
// line matches the key.
func (s *Store) SetQuantity(ctx context.Context, sessionID string, key CompositeKey, quantity int) (domain.Cart, error) {
	s.mu.Lock()
	st := s.stateLocked(ctx, sessionID)
	i, ok := st.index[key]
	if !ok {
		s.mu.Unlock()
		return domain.Cart{}, domain.ErrNotFound
	}
	if quantity <= 0 {
		st.removeAt(i, key)
	} else {
		st.lines[i].Quantity = clamp(quantity, st.lines[i].AvailableQuantity)
	}
	cart := snapshotLocked(st)
	s.mu.Unlock()

	metrics.CartMutations.WithLabelValues("set_quantity").Inc()
	s.afterMutation(sessionID, cart)
	return cart, nil
}

// RemoveItem deletes the line for key. Removing an absent key is a no-op
// success.
func (s *Store) RemoveItem(ctx context.Context, sessionID string, key CompositeKey) domain.Cart {
	s.mu.Lock()
	st := s.stateLocked(ctx, sessionID)
	i, ok := st.index[key]
	if !ok {
		cart := snapshotLocked(st)
		s.mu.Unlock()
		return cart
	}
	st.removeAt(i, key)
	cart := snapshotLocked(st)
	s.mu.Unlock()

	metrics.CartMutations.WithLabelValues("remove").Inc()
	s.afterMutation(sessionID, cart)
	return cart
}

// Clear empties the session's cart, e.g. after checkout completion.
func (s *Store) Clear(ctx context.Context, sessionID string) domain.Cart {
	s.mu.Lock()
	st := s.stateLocked(ctx, sessionID)
	st.lines = nil
	st.index = make(map[CompositeKey]int)
	cart := snapshotLocked(st)
	s.mu.Unlock()

	metrics.CartMutations.WithLabelValues("clear").Inc()
	s.afterMutation(sessionID, cart)
	return cart
}

// Snapshot returns a read-only copy of the session's cart with derived totals
// recomputed. A session never touched before hydrates from the persister
// first.
func (s *Store) Snapshot(ctx context.Context, sessionID string) domain.Cart {
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

// stateLocked returns the session's cart, hydrating it from the persister on
// first touch. Missing, corrupt or schema-mismatched snapshots fall back to
// an empty cart; hydration never fails a request.
func (s *Store) stateLocked(ctx context.Context, sessionID string) *state {
	if st, ok := s.carts[sessionID]; ok {
		return st
	}
	st := &state{index: make(map[CompositeKey]int)}
	if s.persist != nil {
		lines, err := s.persist.LoadCart(ctx, sessionID)
		if err != nil {
			s.logger.Printf("cart store: load session=%s error=%v, starting empty", sessionID, err)
		} else {
			for _, line := range lines {
				key := Key(line.ProductID, line.Color, line.Size)
				if _, dup := st.index[key]; dup || line.Quantity < 1 {
					continue
				}
				st.index[key] = len(st.lines)
				st.lines = append(st.lines, line)
			}
		}
	}
	s.carts[sessionID] = st
	return st
}

// afterMutation notifies subscribers synchronously, then mirrors the snapshot
// to storage without blocking the caller. Persistence is best effort.
func (s *Store) afterMutation(sessionID string, cart domain.Cart) {
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(sessionID, cart)
	}

	if s.persist == nil {
		return
	}
	lines := cart.Lines
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.persist.SaveCart(ctx, sessionID, lines); err != nil {
			s.logger.Printf("cart store: save session=%s error=%v", sessionID, err)
		}
	}()
}

func (st *state) removeAt(i int, key CompositeKey) {
	st.lines = append(st.lines[:i], st.lines[i+1:]...)
	delete(st.index, key)
	for j := i; j < len(st.lines); j++ {
		st.index[Key(st.lines[j].ProductID, st.lines[j].Color, st.lines[j].Size)] = j
	}
}

func snapshotLocked(st *state) domain.Cart {
	lines := make([]domain.LineItem, len(st.lines))
	copy(lines, st.lines)
	return domain.Cart{
		Lines:           lines,
		TotalItemCount:  domain.ItemCount(lines),
		TotalPriceCents: domain.TotalCents(lines),
	}
}

func clamp(quantity, available int) int {
	if available > 0 && quantity > available {
		return available
	}
	if quantity < 1 {
		return 1
	}
	return quantity
}
