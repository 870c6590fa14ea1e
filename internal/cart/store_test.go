package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
)

type stubPersister struct {
	loaded  []domain.LineItem
	loadErr error
	saved   chan []domain.LineItem
}

func newStubPersister() *stubPersister {
	return &stubPersister{saved: make(chan []domain.LineItem, 16)}
}

func (s *stubPersister) SaveCart(_ context.Context, _ string, lines []domain.LineItem) error {
	s.saved <- lines
	return nil
}

func (s *stubPersister) LoadCart(_ context.Context, _ string) ([]domain.LineItem, error) {
	return s.loaded, s.loadErr
}

func input(id string, priceCents int64, stock int) AddItemInput {
	return AddItemInput{
		ProductID:         id,
		Name:              "Product " + id,
		UnitPriceCents:    priceCents,
		Currency:          "USD",
		Slug:              id,
		AvailableQuantity: stock,
		Quantity:          1,
	}
}

func TestAddItemMergesSameCompositeKey(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()

	if _, err := store.AddItem(ctx, "s1", input("p1", 1000, 5)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := store.AddItem(ctx, "s1", input("p1", 1000, 5))
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
	if cart.TotalPriceCents != 2000 {
		t.Fatalf("expected total 2000, got %d", cart.TotalPriceCents)
	}
}

func TestAddItemDistinctVariantsStayDistinct(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()

	red := input("p1", 1000, 5)
	red.Color, red.Size = "Red", "M"
	blue := input("p1", 1000, 5)
	blue.Color, blue.Size = "Blue", "M"

	if _, err := store.AddItem(ctx, "s1", red); err != nil {
		t.Fatalf("add red: %v", err)
	}
	cart, err := store.AddItem(ctx, "s1", blue)
	if err != nil {
		t.Fatalf("add blue: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Color != "Red" || cart.Lines[1].Color != "Blue" {
		t.Fatalf("expected insertion order Red then Blue, got %+v", cart.Lines)
	}
}

func TestAddItemClampsToAvailableQuantity(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()

	in := input("p1", 500, 3)
	in.Quantity = 2
	if _, err := store.AddItem(ctx, "s1", in); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := store.AddItem(ctx, "s1", in)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected clamp to 3, got %d", cart.Lines[0].Quantity)
	}
	if cart.TotalPriceCents != 1500 {
		t.Fatalf("expected total 1500 after clamp, got %d", cart.TotalPriceCents)
	}
}

func TestAddItemRejectsOutOfStock(t *testing.T) {
	store := NewStore(nil, nil)
	_, err := store.AddItem(context.Background(), "s1", input("p1", 1000, 0))
	if !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if got := store.Snapshot(context.Background(), "s1"); len(got.Lines) != 0 {
		t.Fatalf("expected cart unchanged, got %+v", got)
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	store := NewStore(nil, nil)
	in := input("p1", 1000, 5)
	in.Quantity = 0
	cart, err := store.AddItem(context.Background(), "s1", in)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", cart.Lines[0].Quantity)
	}
}

func TestSetQuantityClampsAndRemovesAtZero(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()
	if _, err := store.AddItem(ctx, "s1", input("p2", 700, 3)); err != nil {
		t.Fatalf("add: %v", err)
	}
	key := Key("p2", "", "")

	cart, err := store.SetQuantity(ctx, "s1", key, 10)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected clamp to 3, got %d", cart.Lines[0].Quantity)
	}
	if cart.TotalPriceCents != 2100 {
		t.Fatalf("expected total 2100 at clamp boundary, got %d", cart.TotalPriceCents)
	}

	cart, err = store.SetQuantity(ctx, "s1", key, 0)
	if err != nil {
		t.Fatalf("set zero: %v", err)
	}
	if len(cart.Lines) != 0 || cart.TotalItemCount != 0 {
		t.Fatalf("expected empty cart after zero quantity, got %+v", cart)
	}
	if got := store.Snapshot(ctx, "s1"); len(got.Lines) != 0 {
		t.Fatalf("expected snapshot without removed key, got %+v", got)
	}
}

func TestSetQuantityUnknownKey(t *testing.T) {
	store := NewStore(nil, nil)
	_, err := store.SetQuantity(context.Background(), "s1", Key("missing", "", ""), 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()
	if _, err := store.AddItem(ctx, "s1", input("p1", 1000, 5)); err != nil {
		t.Fatalf("add: %v", err)
	}
	key := Key("p1", "", "")

	first := store.RemoveItem(ctx, "s1", key)
	second := store.RemoveItem(ctx, "s1", key)
	if len(first.Lines) != 0 || len(second.Lines) != 0 {
		t.Fatalf("expected empty cart both times, got %+v and %+v", first, second)
	}
	if first.TotalPriceCents != second.TotalPriceCents {
		t.Fatalf("expected identical totals, got %d and %d", first.TotalPriceCents, second.TotalPriceCents)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()
	if _, err := store.AddItem(ctx, "s1", input("p1", 1000, 5)); err != nil {
		t.Fatalf("add: %v", err)
	}
	store.Clear(ctx, "s1")

	cart := store.Snapshot(ctx, "s1")
	if len(cart.Lines) != 0 || cart.TotalItemCount != 0 || cart.TotalPriceCents != 0 {
		t.Fatalf("expected empty snapshot, got %+v", cart)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()
	if _, err := store.AddItem(ctx, "s1", input("p1", 1000, 5)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := store.Snapshot(ctx, "s2"); len(got.Lines) != 0 {
		t.Fatalf("expected empty cart for other session, got %+v", got)
	}
}

func TestSubscriberNotifiedOnMutation(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()

	var gotSession string
	var gotCart domain.Cart
	calls := 0
	unsubscribe := store.Subscribe(func(sessionID string, cart domain.Cart) {
		gotSession = sessionID
		gotCart = cart
		calls++
	})

	if _, err := store.AddItem(ctx, "s1", input("p1", 1000, 5)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if calls != 1 || gotSession != "s1" || gotCart.TotalItemCount != 1 {
		t.Fatalf("unexpected notification calls=%d session=%s cart=%+v", calls, gotSession, gotCart)
	}

	unsubscribe()
	store.Clear(ctx, "s1")
	if calls != 1 {
		t.Fatalf("expected no notification after unsubscribe, got %d calls", calls)
	}
}

func TestMutationMirrorsSnapshotToPersister(t *testing.T) {
	persist := newStubPersister()
	store := NewStore(persist, nil)

	if _, err := store.AddItem(context.Background(), "s1", input("p1", 1000, 5)); err != nil {
		t.Fatalf("add: %v", err)
	}

	select {
	case lines := <-persist.saved:
		if len(lines) != 1 || lines[0].ProductID != "p1" {
			t.Fatalf("unexpected persisted lines %+v", lines)
		}
	case <-time.After(time.Second):
		t.Fatal("expected snapshot save within a second")
	}
}

func TestHydratesFromPersisterOnFirstTouch(t *testing.T) {
	persist := newStubPersister()
	persist.loaded = []domain.LineItem{
		{ProductID: "p1", UnitPriceCents: 1000, AvailableQuantity: 5, Quantity: 2},
		{ProductID: "p1", UnitPriceCents: 1000, AvailableQuantity: 5, Quantity: 9}, // duplicate key, dropped
		{ProductID: "p2", UnitPriceCents: 500, AvailableQuantity: 5, Quantity: 0}, // invalid quantity, dropped
	}
	store := NewStore(persist, nil)

	cart := store.Snapshot(context.Background(), "s1")
	if len(cart.Lines) != 1 {
		t.Fatalf("expected one hydrated line, got %+v", cart.Lines)
	}
	if cart.TotalPriceCents != 2000 || cart.TotalItemCount != 2 {
		t.Fatalf("unexpected totals %+v", cart)
	}
}

func TestHydrationFailureFallsBackToEmpty(t *testing.T) {
	persist := newStubPersister()
	persist.loadErr = errors.New("storage offline")
	store := NewStore(persist, nil)

	cart := store.Snapshot(context.Background(), "s1")
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart on load failure, got %+v", cart)
	}

	// The failed load must not repeat; the session is usable afterwards.
	if _, err := store.AddItem(context.Background(), "s1", input("p1", 1000, 5)); err != nil {
		t.Fatalf("add after failed load: %v", err)
	}
}
