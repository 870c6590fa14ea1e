package httpserver

import (
	"net/http"
	"testing"

	"storefront/internal/cart"
)

func addBody(productID string, stock, qty int) cart.AddItemInput {
	return cart.AddItemInput{
		ProductID:         productID,
		Name:              "Product " + productID,
		UnitPriceCents:    1000,
		Currency:          "USD",
		Slug:              productID,
		AvailableQuantity: stock,
		Quantity:          qty,
	}
}

func TestCartAddAndGet(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", "sess-1", addBody("p1", 5, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/cart/items", "sess-1", addBody("p1", 5, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/cart", "sess-1", nil)
	body := decodeBody(t, rec)
	lines := body["lineItems"].([]any)
	if len(lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(lines))
	}
	if body["totalItemCount"].(float64) != 2 || body["totalPriceCents"].(float64) != 2000 {
		t.Fatalf("unexpected totals %v", body)
	}
}

func TestCartAddOutOfStock(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", "sess-1", addBody("p1", 0, 1))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCartAddInvalidBody(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", "sess-1", map[string]any{"quantity": "NaN"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartSetQuantity(t *testing.T) {
	router := testRouter(t)
	doJSON(t, router, http.MethodPost, "/api/cart/items", "sess-1", addBody("p1", 3, 1))

	rec := doJSON(t, router, http.MethodPatch, "/api/cart/items", "sess-1", map[string]any{
		"productId": "p1",
		"quantity":  10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	line := body["lineItems"].([]any)[0].(map[string]any)
	if line["quantity"].(float64) != 3 {
		t.Fatalf("expected clamp to stock 3, got %v", line["quantity"])
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/cart/items", "sess-1", map[string]any{
		"productId": "missing",
		"quantity":  1,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown line, got %d", rec.Code)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	router := testRouter(t)
	doJSON(t, router, http.MethodPost, "/api/cart/items", "sess-1", addBody("p1", 5, 1))
	doJSON(t, router, http.MethodPost, "/api/cart/items", "sess-1", addBody("p2", 5, 1))

	rec := doJSON(t, router, http.MethodDelete, "/api/cart/items?productId=p1", "sess-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if len(body["lineItems"].([]any)) != 1 {
		t.Fatalf("expected one remaining line, got %v", body)
	}

	// Removing again is a no-op success.
	rec = doJSON(t, router, http.MethodDelete, "/api/cart/items?productId=p1", "sess-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("idempotent remove: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/cart", "sess-1", nil)
	body = decodeBody(t, rec)
	if body["totalItemCount"].(float64) != 0 {
		t.Fatalf("expected empty cart after clear, got %v", body)
	}
}

func TestCartRemoveRequiresProductID(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodDelete, "/api/cart/items", "sess-1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartSessionsIsolated(t *testing.T) {
	router := testRouter(t)
	doJSON(t, router, http.MethodPost, "/api/cart/items", "sess-1", addBody("p1", 5, 1))

	rec := doJSON(t, router, http.MethodGet, "/api/cart", "sess-2", nil)
	body := decodeBody(t, rec)
	if len(body["lineItems"].([]any)) != 0 {
		t.Fatalf("expected empty cart for other session, got %v", body)
	}
}
