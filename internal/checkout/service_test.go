package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
)

type stubCart struct {
	cart    domain.Cart
	cleared bool
}

func (s *stubCart) Snapshot(_ context.Context, _ string) domain.Cart {
	return s.cart
}

func (s *stubCart) Clear(_ context.Context, _ string) domain.Cart {
	s.cleared = true
	s.cart = domain.Cart{}
	return s.cart
}

func filledCart() domain.Cart {
	lines := []domain.LineItem{
		{ProductID: "p1", Name: "Widget", UnitPriceCents: 1000, Quantity: 2, AvailableQuantity: 5},
	}
	return domain.Cart{
		Lines:           lines,
		TotalItemCount:  2,
		TotalPriceCents: 2000,
	}
}

func validInput() Input {
	return Input{
		Email:         "buyer@example.com",
		Phone:         "+254700000000",
		PaymentMethod: PaymentMpesa,
		MpesaPhone:    "+254700000000",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr.Fields
}

func TestPlaceOrderHappyPath(t *testing.T) {
	cart := &stubCart{cart: filledCart()}
	svc := New(cart, 0, nil)

	order, err := svc.PlaceOrder(context.Background(), "s1", validInput())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.OrderNumber == "" {
		t.Fatal("expected an order number")
	}
	if order.SubtotalCents != 2000 || order.TotalCents != 2000 || order.ShippingCents != 0 {
		t.Fatalf("unexpected totals %+v", order)
	}
	if len(order.Lines) != 1 {
		t.Fatalf("expected order lines copied from cart, got %d", len(order.Lines))
	}
	if !cart.cleared {
		t.Fatal("expected cart cleared after successful checkout")
	}
}

func TestPlaceOrderRequiresContactInfo(t *testing.T) {
	svc := New(&stubCart{cart: filledCart()}, 0, nil)

	in := validInput()
	in.Email = "not-an-email"
	in.Phone = ""
	_, err := svc.PlaceOrder(context.Background(), "s1", in)

	fields := fieldsOf(t, err)
	if _, ok := fields["email"]; !ok {
		t.Fatalf("expected email error, got %v", fields)
	}
	if _, ok := fields["phone"]; !ok {
		t.Fatalf("expected phone error, got %v", fields)
	}
}

func TestPlaceOrderMpesaRequiresMpesaPhone(t *testing.T) {
	svc := New(&stubCart{cart: filledCart()}, 0, nil)

	in := validInput()
	in.MpesaPhone = "   "
	_, err := svc.PlaceOrder(context.Background(), "s1", in)

	if _, ok := fieldsOf(t, err)["mpesaPhone"]; !ok {
		t.Fatalf("expected mpesaPhone error, got %v", err)
	}
}

func TestPlaceOrderCardRequiresAllCardFields(t *testing.T) {
	svc := New(&stubCart{cart: filledCart()}, 0, nil)

	in := validInput()
	in.PaymentMethod = PaymentCard
	in.MpesaPhone = ""
	_, err := svc.PlaceOrder(context.Background(), "s1", in)

	fields := fieldsOf(t, err)
	for _, want := range []string{"cardNumber", "cardName", "expiryDate", "cvv"} {
		if _, ok := fields[want]; !ok {
			t.Fatalf("expected %s error, got %v", want, fields)
		}
	}
}

func TestPlaceOrderCardExpiryFormat(t *testing.T) {
	svc := New(&stubCart{cart: filledCart()}, 0, nil)

	in := validInput()
	in.PaymentMethod = PaymentCard
	in.CardNumber = "4242424242424242"
	in.CardName = "Buyer Name"
	in.CVV = "123"

	for _, expiry := range []string{"13/26", "1/26", "0126", "ab/cd"} {
		in.ExpiryDate = expiry
		_, err := svc.PlaceOrder(context.Background(), "s1", in)
		if _, ok := fieldsOf(t, err)["expiryDate"]; !ok {
			t.Fatalf("expected expiry error for %q", expiry)
		}
	}

	in.ExpiryDate = "12/26"
	if _, err := svc.PlaceOrder(context.Background(), "s1", in); err != nil {
		t.Fatalf("expected valid expiry to pass, got %v", err)
	}
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	svc := New(&stubCart{cart: filledCart()}, 0, nil)

	in := validInput()
	in.PaymentMethod = "crypto"
	_, err := svc.PlaceOrder(context.Background(), "s1", in)

	if _, ok := fieldsOf(t, err)["paymentMethod"]; !ok {
		t.Fatalf("expected paymentMethod error, got %v", err)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	cart := &stubCart{}
	svc := New(cart, 0, nil)

	_, err := svc.PlaceOrder(context.Background(), "s1", validInput())
	if _, ok := fieldsOf(t, err)["cart"]; !ok {
		t.Fatalf("expected cart error, got %v", err)
	}
	if cart.cleared {
		t.Fatal("cart must not be cleared on failure")
	}
}

func TestPlaceOrderHonorsContextCancellation(t *testing.T) {
	cart := &stubCart{cart: filledCart()}
	svc := New(cart, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PlaceOrder(ctx, "s1", validInput())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if cart.cleared {
		t.Fatal("cart must not be cleared on cancelled checkout")
	}
}
