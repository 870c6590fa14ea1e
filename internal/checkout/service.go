package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

// Payment methods accepted by the simulated checkout.
const (
	PaymentMpesa = "mpesa"
	PaymentCard  = "card"
)

// CartSource is the cart store surface checkout needs: read the lines to
// order, clear after success.
type CartSource interface {
	Snapshot(ctx context.Context, sessionID string) domain.Cart
	Clear(ctx context.Context, sessionID string) domain.Cart
}

// ValidationError reports the fields that block submission, keyed by input
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Input is the submitted checkout form.
type Input struct {
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=mpesa card"`
	MpesaPhone    string `json:"mpesaPhone"`
	CardNumber    string `json:"cardNumber"`
	CardName      string `json:"cardName"`
	ExpiryDate    string `json:"expiryDate"`
	CVV           string `json:"cvv"`
}

// Order is the confirmation returned after a successful (simulated)
// placement.
type Order struct {
	OrderNumber   string            `json:"orderNumber"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	PaymentMethod string            `json:"paymentMethod"`
	Lines         []domain.LineItem `json:"lineItems"`
	SubtotalCents int64             `json:"subtotalCents"`
	ShippingCents int64             `json:"shippingCents"`
	TotalCents    int64             `json:"totalCents"`
	PlacedAt      time.Time         `json:"placedAt"`
}

// Service simulates order placement: validate, wait out a configured
// processing delay, then clear the cart. No real payment integration.
type Service struct {
	cart     CartSource
	validate *validator.Validate
	delay    time.Duration
	logger   *log.Logger
}

func New(cart CartSource, delay time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		cart:     cart,
		validate: validator.New(),
		delay:    delay,
		logger:   logger,
	}
}

// PlaceOrder validates the form against the session's cart, simulates
// payment processing, clears the cart and returns the order summary.
// Shipping is free for now.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, in Input) (*Order, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	cart := s.cart.Snapshot(ctx, sessionID)
	if len(cart.Lines) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"cart": "cart is empty"}}
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	order := &Order{
		OrderNumber:   uuid.NewString(),
		Email:         in.Email,
		Phone:         in.Phone,
		PaymentMethod: in.PaymentMethod,
		Lines:         cart.Lines,
		SubtotalCents: cart.TotalPriceCents,
		ShippingCents: 0,
		TotalCents:    cart.TotalPriceCents,
		PlacedAt:      time.Now().UTC(),
	}

	s.cart.Clear(ctx, sessionID)
	metrics.OrdersPlaced.Inc()
	s.logger.Printf("checkout: order=%s session=%s lines=%d total=%d", order.OrderNumber, sessionID, len(order.Lines), order.TotalCents)
	return order, nil
}

func (s *Service) validateInput(in Input) error {
	fields := make(map[string]string)

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate checkout input: %w", err)
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "Email":
				fields["email"] = "a valid email address is required"
			case "Phone":
				fields["phone"] = "phone number is required"
			case "PaymentMethod":
				fields["paymentMethod"] = "payment method must be mpesa or card"
			}
		}
	}

	switch in.PaymentMethod {
	case PaymentMpesa:
		if strings.TrimSpace(in.MpesaPhone) == "" {
			fields["mpesaPhone"] = "M-Pesa phone number is required"
		}
	case PaymentCard:
		if strings.TrimSpace(in.CardNumber) == "" {
			fields["cardNumber"] = "card number is required"
		}
		if strings.TrimSpace(in.CardName) == "" {
			fields["cardName"] = "name on card is required"
		}
		if !validExpiry(in.ExpiryDate) {
			fields["expiryDate"] = "expiry must be MM/YY"
		}
		if l := len(strings.TrimSpace(in.CVV)); l < 3 || l > 4 {
			fields["cvv"] = "cvv must be 3 or 4 digits"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validExpiry(v string) bool {
	v = strings.TrimSpace(v)
	if len(v) != 5 || v[2] != '/' {
		return false
	}
	var month, year int
	if _, err := fmt.Sscanf(v, "%02d/%02d", &month, &year); err != nil {
		return false
	}
	return month >= 1 && month <= 12
}
