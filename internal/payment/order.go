// Package payment drives the checkout flow: creating payment orders,
// verifying callback signatures and walking a registration attempt from
// order creation through verification to the ledger write.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cache2k25/registration-backend/internal/model"
)

// ErrOrderCreation wraps any failure to obtain an order descriptor.  The
// attempt is aborted; retrying is safe because nothing has been charged.
var ErrOrderCreation = errors.New("order creation failed")

// Currency is the only currency the fest charges in.
const Currency = "INR"

// OrderCreator produces payment-order descriptors for the checkout widget.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amountRupees int, receipt string) (model.Order, error)
}

// OrderService issues order descriptors locally, mirroring the provider's
// shape: paise amounts, INR, a "created" status and an opaque order ID.
type OrderService struct{}

// NewOrderService returns an OrderService.
func NewOrderService() *OrderService { return &OrderService{} }

// CreateOrder converts the rupee amount to paise and returns a fresh
// order descriptor.
func (s *OrderService) CreateOrder(_ context.Context, amountRupees int, receipt string) (model.Order, error) {
	if amountRupees <= 0 {
		return model.Order{}, fmt.Errorf("%w: amount must be positive, got %d", ErrOrderCreation, amountRupees)
	}
	return model.Order{
		ID:       "order_" + uuid.NewString(),
		Amount:   amountRupees * 100,
		Currency: Currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}
