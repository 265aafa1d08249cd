package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"meal-market/cart"
	"meal-market/models"
	"meal-market/orderapi"

	"go.uber.org/zap"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrEmptyAddress       = errors.New("delivery address is required")
	ErrSubmissionInFlight = errors.New("an order submission is already in flight for this cart")
)

// Flow turns a validated cart into a persisted order. It never trusts
// the cart's prices: the create request carries meal IDs and quantities
// only, and the order service computes the charge.
type Flow struct {
	orders orderapi.OrderService

	mu       sync.Mutex
	inflight map[uint]bool
}

func New(orders orderapi.OrderService) *Flow {
	return &Flow{orders: orders, inflight: make(map[uint]bool)}
}

// Submit creates a PENDING order from the customer's cart. On success the
// cart is cleared; on any failure the cart is preserved unchanged so the
// customer can retry. A second submit while one is in flight is refused.
func (f *Flow) Submit(ctx context.Context, c *cart.Cart, address string, customerID uint, notes string) (models.Order, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.Order{}, ErrEmptyAddress
	}
	items := c.Items()
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	f.mu.Lock()
	if f.inflight[customerID] {
		f.mu.Unlock()
		return models.Order{}, ErrSubmissionInFlight
	}
	f.inflight[customerID] = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		delete(f.inflight, customerID)
		f.mu.Unlock()
	}()

	req := orderapi.CreateOrderRequest{
		CustomerID: customerID,
		ProviderID: items[0].ProviderID,
		Address:    address,
		Notes:      notes,
	}
	for _, item := range items {
		req.Items = append(req.Items, orderapi.CreateOrderItem{
			MealID:   item.MealID,
			Quantity: item.Quantity,
		})
	}

	order, err := f.orders.CreateOrder(ctx, req)
	if err != nil {
		return models.Order{}, err
	}

	c.Clear()
	zap.L().Info("order submitted",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Uint("customer_id", customerID),
	)
	return order, nil
}
