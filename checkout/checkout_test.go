package checkout

import (
	"context"
	"testing"

	"meal-market/cart"
	"meal-market/models"
	"meal-market/orderapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderService struct {
	created []orderapi.CreateOrderRequest
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeOrderService) CreateOrder(ctx context.Context, req orderapi.CreateOrderRequest) (models.Order, error) {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	if f.err != nil {
		return models.Order{}, f.err
	}
	f.created = append(f.created, req)
	return models.Order{
		ID:          1,
		OrderNumber: "ORD-TEST",
		CustomerID:  req.CustomerID,
		ProviderID:  req.ProviderID,
		Status:      models.StatusPending,
	}, nil
}

func (f *fakeOrderService) UpdateStatus(context.Context, uint, orderapi.StatusChange) (models.Order, error) {
	return models.Order{}, nil
}

func (f *fakeOrderService) GetOrder(context.Context, uint) (models.Order, error) {
	return models.Order{}, nil
}

func (f *fakeOrderService) ListOrders(context.Context, orderapi.ListFilter) ([]models.Order, error) {
	return nil, nil
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	require.NoError(t, c.AddItem(models.Meal{ID: 1, ProviderID: 10, Name: "soup", Price: 8, IsAvailable: true}, 2))
	require.NoError(t, c.AddItem(models.Meal{ID: 2, ProviderID: 10, Name: "bread", Price: 3, IsAvailable: true}, 1))
	return c
}

func TestSubmit_Success(t *testing.T) {
	svc := &fakeOrderService{}
	flow := New(svc)
	c := filledCart(t)

	order, err := flow.Submit(context.Background(), c, "12 Baker Street", 7, "ring twice")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)

	// The cart is cleared only after the order is accepted upstream.
	assert.True(t, c.IsEmpty())

	require.Len(t, svc.created, 1)
	req := svc.created[0]
	assert.Equal(t, uint(7), req.CustomerID)
	assert.Equal(t, uint(10), req.ProviderID)
	assert.Equal(t, "12 Baker Street", req.Address)
	// Only meal references and quantities travel upstream; prices never do.
	assert.Equal(t, []orderapi.CreateOrderItem{
		{MealID: 1, Quantity: 2},
		{MealID: 2, Quantity: 1},
	}, req.Items)
}

func TestSubmit_EmptyCart(t *testing.T) {
	flow := New(&fakeOrderService{})
	_, err := flow.Submit(context.Background(), cart.New(), "12 Baker Street", 7, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmit_EmptyAddress(t *testing.T) {
	flow := New(&fakeOrderService{})
	c := filledCart(t)
	_, err := flow.Submit(context.Background(), c, "   ", 7, "")
	assert.ErrorIs(t, err, ErrEmptyAddress)
	assert.False(t, c.IsEmpty())
}

func TestSubmit_UpstreamFailurePreservesCart(t *testing.T) {
	svc := &fakeOrderService{err: orderapi.ErrUnavailable}
	flow := New(svc)
	c := filledCart(t)

	_, err := flow.Submit(context.Background(), c, "12 Baker Street", 7, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, orderapi.ErrUnavailable)

	// Failure is never implicit success: the cart survives for a retry.
	assert.Len(t, c.Items(), 2)
}

func TestSubmit_DoubleSubmitRefused(t *testing.T) {
	svc := &fakeOrderService{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	flow := New(svc)
	c := filledCart(t)

	done := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), c, "12 Baker Street", 7, "")
		done <- err
	}()

	// Wait until the first submission is inside the upstream call, then
	// try again with the same cart owner.
	<-svc.started
	_, err := flow.Submit(context.Background(), c, "12 Baker Street", 7, "")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(svc.release)
	require.NoError(t, <-done)
}
