package orderapi

import (
	"context"
	"errors"

	"meal-market/models"
)

// Failures of the collaborators themselves, distinct from domain
// rejections which keep their own sentinels (lifecycle, cart).
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrMealNotFound     = errors.New("meal not found")
	ErrProviderNotFound = errors.New("provider not found")
	ErrProviderClosed   = errors.New("provider is currently closed")
	ErrWrongProvider    = errors.New("meal does not belong to this provider")
	ErrMealUnavailable  = errors.New("meal is not available")
	ErrUnavailable      = errors.New("order service unavailable")
)

// CreateOrderItem carries only the meal reference and quantity. Prices
// are deliberately absent: the service re-reads the catalog and computes
// the charge itself, never trusting a client total.
type CreateOrderItem struct {
	MealID   uint `json:"meal_id"`
	Quantity int  `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID uint
	ProviderID uint
	Address    string
	Notes      string
	Items      []CreateOrderItem
}

// StatusChange is a requested lifecycle transition. The service validates
// it against the latest persisted status, not the caller's copy.
type StatusChange struct {
	To        models.OrderStatus
	ActorID   uint
	ActorRole models.UserRole
	Note      string
}

// ListFilter narrows ListOrders; zero values mean no constraint.
type ListFilter struct {
	CustomerID uint
	ProviderID uint
	Status     models.OrderStatus
}

// OrderService is the authoritative source of truth for order status and
// pricing.
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, change StatusChange) (models.Order, error)
	GetOrder(ctx context.Context, orderID uint) (models.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]models.Order, error)
}

// Catalog supplies meal price and availability at add-to-cart time.
type Catalog interface {
	Meal(ctx context.Context, mealID uint) (models.Meal, error)
	Provider(ctx context.Context, providerID uint) (models.Provider, error)
}
