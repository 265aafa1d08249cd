package cart

import (
	"errors"
	"sync"

	"meal-market/models"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

var (
	freeDeliveryAbove = decimal.NewFromInt(30)
	flatDeliveryFee   = decimal.NewFromInt(5)
)

// Rejection reasons surfaced to the caller; no partial mutation is
// applied when any of these is returned.
var (
	ErrProviderConflict   = errors.New("cart already holds meals from a different provider")
	ErrQuantityOutOfRange = errors.New("quantity must be between 1 and 99")
	ErrMealUnavailable    = errors.New("meal is not available")
	ErrItemNotFound       = errors.New("meal is not in the cart")
)

// Item is one selected meal. UnitPrice is the catalog price at the time
// the meal was added; it is display-only and never sent as the charge.
type Item struct {
	MealID      uint            `json:"meal_id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url,omitempty"`
	ProviderID  uint            `json:"provider_id"`
	IsAvailable bool            `json:"is_available"`
}

// Summary is the derived pricing view of the cart, recomputed from
// current contents on every call.
type Summary struct {
	Items       []Item          `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Cart holds one identity's selected meals: ordered, unique by meal ID,
// and all from a single provider so it can always be submitted as one
// order.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// AddItem puts a meal in the cart. Adding a meal that is already present
// merges quantities, still bounded by MaxQuantity. A meal from a second
// provider is a conflict and is rejected, never silently merged.
func (c *Cart) AddItem(meal models.Meal, qty int) error {
	if qty < MinQuantity || qty > MaxQuantity {
		return ErrQuantityOutOfRange
	}
	if !meal.IsAvailable {
		return ErrMealUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) > 0 && c.items[0].ProviderID != meal.ProviderID {
		return ErrProviderConflict
	}
	for i := range c.items {
		if c.items[i].MealID == meal.ID {
			merged := c.items[i].Quantity + qty
			if merged > MaxQuantity {
				return ErrQuantityOutOfRange
			}
			c.items[i].Quantity = merged
			return nil
		}
	}
	c.items = append(c.items, Item{
		MealID:      meal.ID,
		Name:        meal.Name,
		UnitPrice:   decimal.NewFromFloat(meal.Price),
		Quantity:    qty,
		ImageURL:    meal.ImageURL,
		ProviderID:  meal.ProviderID,
		IsAvailable: meal.IsAvailable,
	})
	return nil
}

// UpdateQuantity sets the quantity of a meal already in the cart.
// Out-of-range values are rejected, not clamped, so the caller can give
// feedback.
func (c *Cart) UpdateQuantity(mealID uint, qty int) error {
	if qty < MinQuantity || qty > MaxQuantity {
		return ErrQuantityOutOfRange
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MealID == mealID {
			c.items[i].Quantity = qty
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem drops a meal from the cart. Removing the last item releases
// the single-provider lock for the next add.
func (c *Cart) RemoveItem(mealID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MealID == mealID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// ProviderID returns the provider all current items belong to, or false
// for an empty cart.
func (c *Cart) ProviderID() (uint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return 0, false
	}
	return c.items[0].ProviderID, true
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

// DeliveryFee returns the fee charged on a given subtotal: free strictly
// above 30, otherwise a flat 5. The backend applies the same rule when it
// prices an order, so the cart's display matches the final charge.
func DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeDeliveryAbove) {
		return decimal.Zero
	}
	return flatDeliveryFee
}

// Summary recomputes subtotal, delivery fee and total from current
// contents. Delivery is free strictly above 30, otherwise a flat 5.
func (c *Cart) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	fee := DeliveryFee(subtotal)
	if len(c.items) == 0 {
		fee = decimal.Zero
	}
	return Summary{
		Items:       append([]Item(nil), c.items...),
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
	}
}
