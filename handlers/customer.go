package handlers

import (
	"net/http"

	"meal-market/middleware"
	"meal-market/models"
	"meal-market/orderapi"

	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	MealID   uint `json:"meal_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// AddToCart puts a meal in the caller's cart after a catalog lookup for
// current price and availability.
func (h *Handlers) AddToCart(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	meal, err := h.Catalog.Meal(c.Request.Context(), req.MealID)
	if err != nil {
		reject(c, err)
		return
	}

	userCart := h.Carts.Get(session.UserID)
	if err := userCart.AddItem(meal, req.Quantity); err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "cart": userCart.Summary()})
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateCartItem sets the quantity of a meal already in the cart
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	session := middleware.SessionFrom(c)
	mealID, ok := uintParam(c, "mealId")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCart := h.Carts.Get(session.UserID)
	if err := userCart.UpdateQuantity(mealID, req.Quantity); err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": userCart.Summary()})
}

// RemoveCartItem drops a meal from the cart
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	session := middleware.SessionFrom(c)
	mealID, ok := uintParam(c, "mealId")
	if !ok {
		return
	}

	userCart := h.Carts.Get(session.UserID)
	if err := userCart.RemoveItem(mealID); err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart", "cart": userCart.Summary()})
}

// GetCart returns the current cart with derived pricing
func (h *Handlers) GetCart(c *gin.Context) {
	session := middleware.SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{"cart": h.Carts.Get(session.UserID).Summary()})
}

// ClearCart empties the cart
func (h *Handlers) ClearCart(c *gin.Context) {
	session := middleware.SessionFrom(c)
	h.Carts.Get(session.UserID).Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
}

// Checkout submits the cart as a new order. The request sent upstream
// carries meal IDs and quantities only; the displayed total is advisory
// and the order service computes the real charge.
func (h *Handlers) Checkout(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCart := h.Carts.Get(session.UserID)
	order, err := h.Flow.Submit(c.Request.Context(), userCart, req.DeliveryAddress, session.UserID, req.Notes)
	if err != nil {
		reject(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func (h *Handlers) GetMyOrders(c *gin.Context) {
	session := middleware.SessionFrom(c)
	orders, err := h.Orders.ListOrders(c.Request.Context(), orderapi.ListFilter{CustomerID: session.UserID})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func (h *Handlers) GetOrderDetail(c *gin.Context) {
	session := middleware.SessionFrom(c)
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		reject(c, err)
		return
	}
	if order.CustomerID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels an order. The lifecycle engine decides whether the
// customer may still cancel at the order's current status.
func (h *Handlers) CancelOrder(c *gin.Context) {
	session := middleware.SessionFrom(c)
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		reject(c, err)
		return
	}
	if order.CustomerID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	updated, err := h.Orders.UpdateStatus(c.Request.Context(), orderID, orderapi.StatusChange{
		To:        models.StatusCancelled,
		ActorID:   session.UserID,
		ActorRole: models.RoleCustomer,
		Note:      "cancelled by customer",
	})
	if err != nil {
		reject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": updated})
}
