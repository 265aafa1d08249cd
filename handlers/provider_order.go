package handlers

import (
	"net/http"

	"meal-market/config"
	"meal-market/lifecycle"
	"meal-market/middleware"
	"meal-market/models"
	"meal-market/orderapi"

	"github.com/gin-gonic/gin"
)

// GetProviderOrders returns the order queue for the provider's shop
func (h *Handlers) GetProviderOrders(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var shop models.Provider
	if err := config.DB.Where("owner_id = ?", session.UserID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shop found for your account"})
		return
	}

	filter := orderapi.ListFilter{ProviderID: shop.ID}
	if status := c.Query("status"); status != "" {
		parsed, ok := models.ParseStatus(status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + status})
			return
		}
		filter.Status = parsed
	}

	orders, err := h.Orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		reject(c, err)
		return
	}

	// Dashboard summary: counts by status
	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":      shop.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateOrderStatus moves one of the provider's orders along the
// lifecycle. Legacy status names are normalized before validation; the
// order service re-checks the transition against the latest stored state.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	session := middleware.SessionFrom(c)
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var shop models.Provider
	if err := config.DB.Where("owner_id = ?", session.UserID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shop found for your account"})
		return
	}

	order, err := h.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		reject(c, err)
		return
	}
	if order.ProviderID != shop.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your shop"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	requested, ok := models.ParseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + req.Status})
		return
	}

	updated, err := h.Orders.UpdateStatus(c.Request.Context(), orderID, orderapi.StatusChange{
		To:        requested,
		ActorID:   session.UserID,
		ActorRole: models.RoleProvider,
		Note:      req.Note,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":             err.Error(),
			"reason":            reason(err),
			"current_status":    order.Status,
			"requested":         requested,
			"valid_next_states": lifecycle.NextStates(order.Status),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        updated.ID,
		"previous_status": order.Status,
		"current_status":  updated.Status,
	})
}
