package handlers

import (
	"net/http"

	"meal-market/config"
	"meal-market/middleware"
	"meal-market/models"
	"meal-market/orderapi"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns all orders with full detail — admin only
func (h *Handlers) AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.Meal").
		Preload("Customer").Preload("Provider").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		parsed, ok := models.ParseStatus(status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + status})
			return
		}
		query = query.Where("status = ?", parsed)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if providerID := c.Query("provider_id"); providerID != "" {
		query = query.Where("provider_id = ?", providerID)
	}

	query.Order("created_at desc").Find(&orders)

	// Admin dashboard: aggregate by status
	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.TotalAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetAllUsers returns all users — admin only
func (h *Handlers) AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllProviders returns all provider shops — admin only
func (h *Handlers) AdminGetAllProviders(c *gin.Context) {
	var providers []models.Provider
	config.DB.Preload("Owner").Preload("Meals").Find(&providers)
	c.JSON(http.StatusOK, gin.H{"count": len(providers), "providers": providers})
}

type AdminOverrideRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// AdminOverrideOrderStatus is the supervisory override: it still runs
// through the lifecycle engine, so terminal orders and off-chain jumps
// are refused, but role gating is bypassed and the change is audited
// distinctly from normal flow.
func (h *Handlers) AdminOverrideOrderStatus(c *gin.Context) {
	session := middleware.SessionFrom(c)
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req AdminOverrideRequest
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
		ActorRole: models.RoleAdmin,
		Note:      req.Reason,
	})
	if err != nil {
		reject(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Order status overridden by admin",
		"order_id":   updated.ID,
		"new_status": updated.Status,
	})
}
