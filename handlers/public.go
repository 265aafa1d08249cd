package handlers

import (
	"net/http"

	"meal-market/config"
	"meal-market/lifecycle"
	"meal-market/models"

	"github.com/gin-gonic/gin"
)

// ListProviders returns all providers (public)
func (h *Handlers) ListProviders(c *gin.Context) {
	var providers []models.Provider
	query := config.DB

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	query.Find(&providers)
	c.JSON(http.StatusOK, gin.H{
		"count":     len(providers),
		"providers": providers,
	})
}

// GetProvider returns a single provider with its meals
func (h *Handlers) GetProvider(c *gin.Context) {
	var provider models.Provider
	if err := config.DB.Preload("Meals").First(&provider, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": provider})
}

// GetMenu returns the meals of a specific provider (public)
func (h *Handlers) GetMenu(c *gin.Context) {
	providerID := c.Param("id")
	var provider models.Provider
	if err := config.DB.First(&provider, providerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}

	var meals []models.Meal
	query := config.DB.Where("provider_id = ?", providerID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if isVeg := c.Query("is_veg"); isVeg == "true" {
		query = query.Where("is_veg = ?", true)
	}
	query.Find(&meals)

	c.JSON(http.StatusOK, gin.H{
		"provider": provider.Name,
		"count":    len(meals),
		"meals":    meals,
	})
}

// GetStateMachineInfo returns the full order lifecycle for documentation
func (h *Handlers) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"transitions":     lifecycle.AllTransitions(),
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Meal Market Order Lifecycle State Machine",
	})
}
