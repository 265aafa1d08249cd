package handlers

import (
	"net/http"

	"meal-market/config"
	"meal-market/middleware"
	"meal-market/models"

	"github.com/gin-gonic/gin"
)

// ── Shop Management ─────────────────────────────────────────────────────────

type CreateShopRequest struct {
	Name        string `json:"name" binding:"required"`
	Cuisine     string `json:"cuisine"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
}

// CreateShop lets a provider-role user create their shop
func (h *Handlers) CreateShop(c *gin.Context) {
	session := middleware.SessionFrom(c)
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop := models.Provider{
		OwnerID:     session.UserID,
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Address:     req.Address,
		Description: req.Description,
		IsOpen:      true,
	}
	if err := config.DB.Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shop"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Shop created", "provider": shop})
}

// GetMyShop fetches the shop owned by the logged-in provider
func (h *Handlers) GetMyShop(c *gin.Context) {
	session := middleware.SessionFrom(c)
	var shop models.Provider
	if err := config.DB.Preload("Meals").Where("owner_id = ?", session.UserID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shop found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": shop})
}

// UpdateShop updates shop details
func (h *Handlers) UpdateShop(c *gin.Context) {
	session := middleware.SessionFrom(c)
	var shop models.Provider
	if err := config.DB.Where("owner_id = ?", session.UserID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "cuisine": true, "address": true, "description": true, "is_open": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&shop).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Shop updated", "provider": shop})
}

// ── Meal Management ─────────────────────────────────────────────────────────

type CreateMealRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	IsVeg       bool    `json:"is_veg"`
}

// AddMeal adds a new meal to the provider's menu
func (h *Handlers) AddMeal(c *gin.Context) {
	session := middleware.SessionFrom(c)
	var shop models.Provider
	if err := config.DB.Where("owner_id = ?", session.UserID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Create a shop first before adding meals"})
		return
	}

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := models.Meal{
		ProviderID:  shop.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
		IsVeg:       req.IsVeg,
	}
	if err := config.DB.Create(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add meal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meal added", "meal": meal})
}

// UpdateMeal updates a meal on the provider's own menu
func (h *Handlers) UpdateMeal(c *gin.Context) {
	session := middleware.SessionFrom(c)
	mealID, ok := uintParam(c, "mealId")
	if !ok {
		return
	}

	var shop models.Provider
	if err := config.DB.Where("owner_id = ?", session.UserID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	var meal models.Meal
	if err := config.DB.Where("id = ? AND provider_id = ?", mealID, shop.ID).First(&meal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found on your menu"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true, "price": true,
		"category": true, "image_url": true, "is_available": true, "is_veg": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&meal).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Meal updated", "meal": meal})
}

// DeleteMeal removes a meal from the provider's own menu. Historical
// orders keep their snapshotted name and price.
func (h *Handlers) DeleteMeal(c *gin.Context) {
	session := middleware.SessionFrom(c)
	mealID, ok := uintParam(c, "mealId")
	if !ok {
		return
	}

	var shop models.Provider
	if err := config.DB.Where("owner_id = ?", session.UserID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	result := config.DB.Where("id = ? AND provider_id = ?", mealID, shop.ID).Delete(&models.Meal{})
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found on your menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}
