package main

import (
	"log"
	"net/http"

	"meal-market/cart"
	"meal-market/checkout"
	"meal-market/config"
	"meal-market/gateway"
	"meal-market/handlers"
	"meal-market/middleware"
	"meal-market/orderapi"
	"meal-market/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := config.InitLogger(); err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer zap.L().Sync()

	gin.SetMode(config.App.GinMode)

	if err := config.InitDB(); err != nil {
		zap.L().Fatal("failed to init database", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Meal Market API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍱 Welcome to the Meal Market API",
			"docs":    "/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "provider", "admin"},
		})
	})

	service := orderapi.NewGormService(config.DB)
	carts := cart.NewStore()
	flow := checkout.New(service)
	h := handlers.New(carts, flow, service, service)
	resolver := gateway.NewJWTResolver(config.JWTSecret(), config.DB)

	routes.SetupRoutes(r, h, resolver)

	zap.L().Info("server starting", zap.String("port", config.App.Port))
	if err := r.Run(":" + config.App.Port); err != nil {
		zap.L().Fatal("server failed", zap.Error(err))
	}
}
