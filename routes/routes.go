package routes

import (
	"meal-market/gateway"
	"meal-market/handlers"
	"meal-market/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every namespace behind the access gateway. The gate
// runs on every request: public auth pages and the open catalog pass
// through, role-scoped dashboards redirect anonymous callers to login
// and cross-role callers to their own dashboard root.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, resolver gateway.Resolver) {
	r.Use(middleware.Sessions(resolver), middleware.Gate())

	// ── Public auth pages ──────────────────────────────────────────
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/forgot-password", h.ForgotPassword)
	r.POST("/reset-password", h.ResetPassword)

	// ── Open catalog ───────────────────────────────────────────────
	r.GET("/providers", h.ListProviders)
	r.GET("/providers/:id", h.GetProvider)
	r.GET("/providers/:id/menu", h.GetMenu)
	r.GET("/state-machine", h.GetStateMachineInfo)

	// ── Authenticated, any role ────────────────────────────────────
	r.POST("/logout", h.Logout)
	r.GET("/profile", h.GetProfile)

	// ── Customer dashboard ─────────────────────────────────────────
	customer := r.Group("/dashboard")
	{
		customer.GET("/cart", h.GetCart)
		customer.POST("/cart/items", h.AddToCart)
		customer.PUT("/cart/items/:mealId", h.UpdateCartItem)
		customer.DELETE("/cart/items/:mealId", h.RemoveCartItem)
		customer.DELETE("/cart", h.ClearCart)
		customer.POST("/checkout", h.Checkout)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)
	}

	// ── Provider dashboard ─────────────────────────────────────────
	provider := r.Group("/provider-dashboard")
	{
		provider.POST("/shop", h.CreateShop)
		provider.GET("/shop", h.GetMyShop)
		provider.PUT("/shop", h.UpdateShop)

		provider.POST("/meals", h.AddMeal)
		provider.PUT("/meals/:mealId", h.UpdateMeal)
		provider.DELETE("/meals/:mealId", h.DeleteMeal)

		provider.GET("/orders", h.GetProviderOrders)
		provider.PUT("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Admin dashboard ────────────────────────────────────────────
	admin := r.Group("/admin-dashboard")
	{
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", h.AdminOverrideOrderStatus)
		admin.GET("/users", h.AdminGetAllUsers)
		admin.GET("/providers", h.AdminGetAllProviders)
	}
}
