package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/zerontec/rork-nexusdelivery-sub001/handlers"
	"github.com/zerontec/rork-nexusdelivery-sub001/middleware"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Businesses & catalogs (no auth needed)
		public.GET("/businesses", handlers.ListBusinesses)
		public.GET("/businesses/:id", handlers.GetBusiness)
		public.GET("/businesses/:id/products", handlers.GetProducts)
		public.GET("/products", handlers.LookupProducts)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Notification feed is role-agnostic: every actor has one
		auth.GET("/notifications", handlers.GetNotifications)
		auth.PUT("/notifications/:id/read", handlers.MarkNotificationRead)
		auth.PUT("/notifications/read-all", handlers.MarkAllNotificationsRead)
		auth.DELETE("/notifications/:id", handlers.DeleteNotification)
	}

	// ── Client routes ──────────────────────────────────────────────
	client := r.Group("/api/client")
	client.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleClient))
	{
		client.POST("/orders", handlers.PlaceOrder)
		client.GET("/orders", handlers.GetMyOrders)
		client.GET("/orders/:id", handlers.GetOrderDetail)
		client.PUT("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Business owner routes ──────────────────────────────────────
	business := r.Group("/api/business")
	business.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleBusiness))
	{
		// Business management
		business.POST("/", handlers.CreateBusiness)
		business.GET("/", handlers.GetMyBusiness)
		business.PUT("/", handlers.UpdateBusiness)

		// Catalog management
		business.POST("/products", handlers.AddProduct)
		business.PUT("/products/:productId", handlers.UpdateProduct)
		business.DELETE("/products/:productId", handlers.DeleteProduct)

		// Order management
		business.GET("/orders", handlers.GetBusinessOrders)
		business.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/driver")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/profile", handlers.GetDriverProfile)
		driver.PUT("/profile", handlers.UpdateDriverProfile)
		driver.GET("/orders/available", handlers.GetAvailableOrders)
		driver.GET("/orders/my-deliveries", handlers.GetMyDeliveries)
		driver.PUT("/orders/:id/claim", handlers.ClaimOrder)
		driver.PUT("/orders/:id/status", handlers.UpdateDeliveryStatus)
	}

	// ── Admin console routes ───────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/businesses", handlers.AdminGetAllBusinesses)
	}
}
