package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

// AdminGetAllOrders returns all orders with full detail — admin console only
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.Product").
		Preload("Client").Preload("Business").Preload("Driver").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if clientID := c.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if businessID := c.Query("business_id"); businessID != "" {
		query = query.Where("business_id = ?", businessID)
	}

	query.Order("created_at desc").Find(&orders)

	// Console dashboard: aggregate by status
	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetAllUsers returns all profiles — admin console only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.Profile
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllBusinesses returns all businesses — admin console only
func AdminGetAllBusinesses(c *gin.Context) {
	var businesses []models.Business
	config.DB.Preload("Owner").Preload("Products").Find(&businesses)
	c.JSON(http.StatusOK, gin.H{"count": len(businesses), "businesses": businesses})
}

// AdminForceOrderStatus lets an admin override any order state (emergency use).
// The state machine still applies, with the admin actor's wider permissions.
func AdminForceOrderStatus(c *gin.Context) {
	orderID := c.Param("id")
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Reason string             `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var order models.Order
	if err := config.DB.Preload("Business").First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	prevStatus := order.Status
	if !transitionOrder(c, &order, req.Status, "admin", "[ADMIN OVERRIDE] "+req.Reason, nil) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}
