package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/middleware"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

// GetBusinessOrders returns all orders for the business owner
func GetBusinessOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var business models.Business
	if err := config.DB.Where("owner_id = ?", ownerID).First(&business).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No business found for your account"})
		return
	}

	var orders []models.Order
	query := config.DB.Preload("Items.Product").Preload("Client").Preload("Driver").
		Where("business_id = ?", business.ID)

	// Filter by status
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Order("created_at desc").Find(&orders)

	// Group counts by status for the dashboard summary
	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"business":      business.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles the business side of the order lifecycle
// (confirm, preparing, ready, cancel).
func UpdateOrderStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var business models.Business
	if err := config.DB.Where("owner_id = ?", ownerID).First(&business).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No business found for your account"})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Business").First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.BusinessID != business.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your business"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prevStatus := order.Status
	if !transitionOrder(c, &order, req.Status, "business", req.Note, nil) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": string(prevStatus),
		"current_status":  string(req.Status),
	})
}
