package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/middleware"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
)

type PlaceOrderRequest struct {
	BusinessID      string                 `json:"business_id" binding:"required"`
	DeliveryAddress models.DeliveryAddress `json:"delivery_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	Items           []struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
		Notes     string `json:"notes"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates a new order (client only)
func PlaceOrder(c *gin.Context) {
	clientID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate business exists and is open
	var business models.Business
	if err := config.DB.First(&business, "id = ?", req.BusinessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}
	if !business.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Business is currently closed"})
		return
	}

	// Build order items with price snapshots and calculate the subtotal
	var orderItems []models.OrderItem
	var subtotal float64

	for _, reqItem := range req.Items {
		var product models.Product
		if err := config.DB.First(&product, "id = ?", reqItem.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found: " + reqItem.ProductID})
			return
		}
		if product.BusinessID != req.BusinessID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not belong to this business"})
			return
		}
		if !product.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product '" + product.Name + "' is not available"})
			return
		}
		subtotal += product.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  reqItem.Quantity,
			Price:     product.Price,
			Notes:     reqItem.Notes,
		})
	}

	// Estimated delivery: base 30 min + 5 per line item
	eta := time.Now().Add(time.Duration(30+5*len(req.Items)) * time.Minute)

	order := models.Order{
		BusinessID:        req.BusinessID,
		ClientID:          clientID,
		Status:            models.StatusPending,
		Subtotal:          subtotal,
		DeliveryFee:       business.DeliveryFee,
		Total:             subtotal + business.DeliveryFee,
		DeliveryAddress:   req.DeliveryAddress,
		PaymentMethod:     req.PaymentMethod,
		EstimatedDelivery: &eta,
		Items:             orderItems,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	// Record initial status history
	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: clientID,
		Note:      "Order placed by client",
	}
	config.DB.Create(&history)

	config.DB.Preload("Items.Product").Preload("Business").First(&order, "id = ?", order.ID)

	announceOrderChange(c, &order, realtime.EventInsert, "", clientID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders returns all orders for the logged-in client
func GetMyOrders(c *gin.Context) {
	clientID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items.Product").Preload("Business").
		Where("client_id = ?", clientID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	clientID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items.Product").
		Preload("Business").
		Preload("StatusHistory").
		Preload("Driver").
		First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.ClientID != clientID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	elapsed := time.Since(order.CreatedAt).Minutes()
	c.JSON(http.StatusOK, gin.H{
		"order":           order,
		"minutes_elapsed": int(elapsed),
	})
}

// CancelOrder cancels an order (client can cancel pending or confirmed)
func CancelOrder(c *gin.Context) {
	clientID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.ClientID != clientID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if !transitionOrder(c, &order, models.StatusCancelled, "client", "Order cancelled by client", nil) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}
