package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/middleware"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

// GetDriverProfile returns the driver record behind the logged-in profile
func GetDriverProfile(c *gin.Context) {
	profileID := middleware.GetUserID(c)
	var driver models.Driver
	if err := config.DB.Preload("Profile").Where("profile_id = ?", profileID).First(&driver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

type DriverAvailabilityRequest struct {
	IsAvailable *bool  `json:"is_available" binding:"required"`
	VehicleType string `json:"vehicle_type"`
	PlateNumber string `json:"plate_number"`
}

// UpdateDriverProfile toggles availability and vehicle details
func UpdateDriverProfile(c *gin.Context) {
	profileID := middleware.GetUserID(c)
	var driver models.Driver
	if err := config.DB.Where("profile_id = ?", profileID).First(&driver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver profile not found"})
		return
	}

	var req DriverAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{"is_available": *req.IsAvailable}
	if req.VehicleType != "" {
		updates["vehicle_type"] = req.VehicleType
	}
	if req.PlateNumber != "" {
		updates["plate_number"] = req.PlateNumber
	}
	if err := config.DB.Model(&driver).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver profile updated", "driver": driver})
}

// GetAvailableOrders shows ready orders that have no driver assigned
func GetAvailableOrders(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Business").Preload("Client").
		Where("status = ? AND driver_id IS NULL", models.StatusReady).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(orders),
		"orders": orders,
	})
}

// GetMyDeliveries returns all orders assigned to the logged-in driver
func GetMyDeliveries(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items.Product").Preload("Business").Preload("Client").
		Where("driver_id = ?", driverID).
		Order("updated_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ClaimOrder assigns the order to the driver: ready -> assigned plus the
// driver_id set in the same update. This is the only transition that also
// mutates ownership.
func ClaimOrder(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.Preload("Business").First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	// Prevent two drivers claiming the same order
	if order.DriverID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Order has already been claimed by another driver"})
		return
	}

	if !transitionOrder(c, &order, models.StatusAssigned, "driver",
		"Driver claimed the order", map[string]interface{}{"driver_id": driverID}) {
		return
	}
	order.DriverID = &driverID

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order claimed successfully",
		"order_id": order.ID,
		"status":   models.StatusAssigned,
	})
}

type DeliveryStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateDeliveryStatus carries the order through the driver's side of the
// lifecycle: picking_up, in_transit, delivered.
func UpdateDeliveryStatus(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.Preload("Business").First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.DriverID == nil || *order.DriverID != driverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this order"})
		return
	}

	var req DeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !transitionOrder(c, &order, req.Status, "driver", "Updated by driver", nil) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Delivery status updated",
		"order_id": order.ID,
		"status":   order.Status,
	})
}
