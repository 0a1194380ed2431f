package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/statemachine"
)

// ListBusinesses returns businesses visible in the marketplace (public)
func ListBusinesses(c *gin.Context) {
	var businesses []models.Business
	query := config.DB

	if category := c.Query("category"); category != "" {
		query = query.Where("category LIKE ?", "%"+category+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	query.Find(&businesses)
	c.JSON(http.StatusOK, gin.H{
		"count":      len(businesses),
		"businesses": businesses,
	})
}

// GetBusiness returns a single business with its catalog
func GetBusiness(c *gin.Context) {
	var business models.Business
	if err := config.DB.Preload("Products").First(&business, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"business": business})
}

// GetProducts returns the catalog for a specific business (public)
func GetProducts(c *gin.Context) {
	businessID := c.Param("id")
	var business models.Business
	if err := config.DB.First(&business, "id = ?", businessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	var products []models.Product
	query := config.DB.Where("business_id = ?", businessID)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}
	query.Find(&products)

	c.JSON(http.StatusOK, gin.H{
		"business": business.Name,
		"count":    len(products),
		"products": products,
	})
}

// LookupProducts returns products by id, used by carts resolving prices
func LookupProducts(c *gin.Context) {
	ids := c.QueryArray("id")
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one id query parameter is required"})
		return
	}
	var products []models.Product
	config.DB.Where("id IN ?", ids).Find(&products)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// GetStateMachineInfo returns the full order lifecycle for documentation
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Delivery order lifecycle state machine",
	})
}
