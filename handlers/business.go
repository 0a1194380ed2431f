package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/middleware"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

// ── Business Management ──────────────────────────────────────────────────────

type CreateBusinessRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	Address      string  `json:"address" binding:"required"`
	Description  string  `json:"description"`
	DeliveryFee  float64 `json:"delivery_fee"`
	DeliveryTime string  `json:"delivery_time"`
}

// CreateBusiness lets a business-role user create their business profile
func CreateBusiness(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business := models.Business{
		OwnerID:      ownerID,
		Name:         req.Name,
		Category:     req.Category,
		Address:      req.Address,
		Description:  req.Description,
		DeliveryFee:  req.DeliveryFee,
		DeliveryTime: req.DeliveryTime,
		IsOpen:       true,
	}
	if err := config.DB.Create(&business).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Business created", "business": business})
}

// GetMyBusiness fetches the business owned by the logged-in user
func GetMyBusiness(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var business models.Business
	if err := config.DB.Preload("Products").Where("owner_id = ?", ownerID).First(&business).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No business found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"business": business})
}

// UpdateBusiness updates business details
func UpdateBusiness(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var business models.Business
	if err := config.DB.Where("owner_id = ?", ownerID).First(&business).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{
		"name": true, "category": true, "address": true, "description": true,
		"is_open": true, "delivery_fee": true, "delivery_time": true, "image_url": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&business).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Business updated", "business": business})
}

// ── Product Management ───────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

// AddProduct adds a new product to the business catalog
func AddProduct(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var business models.Business
	if err := config.DB.Where("owner_id = ?", ownerID).First(&business).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Create a business first before adding products"})
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		BusinessID:  business.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added", "product": product})
}

// UpdateProduct updates a product (only by the owner)
func UpdateProduct(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	productID := c.Param("productId")

	var product models.Product
	if err := config.DB.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// Verify ownership
	var business models.Business
	if err := config.DB.Where("id = ? AND owner_id = ?", product.BusinessID, ownerID).First(&business).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this product"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config.DB.Model(&product).Updates(req)
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

// DeleteProduct removes a product
func DeleteProduct(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	productID := c.Param("productId")

	var product models.Product
	if err := config.DB.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	var business models.Business
	if err := config.DB.Where("id = ? AND owner_id = ?", product.BusinessID, ownerID).First(&business).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this product"})
		return
	}
	config.DB.Delete(&product)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
