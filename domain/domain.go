// Package domain holds the client-side shapes of the remote tables. Fields
// are camelCase on the wire facing the UI, mapped from the backend's
// snake_case rows by the functions in mapping.go.
package domain

import (
	"time"

	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // unit price snapshot taken at order time
	Notes     string  `json:"notes,omitempty"`
}

type DeliveryAddress struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	Notes     string  `json:"notes,omitempty"`
}

type Order struct {
	ID                string             `json:"id"`
	BusinessID        string             `json:"businessId"`
	ClientID          string             `json:"clientId"`
	DriverID          string             `json:"driverId,omitempty"` // empty until a driver claims the order
	Status            models.OrderStatus `json:"status"`
	Items             []OrderItem        `json:"items"`
	Subtotal          float64            `json:"subtotal"`
	DeliveryFee       float64            `json:"deliveryFee"`
	Total             float64            `json:"total"`
	DeliveryAddress   DeliveryAddress    `json:"deliveryAddress"`
	PaymentMethod     string             `json:"paymentMethod"`
	EstimatedDelivery *time.Time         `json:"estimatedDelivery,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

type Notification struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	OrderID   string                  `json:"orderId,omitempty"`
	Metadata  map[string]string       `json:"metadata,omitempty"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt time.Time               `json:"createdAt"`
}

type Product struct {
	ID          string  `json:"id"`
	BusinessID  string  `json:"businessId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

type Business struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"ownerId"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category,omitempty"`
	Address      string  `json:"address,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	DeliveryFee  float64 `json:"deliveryFee"`
	DeliveryTime string  `json:"deliveryTime,omitempty"`
	FreeDelivery bool    `json:"freeDelivery"` // derived: deliveryFee == 0
	IsOpen       bool    `json:"isOpen"`
	Rating       float64 `json:"rating"`
}

type Driver struct {
	ID          string  `json:"id"`
	ProfileID   string  `json:"profileId"`
	Name        string  `json:"name,omitempty"`
	VehicleType string  `json:"vehicleType,omitempty"`
	PlateNumber string  `json:"plateNumber,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
	Rating      float64 `json:"rating"`
}

type User struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Phone     string          `json:"phone,omitempty"`
	AvatarURL string          `json:"avatarUrl,omitempty"`
}

// CartItem is local-only session state; it is never persisted remotely.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}
