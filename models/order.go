package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of a delivery order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusAssigned  OrderStatus = "assigned"
	StatusPickingUp OrderStatus = "picking_up"
	StatusInTransit OrderStatus = "in_transit"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transition can leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// DeliveryAddress is stored as a JSON column on orders.
type DeliveryAddress struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	Notes     string  `json:"notes,omitempty"`
}

type Order struct {
	ID                string               `json:"id" gorm:"primaryKey"`
	BusinessID        string               `json:"business_id" gorm:"not null;index"`
	Business          Business             `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	ClientID          string               `json:"client_id" gorm:"not null;index"`
	Client            Profile              `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	DriverID          *string              `json:"driver_id" gorm:"index"`
	Driver            *Profile             `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Status            OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	Subtotal          float64              `json:"subtotal"`
	DeliveryFee       float64              `json:"delivery_fee"`
	Total             float64              `json:"total"` // subtotal + delivery_fee, fixed at creation
	DeliveryAddress   DeliveryAddress      `json:"delivery_address" gorm:"serializer:json"`
	PaymentMethod     string               `json:"payment_method"`
	EstimatedDelivery *time.Time           `json:"estimated_delivery"`
	Items             []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory     []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	OrderID   string  `json:"order_id" gorm:"not null;index"`
	ProductID string  `json:"product_id" gorm:"not null"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Notes     string  `json:"notes"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderStatusHistory tracks every status change for auditability
type OrderStatusHistory struct {
	ID         string      `json:"id" gorm:"primaryKey"`
	OrderID    string      `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  string      `json:"changed_by"` // profile ID that triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
