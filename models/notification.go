package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType enumerates the business events a notification can announce.
type NotificationType string

const (
	NotificationNewOrder       NotificationType = "new_order"
	NotificationOrderConfirmed NotificationType = "order_confirmed"
	NotificationOrderReady     NotificationType = "order_ready"
	NotificationDriverAssigned NotificationType = "driver_assigned"
	NotificationOrderPickedUp  NotificationType = "order_picked_up"
	NotificationOrderDelivered NotificationType = "order_delivered"
	NotificationOrderCancelled NotificationType = "order_cancelled"
	NotificationAccount        NotificationType = "account"
)

type Notification struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	UserID    string            `json:"user_id" gorm:"not null;index"`
	Type      NotificationType  `json:"type" gorm:"not null"`
	Title     string            `json:"title" gorm:"not null"`
	Message   string            `json:"message"`
	OrderID   *string           `json:"order_id"`
	Metadata  map[string]string `json:"metadata" gorm:"serializer:json"`
	IsRead    bool              `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time         `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
