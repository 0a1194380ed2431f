// Package events moves order lifecycle events through kafka. The API service
// produces one event per status transition; the notifier consumes them and
// turns them into user-facing notifications.
package events

import "github.com/zerontec/rork-nexusdelivery-sub001/models"

// Topic carries every order lifecycle event.
const Topic = "order-events"

// OrderEvent is emitted after each committed status transition.
type OrderEvent struct {
	OrderID      string             `json:"order_id"`
	BusinessID   string             `json:"business_id"`
	BusinessName string             `json:"business_name,omitempty"`
	ClientID     string             `json:"client_id"`
	DriverID     string             `json:"driver_id,omitempty"`
	FromStatus   models.OrderStatus `json:"from_status"`
	ToStatus     models.OrderStatus `json:"to_status"`
	ChangedBy    string             `json:"changed_by"`
}
