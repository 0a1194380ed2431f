// Package realtime carries row change events between the API service and
// connected clients over redis pub/sub. Every mutation to the orders or
// notifications tables is published here so client-side stores can keep
// their in-memory mirrors live.
package realtime

import "encoding/json"

// Event types mirror the change-feed contract: one event per row mutation.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Event is the wire payload of a single row change.
type Event struct {
	EventType string          `json:"event_type"`
	Table     string          `json:"table"`
	New       json.RawMessage `json:"new,omitempty"`
	Old       json.RawMessage `json:"old,omitempty"`
}

// OrdersChannel is shared by all actors; order events are coarse-grained and
// subscribers refetch with their own role-scoped query anyway.
func OrdersChannel() string { return "realtime:orders" }

// NotificationsChannel is filtered server-side to one recipient.
func NotificationsChannel(userID string) string {
	return "realtime:notifications:" + userID
}
