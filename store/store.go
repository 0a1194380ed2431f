// Package store holds the client-side synchronization stores. Each store
// owns an in-memory mirror of one remote table slice, applies mutations
// optimistically, and reconciles against realtime change events.
//
// Store operations never return errors: a failed remote call is logged and
// resolved by resynchronizing state, so the UI reads fresh state instead of
// handling failures. Callers that need to distinguish "applied" from
// "reverted" must re-read the store.
package store

import (
	"context"

	"github.com/zerontec/rork-nexusdelivery-sub001/domain"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
)

// Session identifies the current actor. The zero value means signed out.
type Session struct {
	UserID     string
	Role       models.UserRole
	BusinessID string // set only for business-role sessions
}

// Subscription is a live realtime subscription owned by a store.
type Subscription interface {
	Close()
}

// Realtime attaches change-event handlers to the backend's change feed.
type Realtime interface {
	SubscribeOrders(ctx context.Context, fn func(realtime.Event)) Subscription
	SubscribeNotifications(ctx context.Context, userID string, fn func(realtime.Event)) Subscription
}

// OrdersBackend is the remote surface the orders store mirrors.
type OrdersBackend interface {
	// FetchOrders runs the role-scoped query for the session.
	FetchOrders(ctx context.Context, s Session) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, s Session, orderID string, status models.OrderStatus) error
	// AssignDriver claims the order for the session's driver.
	AssignDriver(ctx context.Context, orderID string) error
}

// NotificationsBackend is the remote surface the notifications store mirrors.
type NotificationsBackend interface {
	FetchNotifications(ctx context.Context) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
}

// ProductsBackend resolves product metadata for cart pricing.
type ProductsBackend interface {
	FetchProducts(ctx context.Context, ids []string) ([]domain.Product, error)
}
