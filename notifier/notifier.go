// Package notifier creates user-facing notifications from order lifecycle
// events. It is the write side of the notifications table: rows are inserted
// here (or by account logic), never by the clients that display them.
package notifier

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/zerontec/rork-nexusdelivery-sub001/events"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
)

type Notifier struct {
	db   *gorm.DB
	feed *realtime.Publisher
	log  zerolog.Logger
}

func New(db *gorm.DB, feed *realtime.Publisher, log zerolog.Logger) *Notifier {
	return &Notifier{db: db, feed: feed, log: log}
}

// HandleOrderEvent fans one order transition out to every affected user.
// Returning an error makes the consumer redeliver, so inserts must tolerate
// being retried; duplicate notifications are acceptable, lost ones are not.
func (n *Notifier) HandleOrderEvent(ctx context.Context, ev events.OrderEvent) error {
	ownerID, err := n.businessOwner(ctx, ev.BusinessID)
	if err != nil {
		n.log.Error().Err(err).Str("business_id", ev.BusinessID).Msg("failed to resolve business owner")
		return err
	}
	for _, note := range notificationsFor(ev, ownerID) {
		note := note
		if err := n.db.WithContext(ctx).Create(&note).Error; err != nil {
			n.log.Error().Err(err).Str("order_id", ev.OrderID).Msg("failed to insert notification")
			return err
		}
		n.feed.NotificationChanged(ctx, note.UserID, realtime.EventInsert, note, nil)
	}
	return nil
}

// businessOwner maps a business row to its owner's profile id. The
// notification feed and its realtime channel are keyed by profile ids, so
// business-directed notifications must be addressed to the owner, never to
// the business row itself. A vanished business skips the owner copy instead
// of blocking redelivery forever.
func (n *Notifier) businessOwner(ctx context.Context, businessID string) (string, error) {
	if businessID == "" {
		return "", nil
	}
	var business models.Business
	err := n.db.WithContext(ctx).Select("owner_id").First(&business, "id = ?", businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		n.log.Warn().Str("business_id", businessID).Msg("business not found, skipping owner notification")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return business.OwnerID, nil
}

// notificationsFor derives the recipient set and copy for one transition.
// ownerID is the profile behind ev.BusinessID; empty skips the owner's copy.
func notificationsFor(ev events.OrderEvent, ownerID string) []models.Notification {
	meta := map[string]string{"status": string(ev.ToStatus)}
	if ev.BusinessName != "" {
		meta["business_name"] = ev.BusinessName
	}
	orderID := ev.OrderID
	base := func(userID string, typ models.NotificationType, title, message string) models.Notification {
		return models.Notification{
			UserID:   userID,
			Type:     typ,
			Title:    title,
			Message:  message,
			OrderID:  &orderID,
			Metadata: meta,
		}
	}

	var notes []models.Notification
	switch ev.ToStatus {
	case models.StatusPending:
		if ownerID != "" {
			notes = append(notes, base(ownerID, models.NotificationNewOrder,
				"New order received", "A new order is waiting for confirmation."))
		}
	case models.StatusConfirmed:
		notes = append(notes, base(ev.ClientID, models.NotificationOrderConfirmed,
			"Order confirmed", "Your order has been confirmed and will be prepared soon."))
	case models.StatusReady:
		notes = append(notes, base(ev.ClientID, models.NotificationOrderReady,
			"Order ready", "Your order is ready and waiting for a driver."))
	case models.StatusAssigned:
		notes = append(notes, base(ev.ClientID, models.NotificationDriverAssigned,
			"Driver assigned", "A driver has been assigned to your order."))
		if ev.DriverID != "" {
			notes = append(notes, base(ev.DriverID, models.NotificationDriverAssigned,
				"Delivery assigned", "You have a new delivery to pick up."))
		}
	case models.StatusInTransit:
		notes = append(notes, base(ev.ClientID, models.NotificationOrderPickedUp,
			"Order on the way", "Your order has been picked up and is on the way."))
	case models.StatusDelivered:
		notes = append(notes, base(ev.ClientID, models.NotificationOrderDelivered,
			"Order delivered", "Your order has been delivered. Enjoy!"))
	case models.StatusCancelled:
		notes = append(notes, base(ev.ClientID, models.NotificationOrderCancelled,
			"Order cancelled", "Your order has been cancelled."))
		if ownerID != "" {
			notes = append(notes, base(ownerID, models.NotificationOrderCancelled,
				"Order cancelled", "An order has been cancelled."))
		}
		if ev.DriverID != "" {
			notes = append(notes, base(ev.DriverID, models.NotificationOrderCancelled,
				"Delivery cancelled", "An assigned delivery has been cancelled."))
		}
	}
	return notes
}
