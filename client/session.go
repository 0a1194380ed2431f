package client

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zerontec/rork-nexusdelivery-sub001/store"
)

// Stores bundles the per-session synchronization stores over one client and
// one feed. Construct once at session start, tear down at sign-out.
type Stores struct {
	Orders        *store.OrdersStore
	Notifications *store.NotificationsStore
	Cart          *store.CartStore
}

func NewStores(c *Client, f *Feed, log zerolog.Logger) *Stores {
	return &Stores{
		Orders:        store.NewOrdersStore(c, f, log.With().Str("store", "orders").Logger()),
		Notifications: store.NewNotificationsStore(c, f, log.With().Str("store", "notifications").Logger()),
		Cart:          store.NewCartStore(c, log.With().Str("store", "cart").Logger()),
	}
}

// SignIn points every store at the new identity and starts their feeds.
func (s *Stores) SignIn(ctx context.Context, session store.Session) {
	s.Orders.SetSession(ctx, session)
	s.Notifications.SetUser(ctx, session.UserID)
}

// SignOut tears down subscriptions and empties remote mirrors. The cart is
// local state and survives until cleared explicitly.
func (s *Stores) SignOut(ctx context.Context) {
	s.Orders.SetSession(ctx, store.Session{})
	s.Notifications.SetUser(ctx, "")
}
