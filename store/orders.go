package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/zerontec/rork-nexusdelivery-sub001/domain"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
)

// OrdersStore mirrors the orders visible to the current actor. The mirror is
// kept live by refetching on every change event rather than patching rows:
// order payloads carry joined line items, so a full role-scoped requery is
// the only way to stay consistent without reimplementing the join locally.
type OrdersStore struct {
	backend  OrdersBackend
	realtime Realtime
	log      zerolog.Logger

	mu      sync.Mutex
	session Session
	orders  []domain.Order
	loading bool
	sub     Subscription
}

func NewOrdersStore(backend OrdersBackend, rt Realtime, log zerolog.Logger) *OrdersStore {
	return &OrdersStore{backend: backend, realtime: rt, log: log}
}

// SetSession switches the store to a new identity tuple. The previous
// subscription is always torn down first so at most one is ever live.
// A zero session empties the mirror and leaves the store unsubscribed.
func (s *OrdersStore) SetSession(ctx context.Context, session Session) {
	s.mu.Lock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.session = session
	if session.UserID == "" {
		s.orders = nil
		s.loading = false
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	sub := s.realtime.SubscribeOrders(ctx, func(realtime.Event) {
		// Any change to any order triggers a full refetch.
		s.Fetch(ctx)
	})
	s.mu.Lock()
	if s.session != session {
		// Another SetSession won the race while we were subscribing; ours
		// is stale, theirs stays.
		s.mu.Unlock()
		sub.Close()
		return
	}
	if s.sub != nil {
		s.sub.Close()
	}
	s.sub = sub
	s.mu.Unlock()

	s.Fetch(ctx)
}

// Close tears down the live subscription, if any.
func (s *OrdersStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
}

// Fetch re-runs the role-scoped query and replaces the mirror. On failure
// the previous list is left untouched; there is no partial update.
func (s *OrdersStore) Fetch(ctx context.Context) {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()
	if session.UserID == "" {
		return
	}

	orders, err := s.backend.FetchOrders(ctx, session)
	if err != nil {
		s.log.Error().Err(err).Str("role", string(session.Role)).Msg("failed to fetch orders")
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.orders = orders
	s.loading = false
	s.mu.Unlock()
}

// Orders returns a snapshot of the mirrored list.
func (s *OrdersStore) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Loading reports whether the first fetch for the current session is pending.
func (s *OrdersStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// OrderByID is a pure lookup; ok is false when the order is not mirrored.
func (s *OrdersStore) OrderByID(id string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// OrdersByStatus is a pure lookup; absent statuses yield an empty list.
func (s *OrdersStore) OrdersByStatus(status models.OrderStatus) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// UpdateOrderStatus applies the new status locally first, then pushes it to
// the backend. A failed push discards the optimistic value by refetching;
// there is no fine-grained rollback.
func (s *OrdersStore) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) {
	s.mu.Lock()
	session := s.session
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			break
		}
	}
	s.mu.Unlock()

	if err := s.backend.UpdateOrderStatus(ctx, session, orderID, status); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID).Str("status", string(status)).
			Msg("status update failed, resyncing")
		s.Fetch(ctx)
	}
}

// AssignDriver optimistically sets the driver and status=assigned together.
// This is the only client-initiated transition that also mutates ownership.
func (s *OrdersStore) AssignDriver(ctx context.Context, orderID, driverID string) {
	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].DriverID = driverID
			s.orders[i].Status = models.StatusAssigned
			break
		}
	}
	s.mu.Unlock()

	if err := s.backend.AssignDriver(ctx, orderID); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID).Msg("driver assignment failed, resyncing")
		s.Fetch(ctx)
	}
}
