package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/zerontec/rork-nexusdelivery-sub001/domain"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
)

// missingRelation reports whether the error is the backend's "relation does
// not exist" condition, which the feed treats as empty rather than failed.
type missingRelation interface {
	MissingRelation() bool
}

// NotificationsStore mirrors the per-user notification feed, newest first.
// Unlike orders, notification payloads are self-contained, so change events
// are applied incrementally instead of triggering a refetch.
type NotificationsStore struct {
	backend  NotificationsBackend
	realtime Realtime
	log      zerolog.Logger

	// Alert is invoked for every realtime-inserted notification, outside the
	// store lock. Wire a sound/haptic trigger here.
	Alert func(domain.Notification)

	mu            sync.Mutex
	userID        string
	notifications []domain.Notification
	loading       bool
	sub           Subscription
}

func NewNotificationsStore(backend NotificationsBackend, rt Realtime, log zerolog.Logger) *NotificationsStore {
	return &NotificationsStore{backend: backend, realtime: rt, log: log}
}

// SetUser switches the feed to a new user. Absent a user the feed is forced
// empty, loading is cleared, and no subscription is opened.
func (s *NotificationsStore) SetUser(ctx context.Context, userID string) {
	s.mu.Lock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.userID = userID
	if userID == "" {
		s.notifications = nil
		s.loading = false
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	sub := s.realtime.SubscribeNotifications(ctx, userID, s.handleEvent)
	s.mu.Lock()
	if s.userID != userID {
		// Another SetUser won the race while we were subscribing; ours is
		// stale, theirs stays.
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
func (s *NotificationsStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
}

// Fetch loads the 100 most recent notifications. A missing relation means
// the feed is simply empty; any other failure leaves the list untouched but
// clears loading so the UI never appears stuck.
func (s *NotificationsStore) Fetch(ctx context.Context) {
	s.mu.Lock()
	userID := s.userID
	s.mu.Unlock()
	if userID == "" {
		return
	}

	notes, err := s.backend.FetchNotifications(ctx)
	if err != nil {
		var missing missingRelation
		if errors.As(err, &missing) && missing.MissingRelation() {
			s.mu.Lock()
			s.notifications = nil
			s.loading = false
			s.mu.Unlock()
			return
		}
		s.log.Error().Err(err).Msg("failed to fetch notifications")
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.notifications = notes
	s.loading = false
	s.mu.Unlock()
}

// Notifications returns a snapshot of the feed, newest first.
func (s *NotificationsStore) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Loading reports whether the first fetch for the current user is pending.
func (s *NotificationsStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// UnreadCount is derived from the mirrored list.
func (s *NotificationsStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// MarkAsRead flips the notification locally, then remotely. A failed remote
// update is resolved by refetching, not retried.
func (s *NotificationsStore) MarkAsRead(ctx context.Context, id string) {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = true
			break
		}
	}
	s.mu.Unlock()

	if err := s.backend.MarkNotificationRead(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("mark-as-read failed, resyncing")
		s.Fetch(ctx)
	}
}

// MarkAllAsRead flips every unread notification locally; the remote update
// targets only rows still unread server-side.
func (s *NotificationsStore) MarkAllAsRead(ctx context.Context) {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].IsRead = true
	}
	s.mu.Unlock()

	if err := s.backend.MarkAllNotificationsRead(ctx); err != nil {
		s.log.Error().Err(err).Msg("mark-all-as-read failed, resyncing")
		s.Fetch(ctx)
	}
}

// Delete removes the notification locally, then remotely.
func (s *NotificationsStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.backend.DeleteNotification(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("delete failed, resyncing")
		s.Fetch(ctx)
	}
}

// handleEvent applies one change event to the mirror. Inserts prepend,
// updates patch only the read flag, deletes remove by id.
func (s *NotificationsStore) handleEvent(ev realtime.Event) {
	switch ev.EventType {
	case realtime.EventInsert:
		var row models.Notification
		if err := json.Unmarshal(ev.New, &row); err != nil {
			s.log.Warn().Err(err).Msg("dropping malformed notification insert")
			return
		}
		note := domain.NotificationFromRow(row)
		s.mu.Lock()
		s.notifications = append([]domain.Notification{note}, s.notifications...)
		alert := s.Alert
		s.mu.Unlock()
		if alert != nil {
			alert(note)
		}
	case realtime.EventUpdate:
		var row models.Notification
		if err := json.Unmarshal(ev.New, &row); err != nil {
			s.log.Warn().Err(err).Msg("dropping malformed notification update")
			return
		}
		s.mu.Lock()
		for i := range s.notifications {
			if s.notifications[i].ID == row.ID {
				s.notifications[i].IsRead = row.IsRead
				break
			}
		}
		s.mu.Unlock()
	case realtime.EventDelete:
		var row models.Notification
		if err := json.Unmarshal(ev.Old, &row); err != nil {
			s.log.Warn().Err(err).Msg("dropping malformed notification delete")
			return
		}
		s.mu.Lock()
		for i := range s.notifications {
			if s.notifications[i].ID == row.ID {
				s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}
