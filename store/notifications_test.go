package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerontec/rork-nexusdelivery-sub001/domain"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
)

type fakeNotificationsBackend struct {
	notes        []domain.Notification
	fetchErr     error
	fetchCalls   int
	markErr      error
	markAllErr   error
	deleteErr    error
	markCalls    int
	markAllCalls int
}

func (f *fakeNotificationsBackend) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]domain.Notification, len(f.notes))
	copy(out, f.notes)
	return out, nil
}

func (f *fakeNotificationsBackend) MarkNotificationRead(ctx context.Context, id string) error {
	f.markCalls++
	return f.markErr
}

func (f *fakeNotificationsBackend) MarkAllNotificationsRead(ctx context.Context) error {
	f.markAllCalls++
	return f.markAllErr
}

func (f *fakeNotificationsBackend) DeleteNotification(ctx context.Context, id string) error {
	return f.deleteErr
}

// tableMissingErr mimics the backend's undefined-table failure.
type tableMissingErr struct{}

func (tableMissingErr) Error() string         { return "relation \"notifications\" does not exist" }
func (tableMissingErr) MissingRelation() bool { return true }

func newNotificationsStore(backend *fakeNotificationsBackend, rt *fakeRealtime) *NotificationsStore {
	return NewNotificationsStore(backend, rt, zerolog.Nop())
}

func rowJSON(t *testing.T, row models.Notification) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(row)
	require.NoError(t, err)
	return data
}

func TestUnreadCountDerivedFromFeed(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{
		{ID: "n1", UserID: "u1", IsRead: false},
		{ID: "n2", UserID: "u1", IsRead: true},
	}}
	s := newNotificationsStore(backend, newFakeRealtime())
	s.SetUser(context.Background(), "u1")

	assert.Equal(t, 1, s.UnreadCount())

	s.MarkAllAsRead(context.Background())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{
		{ID: "n1", UserID: "u1", IsRead: false},
	}}
	s := newNotificationsStore(backend, newFakeRealtime())
	s.SetUser(context.Background(), "u1")

	s.MarkAsRead(context.Background(), "n1")
	first := s.UnreadCount()
	s.MarkAsRead(context.Background(), "n1")

	assert.Equal(t, 0, first)
	assert.Equal(t, first, s.UnreadCount())
	assert.Equal(t, 2, backend.markCalls)
}

func TestMarkAsReadFailureResyncs(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{
		{ID: "n1", UserID: "u1", IsRead: false},
	}}
	s := newNotificationsStore(backend, newFakeRealtime())
	s.SetUser(context.Background(), "u1")

	backend.markErr = errors.New("rejected")
	s.MarkAsRead(context.Background(), "n1")

	// Optimistic flip discarded by the refetch
	assert.Equal(t, 1, s.UnreadCount())
}

func TestMissingTableMeansEmptyFeed(t *testing.T) {
	backend := &fakeNotificationsBackend{fetchErr: tableMissingErr{}}
	s := newNotificationsStore(backend, newFakeRealtime())
	s.SetUser(context.Background(), "u1")

	assert.Empty(t, s.Notifications())
	// Loading must clear so the UI does not appear stuck
	assert.False(t, s.Loading())
}

func TestOtherFetchErrorsKeepPreviousFeed(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{{ID: "n1", UserID: "u1"}}}
	s := newNotificationsStore(backend, newFakeRealtime())
	s.SetUser(context.Background(), "u1")

	backend.fetchErr = errors.New("network down")
	s.Fetch(context.Background())

	assert.Len(t, s.Notifications(), 1)
	assert.False(t, s.Loading())
}

func TestNoUserForcesEmptyFeedWithoutSubscription(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{{ID: "n1", UserID: "u1"}}}
	rt := newFakeRealtime()
	s := newNotificationsStore(backend, rt)

	s.SetUser(context.Background(), "u1")
	require.Len(t, s.Notifications(), 1)

	s.SetUser(context.Background(), "")
	assert.Empty(t, s.Notifications())
	assert.False(t, s.Loading())
	assert.Empty(t, rt.noteSubs[""])
}

func TestInsertEventPrependsAndAlerts(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{
		{ID: "n1", UserID: "u1", IsRead: true},
	}}
	rt := newFakeRealtime()
	s := newNotificationsStore(backend, rt)

	var alerted []string
	s.Alert = func(n domain.Notification) { alerted = append(alerted, n.ID) }
	s.SetUser(context.Background(), "u1")

	fetchesBefore := backend.fetchCalls
	rt.emitNotification("u1", realtime.Event{
		EventType: realtime.EventInsert,
		Table:     "notifications",
		New:       rowJSON(t, models.Notification{ID: "n2", UserID: "u1", Title: "Order ready"}),
	})

	notes := s.Notifications()
	require.Len(t, notes, 2)
	assert.Equal(t, "n2", notes[0].ID, "inserts prepend, newest first")
	assert.Equal(t, []string{"n2"}, alerted)
	assert.Equal(t, 1, s.UnreadCount())
	assert.Equal(t, fetchesBefore, backend.fetchCalls, "inserts apply incrementally, no refetch")
}

func TestUpdateEventPatchesOnlyReadFlag(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{
		{ID: "n1", UserID: "u1", Title: "Original title", IsRead: false},
	}}
	rt := newFakeRealtime()
	s := newNotificationsStore(backend, rt)
	s.SetUser(context.Background(), "u1")

	rt.emitNotification("u1", realtime.Event{
		EventType: realtime.EventUpdate,
		Table:     "notifications",
		New:       rowJSON(t, models.Notification{ID: "n1", UserID: "u1", Title: "Mutated elsewhere", IsRead: true}),
	})

	notes := s.Notifications()
	require.Len(t, notes, 1)
	assert.True(t, notes[0].IsRead)
	assert.Equal(t, "Original title", notes[0].Title, "only is_read is patched")
}

func TestDeleteEventRemovesById(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{
		{ID: "n1", UserID: "u1"},
		{ID: "n2", UserID: "u1"},
	}}
	rt := newFakeRealtime()
	s := newNotificationsStore(backend, rt)
	s.SetUser(context.Background(), "u1")

	rt.emitNotification("u1", realtime.Event{
		EventType: realtime.EventDelete,
		Table:     "notifications",
		Old:       rowJSON(t, models.Notification{ID: "n1", UserID: "u1"}),
	})

	notes := s.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "n2", notes[0].ID)
}

func TestDeleteOptimisticThenResyncOnFailure(t *testing.T) {
	backend := &fakeNotificationsBackend{notes: []domain.Notification{
		{ID: "n1", UserID: "u1"},
	}}
	s := newNotificationsStore(backend, newFakeRealtime())
	s.SetUser(context.Background(), "u1")

	backend.deleteErr = errors.New("rejected")
	s.Delete(context.Background(), "n1")

	// Row restored by the refetch
	assert.Len(t, s.Notifications(), 1)
}

func TestSwitchingUserTearsDownPreviousSubscription(t *testing.T) {
	backend := &fakeNotificationsBackend{}
	rt := newFakeRealtime()
	s := newNotificationsStore(backend, rt)

	s.SetUser(context.Background(), "u1")
	s.SetUser(context.Background(), "u2")

	require.Len(t, rt.noteSubs["u1"], 1)
	assert.True(t, rt.noteSubs["u1"][0].closed)
	require.Len(t, rt.noteSubs["u2"], 1)
	assert.False(t, rt.noteSubs["u2"][0].closed)
}

func TestOverlappingSetUserKeepsOnlyLatestSubscription(t *testing.T) {
	backend := &fakeNotificationsBackend{}
	rt := newFakeRealtime()
	s := newNotificationsStore(backend, rt)

	// u2 takes over while u1's subscription is still being opened; u1 must
	// discard its own subscription on re-lock instead of leaving it live.
	rt.onSubscribe = func() {
		rt.onSubscribe = nil
		s.SetUser(context.Background(), "u2")
	}

	s.SetUser(context.Background(), "u1")

	require.Len(t, rt.noteSubs["u1"], 1)
	assert.True(t, rt.noteSubs["u1"][0].closed)
	require.Len(t, rt.noteSubs["u2"], 1)
	assert.False(t, rt.noteSubs["u2"][0].closed)
}
