package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/events"
	"github.com/zerontec/rork-nexusdelivery-sub001/handlers"
	"github.com/zerontec/rork-nexusdelivery-sub001/middleware"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
	"github.com/zerontec/rork-nexusdelivery-sub001/routes"
)

type noopWriter struct{}

func (noopWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error { return nil }
func (noopWriter) Close() error                                                   { return nil }

// setupTestAPI boots a fresh in-memory database and a router wired with a
// feed publisher pointed at an unreachable redis (publishes are best-effort
// and only logged) and a producer backed by a no-op writer.
func setupTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("DATABASE_PATH", ":memory:")
	config.InitDB()

	nop := zerolog.Nop()
	pub := realtime.NewPublisher(redis.NewClient(&redis.Options{Addr: "localhost:1"}), nop)
	handlers.Init(pub, events.NewProducerWithWriter(noopWriter{}, nop), nop)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func seedProfile(t *testing.T, name string, role models.UserRole) (models.Profile, string) {
	t.Helper()
	p := models.Profile{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: role}
	require.NoError(t, config.DB.Create(&p).Error)
	token, err := middleware.GenerateToken(&p)
	require.NoError(t, err)
	return p, "Bearer " + token
}

func seedOrder(t *testing.T, clientID, businessID string, status models.OrderStatus) models.Order {
	t.Helper()
	o := models.Order{ClientID: clientID, BusinessID: businessID, Status: status, Total: 25}
	require.NoError(t, config.DB.Create(&o).Error)
	return o
}

func doJSON(r *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClaimOrderConflict(t *testing.T) {
	r := setupTestAPI(t)
	client, _ := seedProfile(t, "claim-client", models.RoleClient)
	owner, _ := seedProfile(t, "claim-owner", models.RoleBusiness)
	_, driverA := seedProfile(t, "driver-a", models.RoleDriver)
	_, driverB := seedProfile(t, "driver-b", models.RoleDriver)
	biz := models.Business{OwnerID: owner.ID, Name: "Claim Cafe", IsOpen: true}
	require.NoError(t, config.DB.Create(&biz).Error)
	order := seedOrder(t, client.ID, biz.ID, models.StatusReady)

	w := doJSON(r, http.MethodPut, "/api/driver/orders/"+order.ID+"/claim", driverA, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPut, "/api/driver/orders/"+order.ID+"/claim", driverB, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var got models.Order
	require.NoError(t, config.DB.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusAssigned, got.Status)
}

func TestAvailableOrdersExcludeClaimedAndUnready(t *testing.T) {
	r := setupTestAPI(t)
	client, _ := seedProfile(t, "pool-client", models.RoleClient)
	owner, _ := seedProfile(t, "pool-owner", models.RoleBusiness)
	driver, driverAuth := seedProfile(t, "pool-driver", models.RoleDriver)
	biz := models.Business{OwnerID: owner.ID, Name: "Pool Pizza", IsOpen: true}
	require.NoError(t, config.DB.Create(&biz).Error)

	ready := seedOrder(t, client.ID, biz.ID, models.StatusReady)
	seedOrder(t, client.ID, biz.ID, models.StatusPreparing)
	claimed := seedOrder(t, client.ID, biz.ID, models.StatusReady)
	require.NoError(t, config.DB.Model(&claimed).Updates(map[string]interface{}{
		"status": models.StatusAssigned, "driver_id": driver.ID,
	}).Error)

	w := doJSON(r, http.MethodGet, "/api/driver/orders/available", driverAuth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count  int            `json:"count"`
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, ready.ID, resp.Orders[0].ID)
}

func TestBusinessCannotSkipStates(t *testing.T) {
	r := setupTestAPI(t)
	client, _ := seedProfile(t, "skip-client", models.RoleClient)
	owner, ownerAuth := seedProfile(t, "skip-owner", models.RoleBusiness)
	biz := models.Business{OwnerID: owner.ID, Name: "Skip Sushi", IsOpen: true}
	require.NoError(t, config.DB.Create(&biz).Error)
	order := seedOrder(t, client.ID, biz.ID, models.StatusPending)

	w := doJSON(r, http.MethodPut, "/api/business/orders/"+order.ID+"/status", ownerAuth,
		gin.H{"status": models.StatusReady})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		ValidNextStates []models.OrderStatus `json:"valid_next_states"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.ValidNextStates, models.StatusConfirmed)

	var got models.Order
	require.NoError(t, config.DB.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestTransitionWritesHistoryRow(t *testing.T) {
	r := setupTestAPI(t)
	client, _ := seedProfile(t, "hist-client", models.RoleClient)
	owner, ownerAuth := seedProfile(t, "hist-owner", models.RoleBusiness)
	biz := models.Business{OwnerID: owner.ID, Name: "History House", IsOpen: true}
	require.NoError(t, config.DB.Create(&biz).Error)
	order := seedOrder(t, client.ID, biz.ID, models.StatusPending)

	w := doJSON(r, http.MethodPut, "/api/business/orders/"+order.ID+"/status", ownerAuth,
		gin.H{"status": models.StatusConfirmed})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var history []models.OrderStatusHistory
	require.NoError(t, config.DB.Where("order_id = ?", order.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, models.StatusPending, history[0].FromStatus)
	assert.Equal(t, models.StatusConfirmed, history[0].ToStatus)
	assert.Equal(t, owner.ID, history[0].ChangedBy)
}

func TestMarkAllReadOnlyTouchesCaller(t *testing.T) {
	r := setupTestAPI(t)
	alice, aliceAuth := seedProfile(t, "alice", models.RoleClient)
	bob, _ := seedProfile(t, "bob", models.RoleClient)
	for _, userID := range []string{alice.ID, alice.ID, bob.ID} {
		n := models.Notification{UserID: userID, Type: models.NotificationAccount, Title: "hi", Message: "hello"}
		require.NoError(t, config.DB.Create(&n).Error)
	}

	w := doJSON(r, http.MethodPut, "/api/notifications/read-all", aliceAuth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Updated int `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Updated)

	var bobUnread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", bob.ID, false).Count(&bobUnread)
	assert.Equal(t, int64(1), bobUnread)
}

func TestNotificationEndpointsScopedToOwner(t *testing.T) {
	r := setupTestAPI(t)
	alice, _ := seedProfile(t, "scope-alice", models.RoleClient)
	_, bobAuth := seedProfile(t, "scope-bob", models.RoleClient)
	note := models.Notification{UserID: alice.ID, Type: models.NotificationAccount, Title: "hi", Message: "hello"}
	require.NoError(t, config.DB.Create(&note).Error)

	w := doJSON(r, http.MethodPut, "/api/notifications/"+note.ID+"/read", bobAuth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/notifications/"+note.ID, bobAuth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var still models.Notification
	assert.NoError(t, config.DB.First(&still, "id = ?", note.ID).Error)
}

func TestDriverProfileRoundTrip(t *testing.T) {
	r := setupTestAPI(t)
	driver, driverAuth := seedProfile(t, "profile-driver", models.RoleDriver)
	require.NoError(t, config.DB.Create(&models.Driver{ProfileID: driver.ID, IsAvailable: true}).Error)

	w := doJSON(r, http.MethodPut, "/api/driver/profile", driverAuth,
		gin.H{"is_available": false, "vehicle_type": "bike"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/driver/profile", driverAuth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Driver models.Driver `json:"driver"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Driver.IsAvailable)
	assert.Equal(t, "bike", resp.Driver.VehicleType)
	assert.Equal(t, driver.Name, resp.Driver.Profile.Name)
}

func TestRoleGateRejectsWrongRole(t *testing.T) {
	r := setupTestAPI(t)
	_, clientAuth := seedProfile(t, "gate-client", models.RoleClient)

	w := doJSON(r, http.MethodGet, "/api/driver/orders/available", clientAuth, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/api/driver/orders/available", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
