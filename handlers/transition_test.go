package handlers

import (
	"context"
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
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
)

type stubWriter struct{}

func (stubWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error { return nil }
func (stubWriter) Close() error                                                   { return nil }

func setupTransitionTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("DATABASE_PATH", ":memory:")
	config.InitDB()

	nop := zerolog.Nop()
	pub := realtime.NewPublisher(redis.NewClient(&redis.Options{Addr: "localhost:1"}), nop)
	Init(pub, events.NewProducerWithWriter(stubWriter{}, nop), nop)
}

// A transition validated against a stale read must not overwrite a concurrent
// writer: the status guard matches zero rows and the caller gets a conflict.
func TestTransitionOnStaleOrderConflicts(t *testing.T) {
	setupTransitionTest(t)

	order := models.Order{
		BusinessID: "business-1",
		ClientID:   "client-1",
		Status:     models.StatusReady,
	}
	require.NoError(t, config.DB.Create(&order).Error)

	stale := order

	// Another driver gets there first.
	firstDriver := "driver-a"
	require.NoError(t, config.DB.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{"status": models.StatusAssigned, "driver_id": firstDriver}).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set("userID", "driver-b")

	ok := transitionOrder(c, &stale, models.StatusAssigned, "driver",
		"Driver claimed the order", map[string]interface{}{"driver_id": "driver-b"})

	assert.False(t, ok)
	assert.Equal(t, http.StatusConflict, w.Code)

	var current models.Order
	require.NoError(t, config.DB.First(&current, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusAssigned, current.Status)
	require.NotNil(t, current.DriverID)
	assert.Equal(t, firstDriver, *current.DriverID)

	// The losing attempt must not leave an audit row either.
	var histories int64
	config.DB.Model(&models.OrderStatusHistory{}).Where("order_id = ?", order.ID).Count(&histories)
	assert.Equal(t, int64(0), histories)
}

func TestTransitionAppliesWhenRowUnchanged(t *testing.T) {
	setupTransitionTest(t)

	order := models.Order{
		BusinessID: "business-1",
		ClientID:   "client-1",
		Status:     models.StatusReady,
	}
	require.NoError(t, config.DB.Create(&order).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set("userID", "driver-a")

	ok := transitionOrder(c, &order, models.StatusAssigned, "driver",
		"Driver claimed the order", map[string]interface{}{"driver_id": "driver-a"})

	assert.True(t, ok)
	assert.Equal(t, models.StatusAssigned, order.Status)

	var current models.Order
	require.NoError(t, config.DB.First(&current, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusAssigned, current.Status)
	require.NotNil(t, current.DriverID)
	assert.Equal(t, "driver-a", *current.DriverID)
}
