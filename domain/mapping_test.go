package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

func TestOrderFromRow(t *testing.T) {
	eta := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	driverID := "driver-1"
	row := models.Order{
		ID:          "order-1",
		BusinessID:  "biz-1",
		ClientID:    "client-1",
		DriverID:    &driverID,
		Status:      models.StatusInTransit,
		Subtotal:    25.50,
		DeliveryFee: 3.00,
		Total:       28.50,
		DeliveryAddress: models.DeliveryAddress{
			Latitude:  40.4168,
			Longitude: -3.7038,
			Address:   "Gran Via 1",
			Notes:     "second floor",
		},
		PaymentMethod:     "cash",
		EstimatedDelivery: &eta,
		Items: []models.OrderItem{
			{ID: "item-1", ProductID: "p1", Quantity: 2, Price: 12.75, Notes: "no onion"},
		},
	}

	order := OrderFromRow(row)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "biz-1", order.BusinessID)
	assert.Equal(t, "client-1", order.ClientID)
	assert.Equal(t, "driver-1", order.DriverID)
	assert.Equal(t, models.StatusInTransit, order.Status)
	assert.Equal(t, 28.50, order.Total)
	assert.Equal(t, "Gran Via 1", order.DeliveryAddress.Address)
	assert.Equal(t, "second floor", order.DeliveryAddress.Notes)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.Equal(t, 12.75, order.Items[0].Price)
	require.NotNil(t, order.EstimatedDelivery)
	assert.Equal(t, eta, *order.EstimatedDelivery)
}

func TestOrderFromRowUnassignedDriver(t *testing.T) {
	order := OrderFromRow(models.Order{ID: "o", Status: models.StatusReady})
	assert.Equal(t, "", order.DriverID)
}

func TestOrderSerializesCamelCase(t *testing.T) {
	order := OrderFromRow(models.Order{ID: "o", BusinessID: "b", ClientID: "c"})
	data, err := json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"businessId":"b"`)
	assert.Contains(t, string(data), `"clientId":"c"`)
	assert.NotContains(t, string(data), "business_id")
}

func TestBusinessFromRowDerivesFreeDelivery(t *testing.T) {
	free := BusinessFromRow(models.Business{ID: "b1", DeliveryFee: 0, DeliveryTime: "20-30 min"})
	assert.True(t, free.FreeDelivery)
	assert.Equal(t, "20-30 min", free.DeliveryTime)

	paid := BusinessFromRow(models.Business{ID: "b2", DeliveryFee: 2.5})
	assert.False(t, paid.FreeDelivery)
}

func TestNotificationFromRow(t *testing.T) {
	orderID := "order-9"
	row := models.Notification{
		ID:       "n1",
		UserID:   "u1",
		Type:     models.NotificationOrderReady,
		Title:    "Order ready",
		Message:  "Your order is ready.",
		OrderID:  &orderID,
		Metadata: map[string]string{"status": "ready"},
		IsRead:   false,
	}
	note := NotificationFromRow(row)
	assert.Equal(t, "n1", note.ID)
	assert.Equal(t, "u1", note.UserID)
	assert.Equal(t, "order-9", note.OrderID)
	assert.Equal(t, "ready", note.Metadata["status"])
	assert.False(t, note.IsRead)

	// Absent back-reference maps to empty, not a panic
	bare := NotificationFromRow(models.Notification{ID: "n2"})
	assert.Equal(t, "", bare.OrderID)
}

func TestUserFromRow(t *testing.T) {
	user := UserFromRow(models.Profile{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: models.RoleDriver})
	assert.Equal(t, models.RoleDriver, user.Role)
	assert.Equal(t, "ana@example.com", user.Email)
}
