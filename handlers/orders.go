package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/events"
	"github.com/zerontec/rork-nexusdelivery-sub001/middleware"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
	"github.com/zerontec/rork-nexusdelivery-sub001/statemachine"
)

// Package-level collaborators, wired once at startup.
var (
	feed     *realtime.Publisher
	producer *events.Producer
	hlog     zerolog.Logger
)

// Init wires the change feed and event producer into the handler package.
func Init(f *realtime.Publisher, p *events.Producer, log zerolog.Logger) {
	feed = f
	producer = p
	hlog = log
}

// transitionOrder validates and applies one status transition, records the
// audit row, and pushes the change to the realtime feed and event topic.
// It writes the HTTP error response itself and reports success to the caller.
func transitionOrder(c *gin.Context, order *models.Order, to models.OrderStatus, actor, note string, extra map[string]interface{}) bool {
	if err := statemachine.CanTransition(order.Status, to, actor); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return false
	}

	callerID := middleware.GetUserID(c)
	prevStatus := order.Status

	updates := map[string]interface{}{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	// Guarding on the status we validated against makes the write a
	// compare-and-swap: a concurrent transition that got there first leaves
	// zero matched rows instead of being silently overwritten.
	res := config.DB.Model(order).Where("status = ?", prevStatus).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return false
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order was already updated, refetch and retry"})
		return false
	}
	order.Status = to

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   to,
		ChangedBy:  callerID,
		Note:       note,
	}
	config.DB.Create(&history)

	announceOrderChange(c, order, realtime.EventUpdate, prevStatus, callerID)
	return true
}

// announceOrderChange publishes the realtime change event and, for status
// transitions, the kafka order event feeding the notifier.
func announceOrderChange(c *gin.Context, order *models.Order, eventType string, prevStatus models.OrderStatus, changedBy string) {
	ctx := c.Request.Context()
	feed.OrderChanged(ctx, eventType, order, nil)

	driverID := ""
	if order.DriverID != nil {
		driverID = *order.DriverID
	}
	// Best effort: a lost event costs a notification, not the order.
	_ = producer.Publish(ctx, events.OrderEvent{
		OrderID:      order.ID,
		BusinessID:   order.BusinessID,
		BusinessName: order.Business.Name,
		ClientID:     order.ClientID,
		DriverID:     driverID,
		FromStatus:   prevStatus,
		ToStatus:     order.Status,
		ChangedBy:    changedBy,
	})
}
