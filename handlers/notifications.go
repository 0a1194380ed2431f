package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/middleware"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
)

// GetNotifications returns the caller's feed, newest first, capped at 100.
func GetNotifications(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var notifications []models.Notification
	config.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(100).
		Find(&notifications)

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":         len(notifications),
		"unread_count":  unread,
		"notifications": notifications,
	})
}

// MarkNotificationRead flips one notification to read. is_read only ever
// moves false -> true.
func MarkNotificationRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	noteID := c.Param("id")

	var note models.Notification
	if err := config.DB.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if !note.IsRead {
		if err := config.DB.Model(&note).Update("is_read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
			return
		}
		note.IsRead = true
		feed.NotificationChanged(c.Request.Context(), userID, realtime.EventUpdate, note, nil)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read", "id": note.ID})
}

// MarkAllNotificationsRead flips every unread notification of the caller.
// The update targets only rows still unread server-side.
func MarkAllNotificationsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var unread []models.Notification
	config.DB.Where("user_id = ? AND is_read = ?", userID, false).Find(&unread)

	if len(unread) > 0 {
		if err := config.DB.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Update("is_read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
			return
		}
		ctx := c.Request.Context()
		for _, note := range unread {
			note.IsRead = true
			feed.NotificationChanged(ctx, userID, realtime.EventUpdate, note, nil)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": len(unread)})
}

// DeleteNotification removes one notification from the caller's feed.
func DeleteNotification(c *gin.Context) {
	userID := middleware.GetUserID(c)
	noteID := c.Param("id")

	var note models.Notification
	if err := config.DB.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if err := config.DB.Delete(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	feed.NotificationChanged(c.Request.Context(), userID, realtime.EventDelete, nil, note)

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted", "id": note.ID})
}
