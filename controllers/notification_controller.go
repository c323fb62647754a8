package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/services"
	"github.com/etlasneha/greenzone/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ListNotifications returns a user's notification feed, newest first.
// Without a userEmail filter it returns the whole store, which only
// admins may see. Non-admins can only read their own feed.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	identity := utils.GetIdentity(c)

	userEmail := c.Query("userEmail")
	unreadOnly := c.Query("unreadOnly") == "true"
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	if userEmail == "" {
		if !identity.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: not an admin."})
			return
		}
		var notifications []models.Notification
		if err := nc.DB.Order("timestamp desc").Find(&notifications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
			return
		}
		c.JSON(http.StatusOK, notifications)
		return
	}

	if !identity.IsAdmin() && userEmail != identity.Email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	query := nc.DB.Where("\"to\" = ?", userEmail).Order("timestamp desc").Limit(limit)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// HandleAction dispatches the feed mutations: mark one read, mark all
// read, unread count, and the admin-only 30-day cleanup.
func (nc *NotificationController) HandleAction(c *gin.Context) {
	identity := utils.GetIdentity(c)

	var input struct {
		Action         string `json:"action" binding:"required"`
		UserEmail      string `json:"userEmail"`
		NotificationID uint   `json:"notificationId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Action {
	case "markAsRead":
		if input.NotificationID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "notificationId required"})
			return
		}
		var notification models.Notification
		if err := nc.DB.First(&notification, input.NotificationID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		if !identity.IsAdmin() && notification.To != identity.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		now := time.Now()
		updates := map[string]interface{}{"read": true, "read_at": &now}
		if err := nc.DB.Model(&notification).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case "markAllAsRead":
		if input.UserEmail == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userEmail required"})
			return
		}
		if !identity.IsAdmin() && input.UserEmail != identity.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		now := time.Now()
		err := nc.DB.Model(&models.Notification{}).
			Where("\"to\" = ? AND read = ?", input.UserEmail, false).
			Updates(map[string]interface{}{"read": true, "read_at": &now}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "All notifications marked as read"})

	case "getUnreadCount":
		if input.UserEmail == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userEmail required"})
			return
		}
		if !identity.IsAdmin() && input.UserEmail != identity.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		var count int64
		err := nc.DB.Model(&models.Notification{}).
			Where("\"to\" = ? AND read = ?", input.UserEmail, false).
			Count(&count).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})

	case "cleanupOld":
		if !identity.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: not an admin."})
			return
		}
		if _, err := services.DeleteOldNotifications(nc.DB, services.NotificationMaxAge); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clean up notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Old notifications cleaned up"})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}
