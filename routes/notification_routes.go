package routes

import (
	"github.com/etlasneha/greenzone/controllers"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(session *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := session.Group("/notifications")
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.POST("", notificationController.HandleAction)
	}
}
