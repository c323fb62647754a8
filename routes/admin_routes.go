package routes

import (
	"github.com/etlasneha/greenzone/controllers"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(admin *gin.RouterGroup, adminController *controllers.AdminController, proofController *controllers.ProofRequestController) {
	admin.GET("/admin", adminController.ListAllReports)
	admin.PATCH("/admin", adminController.UpdateReportStatus)
	admin.GET("/admin/users", adminController.ListUsers)
	admin.POST("/admin/promote-user", adminController.PromoteUser)
	admin.POST("/admin/notifications", adminController.SendNotification)
	admin.POST("/update-role", adminController.UpdateRole)

	admin.GET("/proof-requests", proofController.ListProofRequests)
	admin.PATCH("/proof-requests", proofController.FulfillProofRequest)
}
