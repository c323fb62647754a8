package routes

import (
	"github.com/etlasneha/greenzone/controllers"

	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(session *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := session.Group("/reports")
	{
		reports.GET("", reportController.ListReports)
		reports.POST("", reportController.CreateReport)
		reports.DELETE("", reportController.DeleteReport)
	}
}
