package routes

import (
	"github.com/etlasneha/greenzone/controllers"
	"github.com/etlasneha/greenzone/middleware"
	"github.com/etlasneha/greenzone/services"
	"github.com/etlasneha/greenzone/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, blobs storage.BlobStore, dispatcher *services.Dispatcher) {
	// Initialize controllers
	authController := controllers.NewAuthController(db, dispatcher)
	reportController := controllers.NewReportController(db, blobs, dispatcher)
	adminController := controllers.NewAdminController(db, dispatcher)
	notificationController := controllers.NewNotificationController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	proofController := controllers.NewProofRequestController(db, blobs, dispatcher)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/auth/signup", authController.Signup)
		public.POST("/auth/login", authController.Login)
		public.POST("/auth/logout", authController.Logout)
	}

	// Authenticated routes
	session := r.Group("/api")
	session.Use(middleware.SessionMiddleware(db))
	{
		session.GET("/auth/me", authController.Me)
		session.GET("/leaderboard", leaderboardController.GetLeaderboard)
		session.POST("/proof-requests", proofController.RequestProof)

		SetupReportRoutes(session, reportController)
		SetupNotificationRoutes(session, notificationController)
	}

	// Admin routes
	admin := r.Group("/api")
	admin.Use(middleware.SessionMiddleware(db), middleware.AdminMiddleware())
	{
		SetupAdminRoutes(admin, adminController, proofController)
	}
}
