package controllers

import (
	"net/http"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	DB *gorm.DB
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

// GetLeaderboard ranks reporters by resolved reports, 10 points each.
// Only resolved reports contribute, and admins never appear.
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	var users []models.User
	if err := lc.DB.Order("id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	var reports []models.Report
	if err := lc.DB.Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, services.BuildLeaderboard(users, reports))
}
