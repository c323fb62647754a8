package controllers

import (
	"errors"
	"net/http"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/services"
	"github.com/etlasneha/greenzone/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB         *gorm.DB
	Dispatcher *services.Dispatcher
}

func NewAdminController(db *gorm.DB, dispatcher *services.Dispatcher) *AdminController {
	return &AdminController{DB: db, Dispatcher: dispatcher}
}

// ListAllReports returns every report, soft-deleted ones included, for
// the admin triage view.
func (ac *AdminController) ListAllReports(c *gin.Context) {
	var reports []models.Report
	if err := ac.DB.Order("id").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// UpdateReportStatus moves a report to any status. Entering Resolved
// notifies the reporter; a notification failure never fails the update.
func (ac *AdminController) UpdateReportStatus(c *gin.Context) {
	var input struct {
		ID             uint   `json:"id" binding:"required"`
		Status         string `json:"status" binding:"required"`
		ResolutionNote string `json:"resolutionNote"`
		ProofImage     string `json:"proofImage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var report models.Report
	if err := ac.DB.First(&report, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	resolved := services.ApplyStatusChange(&report, input.Status, input.ResolutionNote, input.ProofImage)

	if err := ac.DB.Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		return
	}

	if resolved {
		ac.Dispatcher.Enqueue(services.NewReportResolvedNotification(
			report.UserEmail, report.UserName, report.ID,
			report.Issue(), report.ResolutionNote, report.ProofImage))
	}

	c.JSON(http.StatusOK, report)
}

// ListUsers returns all users for the management view. Passwords never
// leave the server; the model hides them from JSON.
func (ac *AdminController) ListUsers(c *gin.Context) {
	var users []models.User
	if err := ac.DB.Order("id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ac *AdminController) changeRole(c *gin.Context, email, newRole, promotedBy string) {
	identity := utils.GetIdentity(c)

	var target models.User
	if err := ac.DB.Where("email = ?", email).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := services.ValidateRoleChange(*identity, target, newRole); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: not an admin."})
		case errors.Is(err, services.ErrRoleUnchanged):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already has this role"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		}
		return
	}

	updates := map[string]interface{}{"role": newRole}
	if newRole == models.RoleAdmin && promotedBy != "" {
		updates["promoted_by"] = promotedBy
	}

	if err := ac.DB.Model(&target).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role. Database error."})
		return
	}

	target.Role = newRole
	if newRole == models.RoleAdmin && promotedBy != "" {
		target.PromotedBy = &promotedBy
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": target})
}

// PromoteUser promotes or demotes a user, recording who promoted them.
func (ac *AdminController) PromoteUser(c *gin.Context) {
	var input struct {
		Email      string `json:"email" binding:"required"`
		NewRole    string `json:"newRole" binding:"required"`
		PromotedBy string `json:"promotedBy"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ac.changeRole(c, input.Email, input.NewRole, input.PromotedBy)
}

// UpdateRole is the older role-change endpoint kept for the management
// page; it takes the role under a different key and records no promoter.
func (ac *AdminController) UpdateRole(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		Role  string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ac.changeRole(c, input.Email, input.Role, "")
}

// SendNotification delivers an admin message to one user, or a system
// update to every user when no email is given.
func (ac *AdminController) SendNotification(c *gin.Context) {
	identity := utils.GetIdentity(c)

	var input struct {
		Email   string `json:"email"`
		Title   string `json:"title"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from := identity.Name
	if from == "" {
		from = identity.Email
	}

	if input.Email != "" {
		var target models.User
		if err := ac.DB.Where("email = ?", input.Email).First(&target).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ac.Dispatcher.Enqueue(services.NewAdminMessageNotification(
			target.Email, target.Name, input.Message, from))
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	title := input.Title
	if title == "" {
		title = "System Update"
	}

	var users []models.User
	if err := ac.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	for _, user := range users {
		ac.Dispatcher.Enqueue(services.NewSystemUpdateNotification(
			user.Email, user.Name, title, input.Message))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipients": len(users)})
}
