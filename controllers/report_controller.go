package controllers

import (
	"io"
	"log"
	"net/http"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/services"
	"github.com/etlasneha/greenzone/storage"
	"github.com/etlasneha/greenzone/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportController struct {
	DB         *gorm.DB
	Blobs      storage.BlobStore
	Dispatcher *services.Dispatcher
}

func NewReportController(db *gorm.DB, blobs storage.BlobStore, dispatcher *services.Dispatcher) *ReportController {
	return &ReportController{DB: db, Blobs: blobs, Dispatcher: dispatcher}
}

// CreateReport accepts either a multipart form (with an optional image
// file) or a plain JSON body.
func (rc *ReportController) CreateReport(c *gin.Context) {
	identity := utils.GetIdentity(c)

	var location, description, category, imageURL string

	if c.ContentType() == "multipart/form-data" {
		location = c.PostForm("location")
		description = c.PostForm("description")
		category = c.PostForm("category")

		if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
				return
			}

			key := storage.ObjectKey("uploads", fileHeader.Filename)
			url, err := rc.Blobs.Put(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), key)
			if err != nil {
				log.Printf("Failed to store report image: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
				return
			}
			imageURL = url
		}
	} else {
		var input struct {
			Location    string `json:"location" binding:"required"`
			Description string `json:"description"`
			Category    string `json:"category"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		location = input.Location
		description = input.Description
		category = input.Category
	}

	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location is required"})
		return
	}

	userID := identity.UserID
	report := models.Report{
		Location:    location,
		Description: description,
		Category:    category,
		Image:       imageURL,
		Status:      models.StatusPending,
		UserID:      &userID,
		UserEmail:   identity.Email,
		UserName:    identity.Name,
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	rc.Dispatcher.Enqueue(services.NewReportCreatedNotification(
		report.UserEmail, report.UserName, report.ID, report.Issue()))

	c.JSON(http.StatusCreated, report)
}

// ListReports returns every report the caller may see: all of them for
// admins, everything not soft-deleted by the caller otherwise.
func (rc *ReportController) ListReports(c *gin.Context) {
	identity := utils.GetIdentity(c)

	var reports []models.Report
	if err := rc.DB.Order("id").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, services.VisibleReports(*identity, reports))
}

// DeleteReport soft-deletes when the caller owns the report and
// hard-deletes when the caller is an admin acting on someone else's
// report. Soft delete is idempotent.
func (rc *ReportController) DeleteReport(c *gin.Context) {
	identity := utils.GetIdentity(c)

	var input struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var report models.Report
	if err := rc.DB.First(&report, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
		return
	}

	switch services.ReportDeleteMode(*identity, report) {
	case services.SoftDelete:
		if report.HideFor(identity.Email) {
			if err := rc.DB.Model(&report).Update("deleted_by", report.DeletedBy).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "softDeleted": true})

	case services.HardDelete:
		if err := rc.DB.Delete(&report).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "hardDeleted": true})

	default:
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Unauthorized"})
	}
}
