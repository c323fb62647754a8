package controllers

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/services"
	"github.com/etlasneha/greenzone/storage"
	"github.com/etlasneha/greenzone/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProofRequestController struct {
	DB         *gorm.DB
	Blobs      storage.BlobStore
	Dispatcher *services.Dispatcher
}

func NewProofRequestController(db *gorm.DB, blobs storage.BlobStore, dispatcher *services.Dispatcher) *ProofRequestController {
	return &ProofRequestController{DB: db, Blobs: blobs, Dispatcher: dispatcher}
}

// RequestProof records a user's ask for photographic evidence on a
// resolved report. Requests are deduplicated per (report, user);
// ownership of the report is deliberately not checked.
func (pc *ProofRequestController) RequestProof(c *gin.Context) {
	identity := utils.GetIdentity(c)

	var input struct {
		ReportID uint `json:"reportId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing reportId"})
		return
	}

	var report models.Report
	if err := pc.DB.First(&report, input.ReportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var existing models.ProofRequest
	err := pc.DB.Where("report_id = ? AND user_email = ?", input.ReportID, identity.Email).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Request already exists"})
		return
	}

	request := models.ProofRequest{
		ReportID:  input.ReportID,
		UserEmail: identity.Email,
		Status:    models.ProofRequestPending,
	}
	if err := pc.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create proof request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListProofRequests returns every proof request for the admin panel.
func (pc *ProofRequestController) ListProofRequests(c *gin.Context) {
	var requests []models.ProofRequest
	if err := pc.DB.Order("id").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proof requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// FulfillProofRequest attaches the uploaded proof image to the report,
// resolves it, and marks the request fulfilled. The two writes are not
// transactional; a crash in between leaves the report updated and the
// request still pending.
func (pc *ProofRequestController) FulfillProofRequest(c *gin.Context) {
	var requestID uint
	var proofImageURL, resolutionNote string

	if c.ContentType() == "multipart/form-data" {
		id, err := strconv.ParseUint(c.PostForm("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing proof request id"})
			return
		}
		requestID = uint(id)
		resolutionNote = c.PostForm("resolutionNote")

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Proof image is required"})
			return
		}
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

		key := storage.ObjectKey("uploads/proofs", fileHeader.Filename)
		url, err := pc.Blobs.Put(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), key)
		if err != nil {
			log.Printf("Failed to store proof image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store proof image"})
			return
		}
		proofImageURL = url
	} else {
		var input struct {
			ID             uint   `json:"id" binding:"required"`
			ProofImage     string `json:"proofImage" binding:"required"`
			ResolutionNote string `json:"resolutionNote"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing proof request id"})
			return
		}
		requestID = input.ID
		proofImageURL = input.ProofImage
		resolutionNote = input.ResolutionNote
	}

	var request models.ProofRequest
	if err := pc.DB.First(&request, requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proof request not found"})
		return
	}

	var report models.Report
	if err := pc.DB.First(&report, request.ReportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	resolved := services.ApplyStatusChange(&report, models.StatusResolved, resolutionNote, proofImageURL)
	if err := pc.DB.Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		return
	}

	if err := pc.DB.Model(&request).Update("status", models.ProofRequestFulfilled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update proof request"})
		return
	}

	if resolved {
		pc.Dispatcher.Enqueue(services.NewReportResolvedNotification(
			report.UserEmail, report.UserName, report.ID,
			report.Issue(), report.ResolutionNote, report.ProofImage))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
