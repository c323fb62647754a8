package services

import (
	"fmt"
	"time"

	"github.com/etlasneha/greenzone/models"

	"gorm.io/gorm"
)

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}

func NewWelcomeNotification(email, name string) models.Notification {
	return models.Notification{
		To:       email,
		UserName: name,
		Type:     models.NotificationWelcome,
		Priority: models.PriorityLow,
		Title:    "Welcome to GreenZone! 🌱",
		Message: fmt.Sprintf("Welcome %s! Thank you for joining our community. "+
			"Start by reporting any waste issues you see on campus. "+
			"Together we can keep our environment clean and green!", displayName(name, email)),
		ActionURL:  "/report",
		ActionText: "Report Waste",
		Timestamp:  time.Now(),
	}
}

func NewReportCreatedNotification(email, name string, reportID uint, issue string) models.Notification {
	return models.Notification{
		To:       email,
		UserName: name,
		Type:     models.NotificationReportCreated,
		Priority: models.PriorityMedium,
		Title:    "Report Submitted Successfully! 📝",
		Message: fmt.Sprintf("Thank you %s! Your report %q has been submitted and is "+
			"being reviewed. We'll notify you when it's resolved.", displayName(name, email), issue),
		ReportID:         &reportID,
		IssueDescription: issue,
		ActionURL:        "/my-reports",
		ActionText:       "View My Reports",
		Timestamp:        time.Now(),
	}
}

func NewReportResolvedNotification(email, name string, reportID uint, issue, resolutionNote, proofImage string) models.Notification {
	message := fmt.Sprintf("Hello %s, your reported issue %q has been resolved.",
		displayName(name, email), issue)
	if resolutionNote != "" {
		message += " Note from admin: " + resolutionNote
	}
	message += " Thank you for helping keep our zone green!"
	return models.Notification{
		To:               email,
		UserName:         name,
		Type:             models.NotificationReportResolved,
		Priority:         models.PriorityHigh,
		Title:            "Report Resolved! 🎉",
		Message:          message,
		ReportID:         &reportID,
		IssueDescription: issue,
		ProofImage:       proofImage,
		ActionURL:        "/my-reports",
		ActionText:       "View Report",
		Timestamp:        time.Now(),
	}
}

func NewAdminMessageNotification(email, name, message, fromAdmin string) models.Notification {
	return models.Notification{
		To:         email,
		UserName:   name,
		Type:       models.NotificationAdminMessage,
		Priority:   models.PriorityHigh,
		Title:      fmt.Sprintf("Message from %s 👨‍💼", fromAdmin),
		Message:    message,
		ActionURL:  "/account",
		ActionText: "View Message",
		Timestamp:  time.Now(),
	}
}

func NewSystemUpdateNotification(email, name, title, message string) models.Notification {
	return models.Notification{
		To:        email,
		UserName:  name,
		Type:      models.NotificationSystemUpdate,
		Priority:  models.PriorityMedium,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NotificationMaxAge is how long notifications are kept before bulk
// expiry removes them.
const NotificationMaxAge = 30 * 24 * time.Hour

// DeleteOldNotifications removes notifications older than maxAge and
// returns how many were deleted.
func DeleteOldNotifications(db *gorm.DB, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
