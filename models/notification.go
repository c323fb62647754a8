package models

import "time"

// Notification types
const (
	NotificationReportResolved    = "report_resolved"
	NotificationReportCreated     = "report_created"
	NotificationReportUpdated     = "report_updated"
	NotificationReportDeleted     = "report_deleted"
	NotificationAdminMessage      = "admin_message"
	NotificationSystemUpdate      = "system_update"
	NotificationLeaderboardUpdate = "leaderboard_update"
	NotificationWelcome           = "welcome"
)

// Notification priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	To        string    `gorm:"index;not null" json:"to"`
	UserName  string    `json:"userName,omitempty"`
	Type      string    `gorm:"not null;default:'system_update'" json:"type"`
	Priority  string    `gorm:"not null;default:'medium'" json:"priority"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `json:"message"`
	Read      bool      `gorm:"default:false;index" json:"read"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	ActionURL  string `json:"actionUrl,omitempty"`
	ActionText string `json:"actionText,omitempty"`

	// Loose reference; reports may be hard-deleted out from under it.
	ReportID         *uint  `json:"reportId,omitempty"`
	IssueDescription string `json:"issueDescription,omitempty"`
	ProofImage       string `json:"proofImage,omitempty"`
}
