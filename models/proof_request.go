package models

import "time"

const (
	ProofRequestPending   = "pending"
	ProofRequestFulfilled = "fulfilled"
)

// ProofRequest is a user's ask for photographic evidence that a resolved
// report was actually addressed. At most one row exists per
// (ReportID, UserEmail) pair; creation is deduplicated before insert.
type ProofRequest struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	ReportID  uint      `gorm:"index;not null" json:"reportId"`
	UserEmail string    `gorm:"index;not null" json:"userEmail"`
	Status    string    `gorm:"not null;default:'pending'" json:"status"`
}
