package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

type Report struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Location    string `gorm:"not null" json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Status      string `gorm:"not null;default:'Pending'" json:"status"`

	UserID    *uint  `gorm:"index" json:"userId,omitempty"`
	UserEmail string `gorm:"index" json:"userEmail"`
	UserName  string `json:"userName"`

	ResolutionNote string `json:"resolutionNote,omitempty"`
	ProofImage     string `json:"proofImage,omitempty"`

	// Emails of users who removed this report from their own view. The
	// record itself stays in the store until an admin hard-deletes it.
	DeletedBy datatypes.JSONSlice[string] `json:"deletedBy"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// DeletedFor reports whether email has hidden this report from their view.
func (r *Report) DeletedFor(email string) bool {
	for _, e := range r.DeletedBy {
		if e == email {
			return true
		}
	}
	return false
}

// HideFor appends email to DeletedBy. Appending an email that is already
// present is a no-op; the returned bool says whether the set changed.
func (r *Report) HideFor(email string) bool {
	if r.DeletedFor(email) {
		return false
	}
	r.DeletedBy = append(r.DeletedBy, email)
	return true
}

// Issue is the human-readable summary used in notifications.
func (r *Report) Issue() string {
	if r.Description != "" {
		return r.Description
	}
	return r.Location
}
