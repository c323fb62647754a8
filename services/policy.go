package services

import (
	"errors"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/utils"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrRoleUnchanged = errors.New("user already has this role")
	ErrInvalidRole   = errors.New("invalid role")
)

// DeleteMode is the behavior selected for a report deletion request.
type DeleteMode int

const (
	DeleteDenied DeleteMode = iota
	// SoftDelete hides the report from the requesting owner only.
	SoftDelete
	// HardDelete removes the record permanently.
	HardDelete
)

// ReportDeleteMode decides how a delete request is carried out. Owners
// soft-delete their own reports, even when they are also admins; admins
// hard-delete anything else; everyone else is denied.
func ReportDeleteMode(identity utils.Identity, report models.Report) DeleteMode {
	if identity.Email != "" && report.UserEmail == identity.Email {
		return SoftDelete
	}
	if identity.IsAdmin() {
		return HardDelete
	}
	return DeleteDenied
}

// CanSeeReport implements the list-visibility rule: admins see every
// report, other users see everything they have not soft-deleted.
func CanSeeReport(identity utils.Identity, report models.Report) bool {
	if identity.IsAdmin() {
		return true
	}
	return !report.DeletedFor(identity.Email)
}

// VisibleReports filters reports down to what identity may see, keeping
// store order.
func VisibleReports(identity utils.Identity, reports []models.Report) []models.Report {
	if identity.IsAdmin() {
		return reports
	}
	visible := make([]models.Report, 0, len(reports))
	for _, report := range reports {
		if CanSeeReport(identity, report) {
			visible = append(visible, report)
		}
	}
	return visible
}

// ValidateRoleChange checks a promote/demote request. The caller must be
// an admin and the change must not be a no-op. Self-promotion and
// self-demotion are not special-cased here; the management UI is expected
// to keep admins from locking themselves out.
func ValidateRoleChange(caller utils.Identity, target models.User, newRole string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if !models.ValidRole(newRole) {
		return ErrInvalidRole
	}
	if target.Role == newRole {
		return ErrRoleUnchanged
	}
	return nil
}
