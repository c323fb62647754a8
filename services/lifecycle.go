package services

import "github.com/etlasneha/greenzone/models"

// ApplyStatusChange mutates a report for an admin status update. Any
// status may be set from any other; Resolved is the only transition with
// a side effect, signalled by the returned flag so the caller can enqueue
// the resolution notification after its own write commits. Empty note and
// proof image inputs leave the existing values in place.
func ApplyStatusChange(report *models.Report, status, resolutionNote, proofImage string) (resolved bool) {
	report.Status = status
	if resolutionNote != "" {
		report.ResolutionNote = resolutionNote
	}
	if proofImage != "" {
		report.ProofImage = proofImage
	}
	return status == models.StatusResolved && report.UserEmail != ""
}
