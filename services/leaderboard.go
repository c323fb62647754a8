package services

import (
	"sort"
	"strings"

	"github.com/etlasneha/greenzone/models"
)

// PointsPerResolvedReport is the fixed score weight.
const PointsPerResolvedReport = 10

type LeaderboardEntry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	UserID  uint   `json:"userId"`
	Reports int    `json:"reports"`
	Points  int    `json:"points"`
}

// BuildLeaderboard ranks non-admin users by resolved-report count. A
// report counts for a user when it belongs to them (by id or email), is
// Resolved, and they have not soft-deleted it. Admins are left out of the
// ranking entirely. Ties keep user-store order.
func BuildLeaderboard(users []models.User, reports []models.Report) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, user := range users {
		if user.IsAdmin() {
			continue
		}
		count := 0
		for _, report := range reports {
			byID := report.UserID != nil && *report.UserID == user.ID
			if !byID && report.UserEmail != user.Email {
				continue
			}
			if report.Status != models.StatusResolved {
				continue
			}
			if report.DeletedFor(user.Email) {
				continue
			}
			count++
		}
		name := user.Name
		if name == "" {
			name = strings.SplitN(user.Email, "@", 2)[0]
		}
		entries = append(entries, LeaderboardEntry{
			Name:    name,
			Email:   user.Email,
			UserID:  user.ID,
			Reports: count,
			Points:  count * PointsPerResolvedReport,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}
