package controllers_test

import (
	"net/http"
	"testing"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/services"
)

func TestLeaderboardEndpoint(t *testing.T) {
	app := newTestApp(t)
	admin := app.createUser(t, "admin@campus.edu", "Admin", models.RoleAdmin)
	alice := app.createUser(t, "alice@campus.edu", "Alice", models.RoleUser)
	bob := app.createUser(t, "bob@campus.edu", "Bob", models.RoleUser)

	for i := 0; i < 2; i++ {
		r := app.seedReport(t, alice, "Quad")
		app.DB.Model(&r).Update("status", models.StatusResolved)
	}
	resolved := app.seedReport(t, bob, "Gym")
	app.DB.Model(&resolved).Update("status", models.StatusResolved)
	app.seedReport(t, bob, "Pool") // stays Pending, scores nothing
	adminReport := app.seedReport(t, admin, "Office")
	app.DB.Model(&adminReport).Update("status", models.StatusResolved)

	rr := app.do(t, "GET", "/api/leaderboard", nil, sessionCookie(t, alice))
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rr.Code, rr.Body.String())
	}

	var entries []services.LeaderboardEntry
	decodeBody(t, rr, &entries)
	if len(entries) != 2 {
		t.Fatalf("admins must not be ranked, got %d entries", len(entries))
	}
	if entries[0].Email != alice.Email || entries[0].Points != 2*services.PointsPerResolvedReport {
		t.Errorf("got top entry %+v, want alice with %d points", entries[0], 2*services.PointsPerResolvedReport)
	}
	if entries[1].Email != bob.Email || entries[1].Reports != 1 {
		t.Errorf("got second entry %+v, want bob with 1 resolved report", entries[1])
	}
}

func TestLeaderboardRequiresSession(t *testing.T) {
	app := newTestApp(t)
	rr := app.do(t, "GET", "/api/leaderboard", nil, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", rr.Code)
	}
}
