package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/etlasneha/greenzone/models"
)

func (a *testApp) seedReport(t *testing.T, owner models.User, location string) models.Report {
	t.Helper()
	report := models.Report{
		Location:  location,
		Status:    models.StatusPending,
		UserID:    &owner.ID,
		UserEmail: owner.Email,
		UserName:  owner.Name,
	}
	if err := a.DB.Create(&report).Error; err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}
	return report
}

func TestRequestProofDeduplicates(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice@campus.edu", "Alice", models.RoleUser)
	report := app.seedReport(t, alice, "Library steps")

	for i := 0; i < 2; i++ {
		rr := app.do(t, "POST", "/api/proof-requests", map[string]interface{}{
			"reportId": report.ID,
		}, sessionCookie(t, alice))
		if rr.Code != http.StatusOK {
			t.Fatalf("attempt %d: got status %d body %s", i, rr.Code, rr.Body.String())
		}
	}

	var count int64
	app.DB.Model(&models.ProofRequest{}).Count(&count)
	if count != 1 {
		t.Errorf("repeated requests must collapse to one row, got %d", count)
	}
}

func TestRequestProofUnknownReport(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice@campus.edu", "Alice", models.RoleUser)

	rr := app.do(t, "POST", "/api/proof-requests", map[string]interface{}{
		"reportId": 999,
	}, sessionCookie(t, alice))
	if rr.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rr.Code)
	}
}

func TestRequestProofOnAnotherUsersReport(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice@campus.edu", "Alice", models.RoleUser)
	bob := app.createUser(t, "bob@campus.edu", "Bob", models.RoleUser)
	report := app.seedReport(t, alice, "Parking lot B")

	rr := app.do(t, "POST", "/api/proof-requests", map[string]interface{}{
		"reportId": report.ID,
	}, sessionCookie(t, bob))
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rr.Code, rr.Body.String())
	}

	var request models.ProofRequest
	if err := app.DB.Where("report_id = ?", report.ID).First(&request).Error; err != nil {
		t.Fatalf("request not stored: %v", err)
	}
	if request.UserEmail != bob.Email {
		t.Errorf("request belongs to %q, want the requester", request.UserEmail)
	}
}

func TestListProofRequestsAdminOnly(t *testing.T) {
	app := newTestApp(t)
	admin := app.createUser(t, "admin@campus.edu", "Admin", models.RoleAdmin)
	alice := app.createUser(t, "alice@campus.edu", "Alice", models.RoleUser)
	report := app.seedReport(t, alice, "Cafeteria")
	app.DB.Create(&models.ProofRequest{ReportID: report.ID, UserEmail: alice.Email, Status: models.ProofRequestPending})

	rr := app.do(t, "GET", "/api/proof-requests", nil, sessionCookie(t, alice))
	if rr.Code != http.StatusForbidden {
		t.Errorf("listing as non-admin: got status %d, want 403", rr.Code)
	}

	rr = app.do(t, "GET", "/api/proof-requests", nil, sessionCookie(t, admin))
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rr.Code, rr.Body.String())
	}
	var requests []models.ProofRequest
	decodeBody(t, rr, &requests)
	if len(requests) != 1 {
		t.Errorf("expected 1 request, got %d", len(requests))
	}
}

func TestFulfillProofRequestJSON(t *testing.T) {
	app := newTestApp(t)
	admin := app.createUser(t, "admin@campus.edu", "Admin", models.RoleAdmin)
	alice := app.createUser(t, "alice@campus.edu", "Alice", models.RoleUser)
	report := app.seedReport(t, alice, "Dorm courtyard")
	request := models.ProofRequest{ReportID: report.ID, UserEmail: alice.Email, Status: models.ProofRequestPending}
	app.DB.Create(&request)

	rr := app.do(t, "PATCH", "/api/proof-requests", map[string]interface{}{
		"id":             request.ID,
		"proofImage":     "https://cdn.example/proof.jpg",
		"resolutionNote": "Bins emptied and area swept",
	}, sessionCookie(t, admin))
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rr.Code, rr.Body.String())
	}

	var storedReport models.Report
	app.DB.First(&storedReport, report.ID)
	if storedReport.Status != models.StatusResolved {
		t.Errorf("got status %q, want Resolved", storedReport.Status)
	}
	if storedReport.ProofImage != "https://cdn.example/proof.jpg" {
		t.Errorf("proof image not attached, got %q", storedReport.ProofImage)
	}
	if storedReport.ResolutionNote != "Bins emptied and area swept" {
		t.Errorf("resolution note not stored, got %q", storedReport.ResolutionNote)
	}

	var storedRequest models.ProofRequest
	app.DB.First(&storedRequest, request.ID)
	if storedRequest.Status != models.ProofRequestFulfilled {
		t.Errorf("got request status %q, want fulfilled", storedRequest.Status)
	}

	notifications := app.userNotifications(t, alice)
	if len(notifications) != 1 || notifications[0].Type != models.NotificationReportResolved {
		t.Fatalf("expected a resolved notification for the reporter, got %+v", notifications)
	}
	if notifications[0].ProofImage != "https://cdn.example/proof.jpg" {
		t.Error("resolved notification should carry the proof image")
	}
}

func TestFulfillProofRequestMultipart(t *testing.T) {
	app := newTestApp(t)
	admin := app.createUser(t, "admin@campus.edu", "Admin", models.RoleAdmin)
	alice := app.createUser(t, "alice@campus.edu", "Alice", models.RoleUser)
	report := app.seedReport(t, alice, "Sports field")
	request := models.ProofRequest{ReportID: report.ID, UserEmail: alice.Email, Status: models.ProofRequestPending}
	app.DB.Create(&request)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("id", strconv.FormatUint(uint64(request.ID), 10))
	writer.WriteField("resolutionNote", "Picked up after the match")
	part, err := writer.CreateFormFile("image", "proof.jpg")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("fake jpeg bytes"))
	writer.Close()

	req := httptest.NewRequest("PATCH", "/api/proof-requests", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(sessionCookie(t, admin))
	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rr.Code, rr.Body.String())
	}

	var storedReport models.Report
	app.DB.First(&storedReport, report.ID)
	if storedReport.Status != models.StatusResolved {
		t.Errorf("got status %q, want Resolved", storedReport.Status)
	}
	if storedReport.ProofImage == "" {
		t.Error("uploaded proof image should be stored on the report")
	}
}

func TestFulfillProofRequestMissing(t *testing.T) {
	app := newTestApp(t)
	admin := app.createUser(t, "admin@campus.edu", "Admin", models.RoleAdmin)

	rr := app.do(t, "PATCH", "/api/proof-requests", map[string]interface{}{
		"id":         999,
		"proofImage": "https://cdn.example/proof.jpg",
	}, sessionCookie(t, admin))
	if rr.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rr.Code)
	}
}
