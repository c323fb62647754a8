package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/routes"
	"github.com/etlasneha/greenzone/services"
	"github.com/etlasneha/greenzone/storage"
	"github.com/etlasneha/greenzone/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "secret123"

type testApp struct {
	Router     *gin.Engine
	DB         *gorm.DB
	Dispatcher *services.Dispatcher
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// One connection, so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.Report{}, &models.Notification{}, &models.ProofRequest{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	dispatcher := services.NewDispatcher(db)
	dispatcher.Start()
	t.Cleanup(dispatcher.Close)

	blobs := storage.NewLocalStore(t.TempDir(), "")

	r := gin.New()
	routes.SetupRoutes(r, db, blobs, dispatcher)

	return &testApp{Router: r, DB: db, Dispatcher: dispatcher}
}

func (a *testApp) createUser(t *testing.T, email, name, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := models.User{Email: email, Name: name, Password: string(hash), Role: role}
	if err := a.DB.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return user
}

func sessionCookie(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	raw, err := json.Marshal(utils.SessionClaim{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: utils.SessionCookieName, Value: url.QueryEscape(string(raw))}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func (a *testApp) userNotifications(t *testing.T, user models.User) []models.Notification {
	t.Helper()
	a.Dispatcher.Flush()
	rr := a.do(t, "GET", "/api/notifications?userEmail="+url.QueryEscape(user.Email), nil, sessionCookie(t, user))
	if rr.Code != http.StatusOK {
		t.Fatalf("failed to list notifications: status %d body %s", rr.Code, rr.Body.String())
	}
	var notifications []models.Notification
	decodeBody(t, rr, &notifications)
	return notifications
}
