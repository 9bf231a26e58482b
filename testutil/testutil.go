// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/danielhkuo/enquete/auth"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/db"
	"github.com/danielhkuo/enquete/models"
)

// TestPassword is the plaintext password for every fixture user.
const TestPassword = "password123"

var dbSeq atomic.Int64

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
// and seeded user types. Each call gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	// A shared-cache in-memory database disappears when its last connection
	// closes; pin one for the lifetime of the test.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// One connection total: concurrent writers serialize instead of
	// tripping sqlite's "database is locked".
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return gdb
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
		JWTExpiresIn: time.Hour,
		CORSOrigin:   "*",
		Env:          "development",
		RateLimit:    1000,
		RateWindow:   time.Minute,
	}
}

// CreateTestUser inserts an active user with the given role and returns it.
// Username doubles as the local part of the email.
func CreateTestUser(t *testing.T, gdb *gorm.DB, username, role string) *models.User {
	t.Helper()

	var tipo models.UserType
	if err := gdb.Where("nome = ?", role).First(&tipo).Error; err != nil {
		t.Fatalf("Failed to look up role %q: %v", role, err)
	}

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		TipoID:   tipo.ID,
		Tipo:     &tipo,
		Ativo:    true,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

// TokenFor mints a valid bearer token for the user.
func TokenFor(t *testing.T, cfg cliparse.Config, user *models.User) string {
	t.Helper()

	role := models.RoleClient
	if user.Tipo != nil {
		role = user.Tipo.Nome
	}
	token, err := auth.CreateToken([]byte(cfg.JWTSecret), user.ID, user.Username, role, cfg.JWTExpiresIn)
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}
	return token
}

// CreateTestPoll inserts a poll with the given options. dataFim in the past
// combined with ativa=true produces a stale poll for expiration tests.
func CreateTestPoll(t *testing.T, gdb *gorm.DB, authorID uint, ativa bool, dataFim time.Time, options ...string) *models.Poll {
	t.Helper()

	poll := models.Poll{
		Titulo:    "Test Poll",
		Descricao: "A test poll",
		DataFim:   dataFim,
		Ativa:     ativa,
		AutorID:   authorID,
	}
	for _, texto := range options {
		poll.Opcoes = append(poll.Opcoes, models.Option{Texto: texto})
	}
	if err := gdb.Create(&poll).Error; err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return &poll
}

// CreateTestComment inserts an active comment on the poll.
func CreateTestComment(t *testing.T, gdb *gorm.DB, userID, pollID uint, texto string) *models.Comment {
	t.Helper()

	comment := models.Comment{
		Texto:     texto,
		UserID:    userID,
		EnqueteID: pollID,
		Ativo:     true,
	}
	if err := gdb.Create(&comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return &comment
}

// CreateTestReport inserts a report with the given status.
func CreateTestReport(t *testing.T, gdb *gorm.DB, userID, pollID uint, status string) *models.Report {
	t.Helper()

	motivo := "Test report reason"
	report := models.Report{
		UserID:    userID,
		EnqueteID: pollID,
		Motivo:    &motivo,
		Status:    status,
	}
	if err := gdb.Create(&report).Error; err != nil {
		t.Fatalf("Failed to create test report: %v", err)
	}
	return &report
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AuthHeader builds the headers map for an authenticated request.
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
