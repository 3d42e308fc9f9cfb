// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rmaffei/checkfield/auth"
	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/db"
	"github.com/rmaffei/checkfield/forms"
	"github.com/rmaffei/checkfield/models"
)

// TestPassword is the plaintext password behind every fixture user
const TestPassword = "senha123"

// bcrypt of TestPassword, computed once; hashing per fixture user makes the
// suite noticeably slower.
var testPasswordHash string

func passwordHash(t *testing.T) string {
	t.Helper()
	if testPasswordHash == "" {
		hash, err := auth.HashPassword(TestPassword)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		testPasswordHash = hash
	}
	return testPasswordHash
}

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Each sqlite :memory: connection is its own database; keep the pool at
	// one connection so every statement sees the same schema.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:         3000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     time.Hour,
		UploadsDir:   t.TempDir(),
	}
}

// CreateTestUser inserts a user with the given role and returns it
func CreateTestUser(t *testing.T, conn *sql.DB, role string) models.User {
	t.Helper()

	id, _ := auth.GenerateID(16)
	user := models.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "Usuário " + role,
		Role:      role,
		Active:    true,
		CreatedAt: time.Now(),
	}

	_, err := conn.Exec(`
		INSERT INTO users (id, email, password_hash, name, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, passwordHash(t), user.Name, user.Role, user.Active, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// TokenFor issues a bearer token for a fixture user
func TokenFor(t *testing.T, cfg config.Config, user models.User) string {
	t.Helper()

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// CreateTestTemplate inserts a template with the given sections and returns its ID
func CreateTestTemplate(t *testing.T, conn *sql.DB, sections []forms.Section) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	encoded, err := json.Marshal(sections)
	if err != nil {
		t.Fatalf("Failed to encode sections: %v", err)
	}

	now := time.Now()
	_, err = conn.Exec(`
		INSERT INTO templates (id, name, type, active, sections, created_at, updated_at)
		VALUES ($1, 'Checklist de Visita', 'upgrade', TRUE, $2, $3, $4)
	`, id, string(encoded), now, now)
	if err != nil {
		t.Fatalf("Failed to create test template: %v", err)
	}

	return id
}

// CreateTestChecklist inserts a checklist in the given status. Approved
// checklists get the given rating; pass 0 for none.
func CreateTestChecklist(t *testing.T, conn *sql.DB, templateID, technicianID, storeCode, status string, rating int) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	now := time.Now()

	tx, err := conn.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	number, err := db.NextChecklistNumber(tx, now.Year())
	if err != nil {
		t.Fatalf("Failed to reserve checklist number: %v", err)
	}

	var ratingVal *int
	var approvedBy *string
	var approvedAt *time.Time
	if status != models.StatusPendente {
		approvedBy = &technicianID // any user id satisfies the reference
		approvedAt = &now
	}
	if status == models.StatusAprovado && rating > 0 {
		ratingVal = &rating
	}

	_, err = tx.Exec(`
		INSERT INTO checklists (id, checklist_number, template_id, technician_id, store_code,
			status, responses, rating, approved_by, approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, '{}', $7, $8, $9, $10, $11)
	`, id, number, templateID, technicianID, storeCode, status, ratingVal, approvedBy, approvedAt, now, now)
	if err != nil {
		t.Fatalf("Failed to create test checklist: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit test checklist: %v", err)
	}

	return id
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
