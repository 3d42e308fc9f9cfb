// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rmaffei/checkfield/models"
	"github.com/rmaffei/checkfield/testutil"
)

func TestCreateUser(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	testCases := []struct {
		name           string
		body           models.CreateUserRequest
		expectedStatus int
	}{
		{
			name: "valid technician",
			body: models.CreateUserRequest{
				Email:    "joao@example.com",
				Password: "senha123",
				Name:     "João Silva",
				Role:     models.RoleTecnico,
				Phone:    "11999990000",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "valid admin",
			body: models.CreateUserRequest{
				Email:    "admin@example.com",
				Password: "senha123",
				Name:     "Admin",
				Role:     models.RoleAdministrador,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid role",
			body: models.CreateUserRequest{
				Email:    "x@example.com",
				Password: "senha123",
				Name:     "X",
				Role:     "gerente",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			body: models.CreateUserRequest{
				Email:    "y@example.com",
				Password: "senha123",
				Role:     models.RoleTecnico,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/users", tc.body, nil)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	existing := testutil.CreateTestUser(t, conn, models.RoleTecnico)

	req := testutil.MakeRequest("POST", "/api/users", models.CreateUserRequest{
		Email:    existing.Email,
		Password: "senha123",
		Name:     "Duplicado",
		Role:     models.RoleTecnico,
	}, nil)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestCreateUserNeverExposesPassword(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	req := testutil.MakeRequest("POST", "/api/users", models.CreateUserRequest{
		Email:    "maria@example.com",
		Password: "senha123",
		Name:     "Maria",
		Role:     models.RoleAnalista,
	}, nil)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var raw map[string]interface{}
	testutil.AssertJSON(t, w, &raw)
	for _, key := range []string{"password", "passwordHash", "password_hash"} {
		if _, ok := raw[key]; ok {
			t.Errorf("Response exposes %q", key)
		}
	}
}

func TestGetUser(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	user := testutil.CreateTestUser(t, conn, models.RoleTecnico)

	req := testutil.MakeRequest("GET", "/api/users/"+user.ID, nil, nil)
	req.SetPathValue("id", user.ID)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.User
	testutil.AssertJSON(t, w, &got)
	if got.ID != user.ID {
		t.Errorf("ID = %q, want %q", got.ID, user.ID)
	}
}

func TestGetUserNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	req := testutil.MakeRequest("GET", "/api/users/nope", nil, nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListUsers(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	testutil.CreateTestUser(t, conn, models.RoleTecnico)
	testutil.CreateTestUser(t, conn, models.RoleAnalista)

	req := testutil.MakeRequest("GET", "/api/users", nil, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var users []models.User
	testutil.AssertJSON(t, w, &users)
	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}
}

func TestUpdateUser(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	user := testutil.CreateTestUser(t, conn, models.RoleTecnico)

	newName := "Nome Atualizado"
	newRole := models.RoleCoordenador
	inactive := false
	req := testutil.MakeRequest("PUT", "/api/users/"+user.ID, models.UpdateUserRequest{
		Name:   &newName,
		Role:   &newRole,
		Active: &inactive,
	}, nil)
	req.SetPathValue("id", user.ID)
	w := httptest.NewRecorder()

	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.User
	testutil.AssertJSON(t, w, &got)
	if got.Name != newName {
		t.Errorf("Name = %q, want %q", got.Name, newName)
	}
	if got.Role != newRole {
		t.Errorf("Role = %q, want %q", got.Role, newRole)
	}
	if got.Active {
		t.Error("Expected user to be inactive")
	}
	// Untouched fields survive a partial update.
	if got.Email != user.Email {
		t.Errorf("Email = %q, want %q", got.Email, user.Email)
	}
}

func TestUpdateUserInvalidRole(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	user := testutil.CreateTestUser(t, conn, models.RoleTecnico)

	badRole := "gerente"
	req := testutil.MakeRequest("PUT", "/api/users/"+user.ID, models.UpdateUserRequest{Role: &badRole}, nil)
	req.SetPathValue("id", user.ID)
	w := httptest.NewRecorder()

	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateUserNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	name := "X"
	req := testutil.MakeRequest("PUT", "/api/users/nope", models.UpdateUserRequest{Name: &name}, nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()

	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteUser(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewUserHandler(conn, cfg)

	user := testutil.CreateTestUser(t, conn, models.RoleTecnico)

	req := testutil.MakeRequest("DELETE", "/api/users/"+user.ID, nil, nil)
	req.SetPathValue("id", user.ID)
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	// A second delete finds nothing.
	req = testutil.MakeRequest("DELETE", "/api/users/"+user.ID, nil, nil)
	req.SetPathValue("id", user.ID)
	w = httptest.NewRecorder()

	handler.Delete(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
