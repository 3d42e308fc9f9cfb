// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/rmaffei/checkfield/auth"
	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/middleware"
	"github.com/rmaffei/checkfield/models"
)

var validRoles = map[string]bool{
	models.RoleTecnico:       true,
	models.RoleAnalista:      true,
	models.RoleCoordenador:   true,
	models.RoleAdministrador: true,
}

type UserHandler struct {
	db  *sql.DB
	cfg config.Config
}

func NewUserHandler(db *sql.DB, cfg config.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY name`)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
			return
		}
		users = append(users, user)
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := scanUser(h.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// Create handles POST /api/users (admin only)
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email, senha e nome são obrigatórios")
		return
	}
	if !validRoles[req.Role] {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Perfil de usuário inválido")
		return
	}

	userID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate user ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar usuário")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar usuário")
		return
	}

	user := models.User{
		ID:        userID,
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.CPF != "" {
		user.CPF = &req.CPF
	}
	if req.Contractor != "" {
		user.Contractor = &req.Contractor
	}

	_, err = h.db.Exec(`
		INSERT INTO users (id, email, password_hash, name, role, phone, cpf, contractor, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, user.ID, user.Email, passwordHash, user.Name, user.Role, user.Phone, user.CPF, user.Contractor, user.Active, user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Erro de validação")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar usuário")
		return
	}

	slog.Info("user created", "user_id", user.ID, "role", user.Role)

	middleware.JSONResponse(w, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id} (admin only)
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	user, err := scanUser(h.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !validRoles[*req.Role] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Perfil de usuário inválido")
			return
		}
		user.Role = *req.Role
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.CPF != nil {
		user.CPF = req.CPF
	}
	if req.Contractor != nil {
		user.Contractor = req.Contractor
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	passwordHash := user.PasswordHash
	if req.Password != nil && *req.Password != "" {
		passwordHash, err = auth.HashPassword(*req.Password)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao atualizar usuário")
			return
		}
	}

	_, err = h.db.Exec(`
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, role = $4,
		    phone = $5, cpf = $6, contractor = $7, active = $8
		WHERE id = $9
	`, user.Email, passwordHash, user.Name, user.Role, user.Phone, user.CPF, user.Contractor, user.Active, id)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Erro de validação")
			return
		}
		slog.Error("failed to update user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao atualizar usuário")
		return
	}

	slog.Info("user updated", "user_id", id)

	middleware.JSONResponse(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id} (admin only)
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := h.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao remover usuário")
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}

	slog.Info("user deleted", "user_id", id)

	w.WriteHeader(http.StatusNoContent)
}
