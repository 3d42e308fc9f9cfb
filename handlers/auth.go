// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/rmaffei/checkfield/auth"
	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/middleware"
	"github.com/rmaffei/checkfield/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg config.Config
}

func NewAuthHandler(db *sql.DB, cfg config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	user, err := scanUser(h.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, req.Email))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	if !user.Active {
		middleware.ErrorResponse(w, http.StatusForbidden, "Usuário inativo")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao gerar token")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		User:  user,
		Token: token,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)

	user, err := scanUser(h.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, claims.UserID))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]models.User{"user": user})
}
