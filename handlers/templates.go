// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rmaffei/checkfield/auth"
	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/forms"
	"github.com/rmaffei/checkfield/middleware"
	"github.com/rmaffei/checkfield/models"
)

type TemplateHandler struct {
	db  *sql.DB
	cfg config.Config
}

func NewTemplateHandler(db *sql.DB, cfg config.Config) *TemplateHandler {
	return &TemplateHandler{db: db, cfg: cfg}
}

// List handles GET /api/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT ` + templateColumns + ` FROM templates ORDER BY name`)
	if err != nil {
		slog.Error("failed to query templates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			slog.Error("failed to scan template", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
			return
		}
		templates = append(templates, template)
	}

	middleware.JSONResponse(w, http.StatusOK, templates)
}

// Get handles GET /api/templates/{id}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	template, err := scanTemplate(h.db.QueryRow(`
		SELECT `+templateColumns+` FROM templates WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Modelo não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query template", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, template)
}

// Create handles POST /api/templates (admin only)
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SaveTemplateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Name == "" || req.Type == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Nome e tipo são obrigatórios")
		return
	}
	if problems := forms.CheckSchema(req.Sections); len(problems) > 0 {
		middleware.ValidationResponse(w, problems)
		return
	}

	templateID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate template ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar modelo")
		return
	}

	sections, err := json.Marshal(req.Sections)
	if err != nil {
		slog.Error("failed to encode sections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar modelo")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO templates (id, name, type, active, sections, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, templateID, req.Name, req.Type, active, string(sections), now, now)

	if err != nil {
		slog.Error("failed to insert template", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar modelo")
		return
	}

	slog.Info("template created", "template_id", templateID, "type", req.Type)

	middleware.JSONResponse(w, http.StatusCreated, models.Template{
		ID:        templateID,
		Name:      req.Name,
		Type:      req.Type,
		Active:    active,
		Sections:  req.Sections,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update handles PUT /api/templates/{id} (admin only)
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.SaveTemplateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Name == "" || req.Type == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Nome e tipo são obrigatórios")
		return
	}
	if problems := forms.CheckSchema(req.Sections); len(problems) > 0 {
		middleware.ValidationResponse(w, problems)
		return
	}

	template, err := scanTemplate(h.db.QueryRow(`
		SELECT `+templateColumns+` FROM templates WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Modelo não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query template", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	sections, err := json.Marshal(req.Sections)
	if err != nil {
		slog.Error("failed to encode sections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao atualizar modelo")
		return
	}

	active := template.Active
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	_, err = h.db.Exec(`
		UPDATE templates
		SET name = $1, type = $2, active = $3, sections = $4, updated_at = $5
		WHERE id = $6
	`, req.Name, req.Type, active, string(sections), now, id)

	if err != nil {
		slog.Error("failed to update template", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao atualizar modelo")
		return
	}

	slog.Info("template updated", "template_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.Template{
		ID:        id,
		Name:      req.Name,
		Type:      req.Type,
		Active:    active,
		Sections:  req.Sections,
		CreatedAt: template.CreatedAt,
		UpdatedAt: now,
	})
}

// Delete handles DELETE /api/templates/{id} (admin only)
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := h.db.Exec(`DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		// Checklists reference templates; a constraint failure means the
		// template is in use.
		middleware.ErrorResponse(w, http.StatusBadRequest, "Erro de validação")
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Modelo não encontrado")
		return
	}

	slog.Info("template deleted", "template_id", id)

	w.WriteHeader(http.StatusNoContent)
}
