// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/rmaffei/checkfield/auth"
	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/db"
	"github.com/rmaffei/checkfield/forms"
	"github.com/rmaffei/checkfield/middleware"
	"github.com/rmaffei/checkfield/models"
	"github.com/rmaffei/checkfield/workflow"
)

// maxUploadBytes caps the multipart form buffer (files are fully buffered,
// no streaming).
const maxUploadBytes = 32 << 20

type ChecklistHandler struct {
	db  *sql.DB
	cfg config.Config
}

func NewChecklistHandler(db *sql.DB, cfg config.Config) *ChecklistHandler {
	return &ChecklistHandler{db: db, cfg: cfg}
}

// List handles GET /api/checklists
// Technicians see only their own submissions; reviewers and admins see all.
func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)
	status := r.URL.Query().Get("status")

	var where string
	var args []any
	switch {
	case claims.Role == models.RoleTecnico && status != "":
		where, args = "technician_id = $1 AND status = $2", []any{claims.UserID, status}
	case claims.Role == models.RoleTecnico:
		where, args = "technician_id = $1", []any{claims.UserID}
	case status != "":
		where, args = "status = $1", []any{status}
	}

	checklists, err := queryChecklists(h.db, where, args...)
	if err != nil {
		slog.Error("failed to query checklists", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, checklists)
}

// Get handles GET /api/checklists/{id}
func (h *ChecklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)
	id := r.PathValue("id")

	checklist, err := scanChecklist(h.db.QueryRow(`
		SELECT `+checklistColumns+` FROM checklists WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Checklist não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query checklist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	if claims.Role == models.RoleTecnico && checklist.TechnicianID != claims.UserID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Acesso negado")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, checklist)
}

// Create handles POST /api/checklists
// Multipart form: a "data" JSON part plus file parts keyed by field id.
// The submission is validated against the template before anything is
// persisted; any rejected file aborts the whole submission.
func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)
	if claims.Role != models.RoleTecnico {
		middleware.ErrorResponse(w, http.StatusForbidden, "Apenas técnicos podem criar checklists")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Formulário multipart inválido")
		return
	}

	var req models.CreateChecklistRequest
	if err := json.Unmarshal([]byte(r.FormValue("data")), &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido no campo data")
		return
	}

	if req.TemplateID == "" || req.StoreCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "templateId e storeCode são obrigatórios")
		return
	}

	template, err := scanTemplate(h.db.QueryRow(`
		SELECT `+templateColumns+` FROM templates WHERE id = $1
	`, req.TemplateID))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Modelo não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query template", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	if !template.Active {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Modelo inativo")
		return
	}

	responses := req.Responses
	if responses == nil {
		responses = make(map[string]forms.Answer)
	}

	if err := h.storeFiles(r, template, responses); err != nil {
		slog.Error("failed to store uploaded file", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Falha ao processar arquivo enviado")
		return
	}

	if errs := forms.Validate(template.Sections, responses); len(errs) > 0 {
		middleware.ValidationResponse(w, errs)
		return
	}

	checklistID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate checklist ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar checklist")
		return
	}

	encoded, err := json.Marshal(responses)
	if err != nil {
		slog.Error("failed to encode responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar checklist")
		return
	}

	now := time.Now()
	checklist := models.Checklist{
		ID:           checklistID,
		TemplateID:   req.TemplateID,
		TechnicianID: claims.UserID,
		StoreCode:    req.StoreCode,
		Status:       models.StatusPendente,
		Responses:    responses,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.StoreManager != "" {
		checklist.StoreManager = &req.StoreManager
	}
	if req.StorePhone != "" {
		checklist.StorePhone = &req.StorePhone
	}
	if req.Signature != "" {
		checklist.Signature = &req.Signature
	}

	// Number generation and insert share one transaction so the sequence
	// cannot race under concurrent submissions.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer tx.Rollback()

	number, err := db.NextChecklistNumber(tx, now.Year())
	if err != nil {
		slog.Error("failed to reserve checklist number", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar checklist")
		return
	}
	checklist.ChecklistNumber = number

	_, err = tx.Exec(`
		INSERT INTO checklists (id, checklist_number, template_id, technician_id, store_code,
			store_manager, store_phone, status, responses, signature, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, checklist.ID, checklist.ChecklistNumber, checklist.TemplateID, checklist.TechnicianID,
		checklist.StoreCode, checklist.StoreManager, checklist.StorePhone, checklist.Status,
		string(encoded), checklist.Signature, checklist.CreatedAt, checklist.UpdatedAt)

	if err != nil {
		slog.Error("failed to insert checklist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar checklist")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao criar checklist")
		return
	}

	slog.Info("checklist created",
		"checklist_id", checklist.ID,
		"checklist_number", checklist.ChecklistNumber,
		"technician_id", claims.UserID,
	)

	middleware.JSONResponse(w, http.StatusCreated, checklist)
}

// Update handles PUT /api/checklists/{id}
// Only the owning technician may edit, and only while pending.
func (h *ChecklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)
	id := r.PathValue("id")

	var req models.UpdateChecklistRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	checklist, err := scanChecklist(h.db.QueryRow(`
		SELECT `+checklistColumns+` FROM checklists WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Checklist não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query checklist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	if checklist.TechnicianID != claims.UserID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Acesso negado")
		return
	}
	if checklist.Status != models.StatusPendente {
		middleware.ErrorResponse(w, http.StatusConflict, "Checklist já foi revisado")
		return
	}

	if req.StoreManager != nil {
		checklist.StoreManager = req.StoreManager
	}
	if req.StorePhone != nil {
		checklist.StorePhone = req.StorePhone
	}
	if req.Signature != nil {
		checklist.Signature = req.Signature
	}
	if req.Responses != nil {
		checklist.Responses = req.Responses
	}

	template, err := scanTemplate(h.db.QueryRow(`
		SELECT `+templateColumns+` FROM templates WHERE id = $1
	`, checklist.TemplateID))
	if err != nil {
		slog.Error("failed to query template", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	if errs := forms.Validate(template.Sections, checklist.Responses); len(errs) > 0 {
		middleware.ValidationResponse(w, errs)
		return
	}

	encoded, err := json.Marshal(checklist.Responses)
	if err != nil {
		slog.Error("failed to encode responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao atualizar checklist")
		return
	}

	checklist.UpdatedAt = time.Now()
	_, err = h.db.Exec(`
		UPDATE checklists
		SET store_manager = $1, store_phone = $2, responses = $3, signature = $4, updated_at = $5
		WHERE id = $6
	`, checklist.StoreManager, checklist.StorePhone, string(encoded), checklist.Signature, checklist.UpdatedAt, id)

	if err != nil {
		slog.Error("failed to update checklist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao atualizar checklist")
		return
	}

	slog.Info("checklist updated", "checklist_id", id)

	middleware.JSONResponse(w, http.StatusOK, checklist)
}

// Approve handles POST /api/checklists/{id}/approve
func (h *ChecklistHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)
	id := r.PathValue("id")

	var req models.ApproveChecklistRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	reviewer, err := scanUser(h.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, claims.UserID))
	if err != nil {
		slog.Error("failed to query reviewer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	checklist, err := scanChecklist(h.db.QueryRow(`
		SELECT `+checklistColumns+` FROM checklists WHERE id = $1
	`, id))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Checklist não encontrado")
		return
	}
	if err != nil {
		slog.Error("failed to query checklist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	decision, err := workflow.Review(reviewer, checklist.Status, req)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrNotReviewer):
			middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
		case errors.Is(err, workflow.ErrNotPending):
			middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		default:
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	now := time.Now()
	_, err = h.db.Exec(`
		UPDATE checklists
		SET status = $1, rating = $2, feedback = $3, approval_comment = $4,
		    approved_by = $5, approved_at = $6, updated_at = $7
		WHERE id = $8
	`, decision.Status, decision.Rating, decision.Feedback, decision.Comment,
		reviewer.ID, now, now, id)

	if err != nil {
		slog.Error("failed to update checklist status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Falha ao revisar checklist")
		return
	}

	checklist.Status = decision.Status
	checklist.Rating = decision.Rating
	checklist.Feedback = decision.Feedback
	checklist.ApprovalComment = &decision.Comment
	checklist.ApprovedBy = &reviewer.ID
	checklist.ApprovedAt = &now
	checklist.UpdatedAt = now

	slog.Info("checklist reviewed",
		"checklist_id", id,
		"status", decision.Status,
		"reviewer_id", reviewer.ID,
	)

	middleware.JSONResponse(w, http.StatusOK, checklist)
}

// storeFiles saves every uploaded part and merges the stored names into the
// response map: photo fields become file answers, evidence fields get their
// photo reference filled in.
func (h *ChecklistHandler) storeFiles(r *http.Request, template models.Template, responses map[string]forms.Answer) error {
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		return nil
	}

	fieldTypes := make(map[string]string)
	for _, section := range template.Sections {
		for _, field := range section.Fields {
			fieldTypes[field.ID] = field.Type
		}
	}

	if err := os.MkdirAll(h.cfg.UploadsDir, 0o755); err != nil {
		return err
	}

	for fieldID, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		header := headers[0]

		src, err := header.Open()
		if err != nil {
			return err
		}

		stored := uuid.NewString() + filepath.Ext(header.Filename)
		dst, err := os.Create(filepath.Join(h.cfg.UploadsDir, stored))
		if err != nil {
			src.Close()
			return err
		}

		_, err = io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err != nil {
			return err
		}

		switch fieldTypes[fieldID] {
		case forms.FieldEvidence:
			answer := responses[fieldID]
			if answer.Evidence == nil {
				answer = forms.EvidenceAnswer("", "", "")
			}
			answer.Evidence.Photo = stored
			responses[fieldID] = answer
		default:
			responses[fieldID] = forms.FileAnswer(stored)
		}
	}

	return nil
}
