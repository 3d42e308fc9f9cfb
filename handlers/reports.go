// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/middleware"
	"github.com/rmaffei/checkfield/reports"
)

type ReportHandler struct {
	db  *sql.DB
	cfg config.Config
}

func NewReportHandler(db *sql.DB, cfg config.Config) *ReportHandler {
	return &ReportHandler{db: db, cfg: cfg}
}

// Get handles GET /api/reports
// Query params: from, to (YYYY-MM-DD, inclusive), templateId, status,
// technicianId, storeCode. The aggregation is recomputed on every view;
// the client renders it into the PDF export.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := reports.Filter{
		TemplateID:   q.Get("templateId"),
		Status:       q.Get("status"),
		TechnicianID: q.Get("technicianId"),
		StoreCode:    q.Get("storeCode"),
	}

	if from := q.Get("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Parâmetro from inválido (use AAAA-MM-DD)")
			return
		}
		filter.From = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Parâmetro to inválido (use AAAA-MM-DD)")
			return
		}
		// Inclusive upper bound: the whole named day counts.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &end
	}

	checklists, err := queryChecklists(h.db, "")
	if err != nil {
		slog.Error("failed to query checklists", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reports.Aggregate(checklists, filter))
}
