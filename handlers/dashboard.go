// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"

	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/middleware"
	"github.com/rmaffei/checkfield/models"
	"github.com/rmaffei/checkfield/reports"
)

// recentLimit caps the dashboard's recent-checklist list
const recentLimit = 5

type DashboardHandler struct {
	db  *sql.DB
	cfg config.Config
}

func NewDashboardHandler(db *sql.DB, cfg config.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg}
}

// Metrics handles GET /api/dashboard/metrics
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)

	var where string
	var args []any
	if claims.Role == models.RoleTecnico {
		where, args = "technician_id = $1", []any{claims.UserID}
	}

	checklists, err := queryChecklists(h.db, where, args...)
	if err != nil {
		slog.Error("failed to query checklists", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	data := reports.Aggregate(checklists, reports.Filter{})

	names, err := h.technicianNames()
	if err != nil {
		slog.Error("failed to query technician names", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	rankings := make([]models.TechnicianRanking, 0, len(data.ByTechnician))
	for _, g := range data.ByTechnician {
		decided := g.Approved + g.Rejected
		ranking := models.TechnicianRanking{
			TechnicianID:   g.Key,
			TechnicianName: names[g.Key],
			Total:          g.Total,
			Approved:       g.Approved,
		}
		if decided > 0 {
			ranking.ApprovalRate = float64(g.Approved) / float64(decided) * 100.0
		}
		rankings = append(rankings, ranking)
	}

	// Best approval rate first, volume breaks ties.
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].ApprovalRate != rankings[j].ApprovalRate {
			return rankings[i].ApprovalRate > rankings[j].ApprovalRate
		}
		return rankings[i].Total > rankings[j].Total
	})

	recent := checklists
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardMetrics{
		Total:              data.TotalChecklists,
		Pending:            data.Pending,
		Approved:           data.Approved,
		ApprovalRate:       data.ApprovalRate,
		RecentChecklists:   recent,
		TechnicianRankings: rankings,
	})
}

func (h *DashboardHandler) technicianNames() (map[string]string, error) {
	rows, err := h.db.Query(`SELECT id, name FROM users WHERE role = $1`, models.RoleTecnico)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	return names, rows.Err()
}
