// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/rs/cors"

	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/handlers"
	"github.com/rmaffei/checkfield/middleware"
	"github.com/rmaffei/checkfield/models"
)

func NewRouter(db *sql.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)
	templateHandler := handlers.NewTemplateHandler(db, cfg)
	checklistHandler := handlers.NewChecklistHandler(db, cfg)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)
	reportHandler := handlers.NewReportHandler(db, cfg)

	secret := cfg.JWTSecret
	admin := models.RoleAdministrador
	reviewers := []string{models.RoleAnalista, models.RoleCoordenador, models.RoleAdministrador}

	logged := middleware.WithLogging
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return logged(middleware.WithAuth(secret, next))
	}
	adminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return logged(middleware.WithRole(secret, next, admin))
	}
	reviewersOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return logged(middleware.WithRole(secret, next, reviewers...))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /api/auth/login", logged(authHandler.Login))
	mux.HandleFunc("GET /api/auth/me", authed(authHandler.Me))

	// User management (mutation is admin-only)
	mux.HandleFunc("GET /api/users", authed(userHandler.List))
	mux.HandleFunc("GET /api/users/{id}", authed(userHandler.Get))
	mux.HandleFunc("POST /api/users", adminOnly(userHandler.Create))
	mux.HandleFunc("PUT /api/users/{id}", adminOnly(userHandler.Update))
	mux.HandleFunc("DELETE /api/users/{id}", adminOnly(userHandler.Delete))

	// Template management (mutation is admin-only)
	mux.HandleFunc("GET /api/templates", authed(templateHandler.List))
	mux.HandleFunc("GET /api/templates/{id}", authed(templateHandler.Get))
	mux.HandleFunc("POST /api/templates", adminOnly(templateHandler.Create))
	mux.HandleFunc("PUT /api/templates/{id}", adminOnly(templateHandler.Update))
	mux.HandleFunc("DELETE /api/templates/{id}", adminOnly(templateHandler.Delete))

	// Checklist submission and review
	mux.HandleFunc("GET /api/checklists", authed(checklistHandler.List))
	mux.HandleFunc("GET /api/checklists/{id}", authed(checklistHandler.Get))
	mux.HandleFunc("POST /api/checklists", authed(checklistHandler.Create))
	mux.HandleFunc("PUT /api/checklists/{id}", authed(checklistHandler.Update))
	mux.HandleFunc("POST /api/checklists/{id}/approve", authed(checklistHandler.Approve))

	// Dashboard and reporting
	mux.HandleFunc("GET /api/dashboard/metrics", authed(dashboardHandler.Metrics))
	mux.HandleFunc("GET /api/reports", reviewersOnly(reportHandler.Get))

	// Uploaded files served as static assets
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("checkfield API v1"))
	})

	return cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(mux)
}
