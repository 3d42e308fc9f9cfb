// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Checkfield API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: login and current-user lookup
  - UserHandler: user management (mutation admin-only)
  - TemplateHandler: form template management (mutation admin-only)
  - ChecklistHandler: submission, editing, and review of checklists
  - DashboardHandler: summary metrics and technician rankings
  - ReportHandler: filtered report aggregation

Handlers are created via constructor functions that accept *sql.DB and Config:

	checklistHandler := handlers.NewChecklistHandler(db, cfg)

# Checklist Lifecycle

Checklists progress through three states: pendente → aprovado | rejeitado

	POST /api/checklists              → Create (multipart, validates against template)
	PUT  /api/checklists/{id}         → Update (owner, pending only)
	POST /api/checklists/{id}/approve → Approve (reviewer roles only)

Both review outcomes are terminal; a reviewed checklist never returns to
pendente. Submissions are validated with the forms package before anything
is persisted, and the checklist number is reserved in the same transaction
as the insert.
*/
package handlers
