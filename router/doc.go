// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Checkfield API.

# Route Registration

NewRouter returns the fully wired handler (mux plus CORS):

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Authentication:

	POST /api/auth/login - Login with email and password
	GET  /api/auth/me    - Current authenticated user

Users (mutation admin-only):

	GET    /api/users
	GET    /api/users/{id}
	POST   /api/users
	PUT    /api/users/{id}
	DELETE /api/users/{id}

Templates (mutation admin-only):

	GET    /api/templates
	GET    /api/templates/{id}
	POST   /api/templates
	PUT    /api/templates/{id}
	DELETE /api/templates/{id}

Checklists (technicians see only their own):

	GET  /api/checklists
	GET  /api/checklists/{id}
	POST /api/checklists              - Multipart submission
	PUT  /api/checklists/{id}         - Owner, pending only
	POST /api/checklists/{id}/approve - Reviewer roles

Dashboard and reports:

	GET /api/dashboard/metrics
	GET /api/reports - Reviewer roles; filterable aggregation

Uploads are served as static assets from GET /uploads/{filename}.
*/
package router
