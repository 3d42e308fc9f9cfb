// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Authentication

WithAuth requires a valid bearer token and stores its claims in the
request context; WithRole additionally restricts by role:

	mux.HandleFunc("GET /api/users", middleware.WithAuth(secret, handler))
	mux.HandleFunc("POST /api/users", middleware.WithRole(secret, handler, models.RoleAdministrador))

Handlers read the authenticated identity with ClaimsFrom(r).

Missing or invalid tokens get 401; a valid token with the wrong role
gets 403. Both carry fixed Portuguese messages.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationResponse(w, fieldErrors)

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}
*/
package middleware
