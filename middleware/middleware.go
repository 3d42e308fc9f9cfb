// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rmaffei/checkfield/auth"
	"github.com/rmaffei/checkfield/models"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Log request
		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		// Call the next handler
		next(w, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// WithAuth requires a valid bearer token and stores its claims in the
// request context
func WithAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Token de autenticação ausente")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			ErrorResponse(w, http.StatusUnauthorized, "Token de autenticação ausente")
			return
		}

		claims, err := auth.VerifyToken(tokenString, secret)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// WithRole requires a valid bearer token whose role is one of the given
// roles
func WithRole(secret string, next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return WithAuth(secret, func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFrom(r)
		for _, role := range roles {
			if claims != nil && claims.Role == role {
				next(w, r)
				return
			}
		}
		ErrorResponse(w, http.StatusForbidden, "Acesso negado")
	})
}

// ClaimsFrom returns the authenticated claims stored by WithAuth, or nil
func ClaimsFrom(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsContextKey).(*auth.Claims)
	return claims
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ValidationResponse writes a 400 carrying the accumulated field errors
func ValidationResponse(w http.ResponseWriter, fieldErrors []string) {
	JSONResponse(w, http.StatusBadRequest, models.ValidationErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: "Erro de validação",
		Fields:  fieldErrors,
	})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}
