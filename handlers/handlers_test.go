// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rmaffei/checkfield/config"
	"github.com/rmaffei/checkfield/forms"
	"github.com/rmaffei/checkfield/middleware"
	"github.com/rmaffei/checkfield/models"
	"github.com/rmaffei/checkfield/testutil"
)

// callAs runs a handler behind the auth middleware with a real bearer token,
// the same wiring the router uses.
func callAs(t *testing.T, cfg config.Config, user models.User, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+testutil.TokenFor(t, cfg, user))
	w := httptest.NewRecorder()
	middleware.WithAuth(cfg.JWTSecret, handler)(w, req)
	return w
}

// testSections is the template schema used across handler tests: a text
// field, a photo and an evidence check, all required.
func testSections() []forms.Section {
	return []forms.Section{
		{
			ID:    "loja",
			Title: "Loja",
			Fields: []forms.Field{
				{ID: "storeManagerName", Label: "Nome do gerente", Type: forms.FieldText, Required: true},
				{ID: "fachada", Label: "Foto da fachada", Type: forms.FieldPhoto, Required: true},
				{ID: "energia", Label: "Energia estabilizada", Type: forms.FieldEvidence, Required: true},
			},
		},
	}
}
