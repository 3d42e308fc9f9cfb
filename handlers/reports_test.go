// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rmaffei/checkfield/models"
	"github.com/rmaffei/checkfield/reports"
	"github.com/rmaffei/checkfield/testutil"
)

func TestReportGet(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewReportHandler(conn, cfg)

	tec := testutil.CreateTestUser(t, conn, models.RoleTecnico)
	templateID := testutil.CreateTestTemplate(t, conn, testSections())

	testutil.CreateTestChecklist(t, conn, templateID, tec.ID, "SP-001", models.StatusAprovado, 4)
	testutil.CreateTestChecklist(t, conn, templateID, tec.ID, "SP-001", models.StatusRejeitado, 0)
	testutil.CreateTestChecklist(t, conn, templateID, tec.ID, "RJ-010", models.StatusPendente, 0)

	req := testutil.MakeRequest("GET", "/api/reports", nil, nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var data reports.ReportData
	testutil.AssertJSON(t, w, &data)

	if data.TotalChecklists != 3 {
		t.Errorf("TotalChecklists = %d, want 3", data.TotalChecklists)
	}
	if data.Approved != 1 || data.Rejected != 1 || data.Pending != 1 {
		t.Errorf("Counts = %d/%d/%d, want 1/1/1", data.Approved, data.Rejected, data.Pending)
	}
	if len(data.ByStore) != 2 {
		t.Errorf("ByStore groups = %d, want 2", len(data.ByStore))
	}
	if len(data.Daily) != 7 {
		t.Errorf("Daily series length = %d, want 7", len(data.Daily))
	}
}

func TestReportGetFilters(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewReportHandler(conn, cfg)

	tec := testutil.CreateTestUser(t, conn, models.RoleTecnico)
	templateID := testutil.CreateTestTemplate(t, conn, testSections())

	testutil.CreateTestChecklist(t, conn, templateID, tec.ID, "SP-001", models.StatusAprovado, 4)
	testutil.CreateTestChecklist(t, conn, templateID, tec.ID, "RJ-010", models.StatusPendente, 0)

	testCases := []struct {
		name     string
		path     string
		expected int
	}{
		{"by store", "/api/reports?storeCode=SP-001", 1},
		{"by status", "/api/reports?status=pendente", 1},
		{"by technician", "/api/reports?technicianId=" + tec.ID, 2},
		{"by template", "/api/reports?templateId=" + templateID, 2},
		{"unknown store", "/api/reports?storeCode=MG-999", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", tc.path, nil, nil)
			w := httptest.NewRecorder()

			handler.Get(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var data reports.ReportData
			testutil.AssertJSON(t, w, &data)
			if data.TotalChecklists != tc.expected {
				t.Errorf("TotalChecklists = %d, want %d", data.TotalChecklists, tc.expected)
			}
		})
	}
}

func TestReportGetDateRange(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewReportHandler(conn, cfg)

	tec := testutil.CreateTestUser(t, conn, models.RoleTecnico)
	templateID := testutil.CreateTestTemplate(t, conn, testSections())

	testutil.CreateTestChecklist(t, conn, templateID, tec.ID, "SP-001", models.StatusAprovado, 4)

	today := time.Now().Format("2006-01-02")

	// The "to" day is inclusive: a checklist created today falls inside a
	// range ending today.
	req := testutil.MakeRequest("GET", "/api/reports?from="+today+"&to="+today, nil, nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var data reports.ReportData
	testutil.AssertJSON(t, w, &data)
	if data.TotalChecklists != 1 {
		t.Errorf("TotalChecklists = %d, want 1", data.TotalChecklists)
	}
	if len(data.Daily) != 1 {
		t.Errorf("Daily series length = %d, want 1", len(data.Daily))
	}
}

func TestReportGetBadDates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewReportHandler(conn, cfg)

	for _, path := range []string{
		"/api/reports?from=2025-13-01",
		"/api/reports?to=ontem",
	} {
		req := testutil.MakeRequest("GET", path, nil, nil)
		w := httptest.NewRecorder()

		handler.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}
