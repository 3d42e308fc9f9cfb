// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rmaffei/checkfield/forms"
	"github.com/rmaffei/checkfield/models"
)

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

const userColumns = `id, email, password_hash, name, role, phone, cpf, contractor, active, created_at`

func scanUser(s scanner) (models.User, error) {
	var u models.User
	err := s.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.Phone, &u.CPF, &u.Contractor, &u.Active, &u.CreatedAt,
	)
	return u, err
}

const templateColumns = `id, name, type, active, sections, created_at, updated_at`

func scanTemplate(s scanner) (models.Template, error) {
	var t models.Template
	var sections []byte
	err := s.Scan(&t.ID, &t.Name, &t.Type, &t.Active, &sections, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	if err := json.Unmarshal(sections, &t.Sections); err != nil {
		return t, fmt.Errorf("failed to decode template sections: %w", err)
	}
	return t, nil
}

const checklistColumns = `id, checklist_number, template_id, technician_id, store_code,
	store_manager, store_phone, status, responses, signature, rating,
	feedback, approval_comment, approved_by, approved_at, created_at, updated_at`

func scanChecklist(s scanner) (models.Checklist, error) {
	var c models.Checklist
	var responses []byte
	err := s.Scan(
		&c.ID, &c.ChecklistNumber, &c.TemplateID, &c.TechnicianID, &c.StoreCode,
		&c.StoreManager, &c.StorePhone, &c.Status, &responses, &c.Signature, &c.Rating,
		&c.Feedback, &c.ApprovalComment, &c.ApprovedBy, &c.ApprovedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	c.Responses = make(map[string]forms.Answer)
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &c.Responses); err != nil {
			return c, fmt.Errorf("failed to decode checklist responses: %w", err)
		}
	}
	return c, nil
}

func queryChecklists(db *sql.DB, where string, args ...any) ([]models.Checklist, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklists`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checklists := []models.Checklist{}
	for rows.Next() {
		c, err := scanChecklist(rows)
		if err != nil {
			return nil, err
		}
		checklists = append(checklists, c)
	}
	return checklists, rows.Err()
}

// isUniqueViolation matches the duplicate-key errors both backends report
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
