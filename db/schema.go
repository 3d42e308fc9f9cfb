// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured backend. dbType selects the driver:
// "sqlite" (default, ":memory:" supported) or "postgres".
func Open(dbType, url string) (*sql.DB, error) {
	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// NextChecklistNumber reserves the next per-year sequence number inside the
// caller's transaction and returns the canonical "YYYY-NNNNNN" number. The
// upsert is a single atomic statement, so concurrent submissions cannot
// observe the same sequence value.
func NextChecklistNumber(tx *sql.Tx, year int) (string, error) {
	var seq int
	err := tx.QueryRow(`
		INSERT INTO counters (year, seq) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`, year).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("failed to reserve checklist number: %w", err)
	}

	return fmt.Sprintf("%d-%06d", year, seq), nil
}

// Timestamps and JSON documents are written from Go, so the DDL sticks to
// types both sqlite and postgres accept.
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('tecnico', 'analista', 'coordenador', 'administrador')),
    phone TEXT,
    cpf TEXT,
    contractor TEXT,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

-- Templates (sections serialized as JSON)
CREATE TABLE IF NOT EXISTS templates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    sections TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Checklists (responses serialized as JSON)
CREATE TABLE IF NOT EXISTS checklists (
    id TEXT PRIMARY KEY,
    checklist_number TEXT NOT NULL UNIQUE,
    template_id TEXT NOT NULL REFERENCES templates(id),
    technician_id TEXT NOT NULL REFERENCES users(id),
    store_code TEXT NOT NULL,
    store_manager TEXT,
    store_phone TEXT,
    status TEXT NOT NULL DEFAULT 'pendente' CHECK (status IN ('pendente', 'aprovado', 'rejeitado')),
    responses TEXT NOT NULL,
    signature TEXT,
    rating INTEGER CHECK (rating BETWEEN 1 AND 5),
    feedback TEXT,
    approval_comment TEXT,
    approved_by TEXT REFERENCES users(id),
    approved_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checklists_status ON checklists(status);
CREATE INDEX IF NOT EXISTS idx_checklists_technician ON checklists(technician_id);
CREATE INDEX IF NOT EXISTS idx_checklists_store ON checklists(store_code);
CREATE INDEX IF NOT EXISTS idx_checklists_created_at ON checklists(created_at);

-- Per-year checklist numbering
CREATE TABLE IF NOT EXISTS counters (
    year INTEGER PRIMARY KEY,
    seq INTEGER NOT NULL
);
`
