// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Backends

Open selects the driver by type: "sqlite" (modernc.org/sqlite, pure Go,
":memory:" supported) or "postgres" (lib/pq). The DDL and $n placeholders
are written to work on both.

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - users: Accounts with role and active flag
  - templates: Form templates with JSON-serialized sections
  - checklists: Submissions with JSON-serialized responses and review state
  - counters: Per-year checklist numbering sequence

# Checklist Numbers

NextChecklistNumber reserves the next "YYYY-NNNNNN" number with a single
atomic upsert inside the caller's transaction, so number generation and the
checklist insert either both commit or neither does.
*/
package db
