// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Checkfield API server.

Checkfield is a field-operations checklist service for telecom store
visits: technicians submit template-driven forms (photos, signatures,
evidence fields), reviewers approve or reject and rate submissions, and
reports aggregate approval rates and technician performance.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=checkfield.db JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3000 -d checkfield.db -jwt-secret ...

A .env file in the working directory is loaded when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path (":memory:" supported) or postgres URL
  - JWT_SECRET (-jwt-secret): secret for bearer-token signing

Optional settings:

  - PORT (-p): server port (default: 3000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - UPLOADS_DIR (-uploads): directory for uploaded files (default: uploads)
  - TOKEN_TTL_HOURS (-token-ttl): bearer-token lifetime (default: 24)
*/
package main
