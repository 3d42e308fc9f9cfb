// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - User: account with role (tecnico, analista, coordenador, administrador)
    and active flag; the password hash is never serialized
  - Template: named form template with its forms.Section schema
  - Checklist: one technician's submission of a template, with its
    response map, review state, and canonical checklist number

# Constants

Checklist statuses (pendente is initial; the other two are terminal):

	StatusPendente, StatusAprovado, StatusRejeitado

Roles and review actions:

	RoleTecnico, RoleAnalista, RoleCoordenador, RoleAdministrador
	ActionAprovar, ActionRejeitar

# Request and Response Types

Incoming JSON bodies (LoginRequest, CreateUserRequest,
SaveTemplateRequest, CreateChecklistRequest, ApproveChecklistRequest, …)
and response envelopes (LoginResponse, DashboardMetrics, ErrorResponse,
ValidationErrorResponse).
*/
package models
