package models

import (
	"time"

	"github.com/rmaffei/checkfield/forms"
)

// Checklist status constants
const (
	StatusPendente  = "pendente"
	StatusAprovado  = "aprovado"
	StatusRejeitado = "rejeitado"
)

// User role constants
const (
	RoleTecnico       = "tecnico"
	RoleAnalista      = "analista"
	RoleCoordenador   = "coordenador"
	RoleAdministrador = "administrador"
)

// Approval action constants
const (
	ActionAprovar  = "aprovar"
	ActionRejeitar = "rejeitar"
)

// Request types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Phone      string `json:"phone,omitempty"`
	CPF        string `json:"cpf,omitempty"`
	Contractor string `json:"contractor,omitempty"`
}

type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
	Name       *string `json:"name,omitempty"`
	Role       *string `json:"role,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	CPF        *string `json:"cpf,omitempty"`
	Contractor *string `json:"contractor,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

type SaveTemplateRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Active   *bool           `json:"active,omitempty"`
	Sections []forms.Section `json:"sections"`
}

// CreateChecklistRequest is the "data" part of the multipart submission.
// File parts are keyed by field id and merged into Responses by the handler.
type CreateChecklistRequest struct {
	TemplateID   string                  `json:"templateId"`
	StoreCode    string                  `json:"storeCode"`
	StoreManager string                  `json:"storeManager,omitempty"`
	StorePhone   string                  `json:"storePhone,omitempty"`
	Responses    map[string]forms.Answer `json:"responses"`
	Signature    string                  `json:"signature,omitempty"`
}

type UpdateChecklistRequest struct {
	StoreManager *string                 `json:"storeManager,omitempty"`
	StorePhone   *string                 `json:"storePhone,omitempty"`
	Responses    map[string]forms.Answer `json:"responses,omitempty"`
	Signature    *string                 `json:"signature,omitempty"`
}

type ApproveChecklistRequest struct {
	Action          string `json:"action"`
	ApprovalComment string `json:"approvalComment"`
	Rating          *int   `json:"rating,omitempty"`
	Feedback        string `json:"feedback,omitempty"`
}

// Response types

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type ValidationErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}

type DashboardMetrics struct {
	Total              int                 `json:"total"`
	Pending            int                 `json:"pending"`
	Approved           int                 `json:"approved"`
	ApprovalRate       float64             `json:"approvalRate"`
	RecentChecklists   []Checklist         `json:"recentChecklists"`
	TechnicianRankings []TechnicianRanking `json:"technicianRankings"`
}

type TechnicianRanking struct {
	TechnicianID   string  `json:"technicianId"`
	TechnicianName string  `json:"technicianName"`
	Total          int     `json:"total"`
	Approved       int     `json:"approved"`
	ApprovalRate   float64 `json:"approvalRate"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Phone        *string   `json:"phone,omitempty"`
	CPF          *string   `json:"cpf,omitempty"`
	Contractor   *string   `json:"contractor,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Template struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Active    bool            `json:"active"`
	Sections  []forms.Section `json:"sections"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Checklist struct {
	ID              string                  `json:"id"`
	ChecklistNumber string                  `json:"checklistNumber"`
	TemplateID      string                  `json:"templateId"`
	TechnicianID    string                  `json:"technicianId"`
	StoreCode       string                  `json:"storeCode"`
	StoreManager    *string                 `json:"storeManager,omitempty"`
	StorePhone      *string                 `json:"storePhone,omitempty"`
	Status          string                  `json:"status"`
	Responses       map[string]forms.Answer `json:"responses"`
	Signature       *string                 `json:"signature,omitempty"`
	Rating          *int                    `json:"rating,omitempty"`
	Feedback        *string                 `json:"feedback,omitempty"`
	ApprovalComment *string                 `json:"approvalComment,omitempty"`
	ApprovedBy      *string                 `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time              `json:"approvedAt,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
