// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workflow

import (
	"errors"
	"strings"

	"github.com/rmaffei/checkfield/models"
)

var (
	ErrNotReviewer     = errors.New("usuário não tem permissão para revisar checklists")
	ErrNotPending      = errors.New("checklist já foi revisado")
	ErrUnknownAction   = errors.New("ação de revisão desconhecida")
	ErrCommentRequired = errors.New("comentário de aprovação é obrigatório")
	ErrRatingRequired  = errors.New("nota de 1 a 5 é obrigatória para aprovar")
)

// reviewerRoles are the roles allowed to move a checklist out of pendente.
var reviewerRoles = map[string]bool{
	models.RoleAnalista:      true,
	models.RoleCoordenador:   true,
	models.RoleAdministrador: true,
}

// Decision is a validated review outcome ready to be stamped onto a
// pending checklist.
type Decision struct {
	Status   string
	Comment  string
	Rating   *int
	Feedback *string
}

// Review checks the transition guard for a reviewer acting on a checklist
// and returns the resulting decision. The only transitions are
// pendente → aprovado and pendente → rejeitado; both are terminal.
func Review(reviewer models.User, currentStatus string, req models.ApproveChecklistRequest) (Decision, error) {
	if !reviewerRoles[reviewer.Role] {
		return Decision{}, ErrNotReviewer
	}
	if currentStatus != models.StatusPendente {
		return Decision{}, ErrNotPending
	}
	if strings.TrimSpace(req.ApprovalComment) == "" {
		return Decision{}, ErrCommentRequired
	}

	switch req.Action {
	case models.ActionAprovar:
		if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
			return Decision{}, ErrRatingRequired
		}
		d := Decision{
			Status:  models.StatusAprovado,
			Comment: req.ApprovalComment,
			Rating:  req.Rating,
		}
		if req.Feedback != "" {
			d.Feedback = &req.Feedback
		}
		return d, nil

	case models.ActionRejeitar:
		// Rating and feedback do not apply to rejections.
		return Decision{
			Status:  models.StatusRejeitado,
			Comment: req.ApprovalComment,
		}, nil

	default:
		return Decision{}, ErrUnknownAction
	}
}
