// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package forms

import (
	"fmt"
	"strings"
)

// Evidence answer values
const (
	EvidenceSim = "sim"
	EvidenceNao = "nao"
)

// Validate walks every section and field of a template in declaration order
// and returns human-readable errors for missing or invalid required values.
// Fields hidden by their condition are skipped entirely. Errors accumulate;
// there is no short-circuit, so the caller can report all problems at once.
func Validate(sections []Section, responses map[string]Answer) []string {
	var errs []string

	for _, section := range sections {
		for _, field := range section.Fields {
			if !Visible(field, responses) {
				continue
			}
			if !field.Required {
				continue
			}
			if msg := checkRequired(field, responses); msg != "" {
				errs = append(errs, msg)
			}
		}
	}

	return errs
}

// checkRequired applies the per-type rule for one visible required field.
// Returns an empty string when the value is acceptable.
func checkRequired(field Field, responses map[string]Answer) string {
	answer, ok := responses[field.ID]

	switch field.Type {
	case FieldEvidence:
		if !ok || answer.Evidence == nil || answer.Evidence.Answer == "" {
			return fmt.Sprintf("%s: resposta obrigatória", field.Label)
		}
		switch answer.Evidence.Answer {
		case EvidenceSim:
			if answer.Evidence.Photo == "" {
				return fmt.Sprintf("%s: foto comprobatória obrigatória", field.Label)
			}
		case EvidenceNao:
			if strings.TrimSpace(answer.Evidence.Observation) == "" {
				return fmt.Sprintf("%s: observações obrigatórias", field.Label)
			}
		}
		return ""

	case FieldPhoto:
		if !ok || answer.Kind != KindFile || answer.File == "" {
			return fmt.Sprintf("%s: foto obrigatória", field.Label)
		}
		return ""

	case FieldSignature:
		if !ok || answer.Scalar() == "" {
			return fmt.Sprintf("%s: assinatura obrigatória", field.Label)
		}
		return ""

	default:
		if !ok || strings.TrimSpace(answer.Scalar()) == "" {
			return fmt.Sprintf("%s: campo obrigatório", field.Label)
		}
		return ""
	}
}
