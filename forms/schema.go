// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package forms

import "fmt"

// Field type constants
const (
	FieldText      = "text"
	FieldEmail     = "email"
	FieldTel       = "tel"
	FieldNumber    = "number"
	FieldTextarea  = "textarea"
	FieldSelect    = "select"
	FieldRadio     = "radio"
	FieldPhoto     = "photo"
	FieldSignature = "signature"
	FieldEvidence  = "evidence"
)

var knownFieldTypes = map[string]bool{
	FieldText:      true,
	FieldEmail:     true,
	FieldTel:       true,
	FieldNumber:    true,
	FieldTextarea:  true,
	FieldSelect:    true,
	FieldRadio:     true,
	FieldPhoto:     true,
	FieldSignature: true,
	FieldEvidence:  true,
}

type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

type Field struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Type        string     `json:"type"`
	Required    bool       `json:"required"`
	Options     []string   `json:"options,omitempty"`
	Conditional *Condition `json:"conditional,omitempty"`
}

// CheckSchema validates a template's section list before it is persisted.
// Field ids must be unique across the template, field types must be known,
// and a conditional may only reference a field that appears earlier in
// evaluation order. Cycles are impossible under that rule.
func CheckSchema(sections []Section) []string {
	var problems []string
	seen := make(map[string]bool)

	for _, section := range sections {
		if section.ID == "" {
			problems = append(problems, "seção sem id")
		}
		for _, field := range section.Fields {
			if field.ID == "" {
				problems = append(problems, fmt.Sprintf("seção %s: campo sem id", section.ID))
				continue
			}
			if seen[field.ID] {
				problems = append(problems, fmt.Sprintf("campo %s: id duplicado", field.ID))
			}
			if !knownFieldTypes[field.Type] {
				problems = append(problems, fmt.Sprintf("campo %s: tipo desconhecido %q", field.ID, field.Type))
			}
			if field.Conditional != nil {
				for _, ref := range field.Conditional.refs() {
					if !seen[ref] {
						problems = append(problems, fmt.Sprintf("campo %s: condição referencia campo %q que não aparece antes", field.ID, ref))
					}
				}
			}
			seen[field.ID] = true
		}
	}

	return problems
}
