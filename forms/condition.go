// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package forms

// Condition is a boolean expression over field responses. Leaf clauses
// compare a referenced field's scalar value; All/Any compose sub-conditions.
// Every clause present on a node must hold (Value and NotValue together are
// a conjunction).
type Condition struct {
	Field    string      `json:"field,omitempty"`
	Value    *string     `json:"value,omitempty"`
	NotValue *string     `json:"notValue,omitempty"`
	AnyOf    []string    `json:"anyOf,omitempty"`
	All      []Condition `json:"all,omitempty"`
	Any      []Condition `json:"any,omitempty"`
}

// Matches reports whether the condition holds for the current responses.
// A nil condition always matches. Pure function of its inputs.
func (c *Condition) Matches(responses map[string]Answer) bool {
	if c == nil {
		return true
	}

	if c.Field != "" {
		got := responses[c.Field].Scalar()

		if c.Value != nil && got != *c.Value {
			return false
		}
		if c.NotValue != nil && got == *c.NotValue {
			return false
		}
		if len(c.AnyOf) > 0 && !contains(c.AnyOf, got) {
			return false
		}
	}

	for i := range c.All {
		if !c.All[i].Matches(responses) {
			return false
		}
	}

	if len(c.Any) > 0 {
		matched := false
		for i := range c.Any {
			if c.Any[i].Matches(responses) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Visible reports whether a field is active for the current responses.
// Inactive fields are neither rendered nor validated.
func Visible(field Field, responses map[string]Answer) bool {
	return field.Conditional.Matches(responses)
}

// refs lists every field id the condition tree references, for schema checks.
func (c *Condition) refs() []string {
	if c == nil {
		return nil
	}

	var out []string
	if c.Field != "" {
		out = append(out, c.Field)
	}
	for i := range c.All {
		out = append(out, c.All[i].refs()...)
	}
	for i := range c.Any {
		out = append(out, c.Any[i].refs()...)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
