// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package forms implements the template-driven form engine: the declarative
section/field schema, conditional field visibility, and submission
validation.

# Schema

A template is an ordered list of sections, each with an ordered list of
typed fields. Fields may be required and may carry a condition that hides
them unless another field holds (or does not hold) a given value:

	{
	  "id": "contractorOther",
	  "label": "Qual empresa?",
	  "type": "text",
	  "required": true,
	  "conditional": {"field": "contractor", "value": "Outra"}
	}

Conditions form a boolean expression tree: leaf clauses compare a field's
value (Value, NotValue, AnyOf) and All/Any compose sub-conditions. A
condition may only reference fields declared earlier in the template;
CheckSchema enforces this on template writes.

# Answers

Submitted values are a tagged union (Answer): plain text, a stored upload
reference, or an evidence triple. Evidence fields carry a yes/no answer
plus a photo (when "sim") or a written observation (when "nao"). On the
wire, plain JSON scalars are accepted and preserved.

# Validation

Validate applies the visibility evaluator, then per-type required rules,
and accumulates Portuguese human-readable messages without short-circuit:

	errs := forms.Validate(template.Sections, responses)
*/
package forms
