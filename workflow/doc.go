// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package workflow guards checklist review transitions.

A checklist starts pendente and moves exactly once, to aprovado or
rejeitado. Review validates the reviewer's role, the current status and
the request payload, and returns the Decision to persist. Approval
requires a comment and a 1-5 rating; rejection requires only a comment.
*/
package workflow
