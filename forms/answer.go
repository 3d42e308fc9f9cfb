// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package forms

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Answer kind constants
const (
	KindText     = "text"
	KindFile     = "file"
	KindEvidence = "evidence"
)

// Answer is a tagged union over the three submitted-value shapes: a plain
// scalar, a reference to an uploaded file, or an evidence triple.
type Answer struct {
	Kind     string
	Text     string
	File     string
	Evidence *Evidence
}

type Evidence struct {
	Answer      string `json:"answer"`
	Photo       string `json:"photo,omitempty"`
	Observation string `json:"observation,omitempty"`
}

// TextAnswer wraps a plain scalar value.
func TextAnswer(s string) Answer {
	return Answer{Kind: KindText, Text: s}
}

// FileAnswer wraps a stored upload filename.
func FileAnswer(name string) Answer {
	return Answer{Kind: KindFile, File: name}
}

// EvidenceAnswer wraps an evidence triple.
func EvidenceAnswer(answer, photo, observation string) Answer {
	return Answer{Kind: KindEvidence, Evidence: &Evidence{
		Answer:      answer,
		Photo:       photo,
		Observation: observation,
	}}
}

// Scalar returns the value used for condition comparisons: the text itself,
// the evidence yes/no answer, or the file reference.
func (a Answer) Scalar() string {
	switch a.Kind {
	case KindEvidence:
		if a.Evidence == nil {
			return ""
		}
		return a.Evidence.Answer
	case KindFile:
		return a.File
	default:
		return a.Text
	}
}

// fileAnswerJSON is the wire shape for file references.
type fileAnswerJSON struct {
	File string `json:"file"`
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KindFile:
		return json.Marshal(fileAnswerJSON{File: a.File})
	case KindEvidence:
		if a.Evidence == nil {
			return json.Marshal(Evidence{})
		}
		return json.Marshal(a.Evidence)
	default:
		return json.Marshal(a.Text)
	}
}

// UnmarshalJSON accepts plain JSON scalars (string, number, bool) as text
// answers, {"file": …} as file references, and objects with an "answer" key
// as evidence triples.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*a = TextAnswer("")
		return nil
	case string:
		*a = TextAnswer(v)
		return nil
	case float64:
		*a = TextAnswer(strconv.FormatFloat(v, 'f', -1, 64))
		return nil
	case bool:
		*a = TextAnswer(strconv.FormatBool(v))
		return nil
	case map[string]any:
		if _, ok := v["answer"]; ok {
			var ev Evidence
			if err := json.Unmarshal(data, &ev); err != nil {
				return err
			}
			*a = Answer{Kind: KindEvidence, Evidence: &ev}
			return nil
		}
		if _, ok := v["file"]; ok {
			var f fileAnswerJSON
			if err := json.Unmarshal(data, &f); err != nil {
				return err
			}
			*a = FileAnswer(f.File)
			return nil
		}
		return fmt.Errorf("unrecognized answer object: %s", data)
	default:
		return fmt.Errorf("unsupported answer value: %s", data)
	}
}
