// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitSections() []Section {
	return []Section{
		{
			ID:    "identificacao",
			Title: "Identificação",
			Fields: []Field{
				{ID: "technicianName", Label: "Nome do técnico", Type: FieldText, Required: true},
				{ID: "contractor", Label: "Empresa", Type: FieldSelect, Required: true, Options: []string{"Global Hitss", "Outra"}},
				{ID: "contractorOther", Label: "Qual empresa?", Type: FieldText, Required: true, Conditional: &Condition{Field: "contractor", Value: strptr("Outra")}},
			},
		},
		{
			ID:    "verificacoes",
			Title: "Verificações",
			Fields: []Field{
				{ID: "energia", Label: "Energia estabilizada", Type: FieldEvidence, Required: true},
				{ID: "fachada", Label: "Foto da fachada", Type: FieldPhoto, Required: true},
				{ID: "assinatura", Label: "Assinatura do gerente", Type: FieldSignature, Required: true},
				{ID: "observacoes", Label: "Observações gerais", Type: FieldTextarea, Required: false},
			},
		},
	}
}

func completeResponses() map[string]Answer {
	return map[string]Answer{
		"technicianName": TextAnswer("João Silva"),
		"contractor":     TextAnswer("Global Hitss"),
		"energia":        EvidenceAnswer(EvidenceSim, "energia.jpg", ""),
		"fachada":        FileAnswer("fachada.jpg"),
		"assinatura":     TextAnswer("data:image/png;base64,iVBOR"),
	}
}

func TestValidateComplete(t *testing.T) {
	errs := Validate(visitSections(), completeResponses())
	assert.Empty(t, errs)
}

func TestValidateMissingRequiredText(t *testing.T) {
	responses := completeResponses()
	delete(responses, "technicianName")

	errs := Validate(visitSections(), responses)

	require.Len(t, errs, 1)
	assert.Equal(t, "Nome do técnico: campo obrigatório", errs[0])
}

func TestValidateBlankAnswerIsMissing(t *testing.T) {
	responses := completeResponses()
	responses["technicianName"] = TextAnswer("   ")

	errs := Validate(visitSections(), responses)

	require.Len(t, errs, 1)
	assert.Equal(t, "Nome do técnico: campo obrigatório", errs[0])
}

func TestValidateEvidence(t *testing.T) {
	testCases := []struct {
		name    string
		answer  Answer
		wantErr string
	}{
		{
			name:    "sim without photo",
			answer:  EvidenceAnswer(EvidenceSim, "", ""),
			wantErr: "Energia estabilizada: foto comprobatória obrigatória",
		},
		{
			name:    "nao without observation",
			answer:  EvidenceAnswer(EvidenceNao, "", ""),
			wantErr: "Energia estabilizada: observações obrigatórias",
		},
		{
			name:    "no answer at all",
			answer:  EvidenceAnswer("", "", ""),
			wantErr: "Energia estabilizada: resposta obrigatória",
		},
		{
			name:    "sim with photo",
			answer:  EvidenceAnswer(EvidenceSim, "energia.jpg", ""),
			wantErr: "",
		},
		{
			name:    "nao with observation",
			answer:  EvidenceAnswer(EvidenceNao, "", "gerador ligado"),
			wantErr: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			responses := completeResponses()
			responses["energia"] = tc.answer

			errs := Validate(visitSections(), responses)

			if tc.wantErr == "" {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, tc.wantErr, errs[0])
			}
		})
	}
}

func TestValidatePhotoRequiresFile(t *testing.T) {
	responses := completeResponses()
	responses["fachada"] = TextAnswer("fachada.jpg")

	errs := Validate(visitSections(), responses)

	require.Len(t, errs, 1)
	assert.Equal(t, "Foto da fachada: foto obrigatória", errs[0])
}

func TestValidateSignatureMissing(t *testing.T) {
	responses := completeResponses()
	delete(responses, "assinatura")

	errs := Validate(visitSections(), responses)

	require.Len(t, errs, 1)
	assert.Equal(t, "Assinatura do gerente: assinatura obrigatória", errs[0])
}

func TestValidateSkipsHiddenFields(t *testing.T) {
	// contractorOther is required but only visible when contractor is
	// "Outra". With "Global Hitss" selected its absence is not an error.
	responses := completeResponses()
	errs := Validate(visitSections(), responses)
	assert.Empty(t, errs)

	responses["contractor"] = TextAnswer("Outra")
	errs = Validate(visitSections(), responses)
	require.Len(t, errs, 1)
	assert.Equal(t, "Qual empresa?: campo obrigatório", errs[0])

	responses["contractorOther"] = TextAnswer("Telemont")
	errs = Validate(visitSections(), responses)
	assert.Empty(t, errs)
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	errs := Validate(visitSections(), map[string]Answer{})
	assert.Len(t, errs, 5)
}
