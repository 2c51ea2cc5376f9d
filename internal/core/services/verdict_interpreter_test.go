package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabung-ai/tabungan_backend/internal/apperrors"
	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
	"github.com/nabung-ai/tabungan_backend/internal/core/services"
)

const validVerdict = `{
	"analysis": {
		"object_detected_as_money": true,
		"currency": "IDR",
		"image_clear": true,
		"suspected_fake_or_edit": false,
		"detected_nominal": 50000,
		"confidence_level": 92
	},
	"validation": {"input_nominal": 50000, "match_exact": true},
	"final_decision": {"status": "ACCEPTED", "reason": "Uang asli dan nominal cocok"}
}`

func TestInterpretVerdict_Valid(t *testing.T) {
	verdict, err := services.InterpretVerdict(validVerdict)

	require.NoError(t, err)
	assert.True(t, verdict.Analysis.ObjectDetectedAsMoney)
	assert.Equal(t, domain.CurrencyIDR, verdict.Analysis.Currency)
	assert.Equal(t, 92, verdict.Analysis.ConfidenceLevel)
	assert.True(t, verdict.Validation.MatchExact)
	assert.Equal(t, "ACCEPTED", verdict.FinalDecision.Status)
}

func TestInterpretVerdict_StripsCodeFence(t *testing.T) {
	fenced := "```json\n" + validVerdict + "\n```"

	verdict, err := services.InterpretVerdict(fenced)

	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", verdict.FinalDecision.Status)
}

func TestInterpretVerdict_StripsBareFence(t *testing.T) {
	fenced := "```\n" + validVerdict + "\n```"

	_, err := services.InterpretVerdict(fenced)

	require.NoError(t, err)
}

func TestInterpretVerdict_NotJSON(t *testing.T) {
	_, err := services.InterpretVerdict("I'm sorry, I can't analyze this image.")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedVerdict)
}

func TestInterpretVerdict_MissingSections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no analysis", `{"validation": {"input_nominal": 1, "match_exact": true}, "final_decision": {"status": "ACCEPTED"}}`},
		{"no validation", `{"analysis": {"confidence_level": 90}, "final_decision": {"status": "ACCEPTED"}}`},
		{"no final decision", `{"analysis": {"confidence_level": 90}, "validation": {"input_nominal": 1, "match_exact": true}}`},
		{"empty status", `{"analysis": {"confidence_level": 90}, "validation": {"input_nominal": 1, "match_exact": true}, "final_decision": {"status": ""}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.InterpretVerdict(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrMalformedVerdict)
		})
	}
}

func TestInterpretVerdict_ConfidenceOutOfRange(t *testing.T) {
	raw := `{
		"analysis": {"confidence_level": 140},
		"validation": {"input_nominal": 50000, "match_exact": true},
		"final_decision": {"status": "ACCEPTED"}
	}`

	_, err := services.InterpretVerdict(raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedVerdict)
}
