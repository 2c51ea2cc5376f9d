package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nabung-ai/tabungan_backend/internal/apperrors"
	"github.com/nabung-ai/tabungan_backend/internal/core/domain"
)

// rawVerdict mirrors the verdict schema with pointer sections so that absent
// objects can be told apart from zero values during validation.
type rawVerdict struct {
	Analysis      *domain.VerdictAnalysis   `json:"analysis"`
	Validation    *domain.VerdictValidation `json:"validation"`
	FinalDecision *domain.VerdictDecision   `json:"final_decision"`
}

// InterpretVerdict parses the oracle's free-form response text into a typed
// verdict. The oracle sometimes wraps its JSON in a fenced code block, so the
// fence is stripped before parsing. Any parse failure or missing required
// section yields apperrors.ErrMalformedVerdict; the caller degrades that to a
// recorded rejection rather than aborting the request.
func InterpretVerdict(raw string) (*domain.Verdict, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var rv rawVerdict
	if err := json.Unmarshal([]byte(cleaned), &rv); err != nil {
		return nil, fmt.Errorf("oracle output is not valid JSON: %w", apperrors.ErrMalformedVerdict)
	}

	if rv.Analysis == nil || rv.Validation == nil || rv.FinalDecision == nil {
		return nil, fmt.Errorf("oracle output missing required sections: %w", apperrors.ErrMalformedVerdict)
	}
	if rv.FinalDecision.Status == "" {
		return nil, fmt.Errorf("oracle output missing final decision status: %w", apperrors.ErrMalformedVerdict)
	}
	if rv.Analysis.ConfidenceLevel < 0 || rv.Analysis.ConfidenceLevel > 100 {
		return nil, fmt.Errorf("oracle confidence level out of range: %w", apperrors.ErrMalformedVerdict)
	}

	return &domain.Verdict{
		Analysis:      *rv.Analysis,
		Validation:    *rv.Validation,
		FinalDecision: *rv.FinalDecision,
	}, nil
}

// stripCodeFence removes a leading/trailing markdown code fence, with or
// without the json language tag.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
