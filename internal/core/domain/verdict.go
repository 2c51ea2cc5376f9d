package domain

// VerdictCurrency is the currency the oracle claims to have recognised.
type VerdictCurrency string

const (
	CurrencyIDR     VerdictCurrency = "IDR"
	CurrencyUnknown VerdictCurrency = "UNKNOWN"
)

// VerdictAnalysis is the oracle's description of what it saw in the image.
type VerdictAnalysis struct {
	ObjectDetectedAsMoney bool            `json:"object_detected_as_money"`
	Currency              VerdictCurrency `json:"currency"`
	ImageClear            bool            `json:"image_clear"`
	SuspectedFakeOrEdit   bool            `json:"suspected_fake_or_edit"`
	DetectedNominal       int64           `json:"detected_nominal"`
	ConfidenceLevel       int             `json:"confidence_level"`
}

// VerdictValidation echoes the claimed nominal and whether it matched.
type VerdictValidation struct {
	InputNominal int64 `json:"input_nominal"`
	MatchExact   bool  `json:"match_exact"`
}

// VerdictDecision is the oracle's own verdict. It is advisory only: the
// decision engine applies its own confidence floor on top of it.
type VerdictDecision struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Verdict is the typed form of the oracle's response for one deposit attempt.
// It is transient and never persisted as-is; only the derived
// TransactionRecord reaches the ledger.
type Verdict struct {
	Analysis      VerdictAnalysis   `json:"analysis"`
	Validation    VerdictValidation `json:"validation"`
	FinalDecision VerdictDecision   `json:"final_decision"`
}
