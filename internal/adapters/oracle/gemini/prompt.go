package gemini

import "fmt"

// depositPromptTemplate is the fixed validator prompt. The wording is product
// copy and stays in Indonesian; the schema block below is what the
// interpreter parses against.
const depositPromptTemplate = `
Anda adalah AI validator uang. Tugas: periksa apakah foto ini adalah uang kertas Rupiah asli dengan nominal yang sesuai.
User ingin menabung Rp %d. Analisis gambar, lalu berikan output JSON dengan format berikut:

{
  "analysis": {
    "object_detected_as_money": true/false,
    "currency": "IDR / UNKNOWN",
    "image_clear": true/false,
    "suspected_fake_or_edit": true/false,
    "detected_nominal": number,
    "confidence_level": 0-100
  },
  "validation": {
    "input_nominal": %d,
    "match_exact": true/false
  },
  "final_decision": {
    "status": "ACCEPTED / REJECTED_NOT_MONEY / REJECTED_UNCLEAR_IMAGE / REJECTED_AMOUNT_MISMATCH",
    "reason": "penjelasan singkat"
  }
}

Gunakan hanya JSON, tanpa teks lain.
`

// DepositPrompt renders the validator prompt for a claimed nominal.
func DepositPrompt(nominal int64) string {
	return fmt.Sprintf(depositPromptTemplate, nominal, nominal)
}
