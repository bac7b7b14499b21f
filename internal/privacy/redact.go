package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
)

const maxLogLength = 200

var (
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Codice fiscale: 6 letters, 2 digits, month letter, 2 digits, 1 letter, 3 digits, check letter
	fiscalCodeRegex = regexp.MustCompile(`(?i)\b[A-Z]{6}\d{2}[A-EHLMPR-T]\d{2}[A-Z]\d{3}[A-Z]\b`)

	// Tessera sanitaria card number (20 digits, 80380 prefix for Italy)
	healthCardRegex = regexp.MustCompile(`\b80380\d{15}\b`)

	ibanRegex = regexp.MustCompile(`(?i)\bIT\d{2}\s?[A-Z]\d{3}\s?\d{4}\s?\d{3}[0-9A-Z]\s?[0-9A-Z]{4}\s?[0-9A-Z]{4}\s?[0-9A-Z]{3}\b`)

	creditCardRegex = regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`)

	// Italian mobile (3xx) and landline (0x) numbers, optional +39 prefix.
	// Matches: 333 123 4567, +39 333-123-4567, 02 12345678, 0612345678
	phoneRegex = regexp.MustCompile(`(?:\+39[\s.-]?|\b)(?:3\d{2}[\s.-]?\d{3}[\s.-]?\d{3,4}|0\d{1,3}[\s.-]?\d{5,8})\b`)
)

// RedactSensitiveData removes PII from free text. The order matters: long
// numeric identifiers go before phone numbers so they are not split.
func RedactSensitiveData(text string) string {
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	text = fiscalCodeRegex.ReplaceAllString(text, "[CODICE_FISCALE]")
	text = ibanRegex.ReplaceAllString(text, "[IBAN]")
	text = healthCardRegex.ReplaceAllString(text, "[TESSERA_SANITARIA]")
	text = creditCardRegex.ReplaceAllString(text, "[CARD]")
	text = phoneRegex.ReplaceAllString(text, "[PHONE]")
	return text
}

// SanitizeForLogging prepares text for safe logging
func SanitizeForLogging(text string) string {
	redacted := RedactSensitiveData(text)

	if len(redacted) > maxLogLength {
		return redacted[:maxLogLength-3] + "..."
	}

	return redacted
}

// ContainsPII checks if text contains potential PII
func ContainsPII(text string) bool {
	return emailRegex.MatchString(text) ||
		fiscalCodeRegex.MatchString(text) ||
		ibanRegex.MatchString(text) ||
		healthCardRegex.MatchString(text) ||
		creditCardRegex.MatchString(text) ||
		phoneRegex.MatchString(text)
}

// RedactJSON redacts every string value in a JSON document. Keys and
// non-string values are left alone. Invalid JSON is returned as an error.
func RedactJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(redactValue(doc))
}

func redactValue(v any) any {
	switch t := v.(type) {
	case string:
		return RedactSensitiveData(t)
	case []any:
		for i := range t {
			t[i] = redactValue(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = redactValue(t[k])
		}
		return t
	default:
		return v
	}
}

// UserRef is a stable pseudonym for a user id, safe to put in logs
func UserRef(userID string) string {
	if userID == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(userID))
	return "user_" + hex.EncodeToString(sum[:])[:8]
}
