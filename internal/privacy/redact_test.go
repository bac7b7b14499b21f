package privacy

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRedactSensitiveData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "email redaction",
			input:    "Scrivimi a mario.rossi@example.it",
			expected: "Scrivimi a [EMAIL]",
		},
		{
			name:     "mobile phone",
			input:    "Chiamami al 333 123 4567",
			expected: "Chiamami al [PHONE]",
		},
		{
			name:     "mobile with prefix",
			input:    "Numero +39 347-765-4321 grazie",
			expected: "Numero [PHONE] grazie",
		},
		{
			name:     "landline",
			input:    "Studio medico 02 12345678",
			expected: "Studio medico [PHONE]",
		},
		{
			name:     "codice fiscale",
			input:    "CF RSSMRA85M01H501Z",
			expected: "CF [CODICE_FISCALE]",
		},
		{
			name:     "lowercase codice fiscale",
			input:    "il mio è rssmra85m01h501z",
			expected: "il mio è [CODICE_FISCALE]",
		},
		{
			name:     "health card",
			input:    "tessera 80380000001234567890",
			expected: "tessera [TESSERA_SANITARIA]",
		},
		{
			name:     "credit card",
			input:    "Carta: 4532-1234-5678-9010",
			expected: "Carta: [CARD]",
		},
		{
			name:     "iban",
			input:    "IBAN IT60X0542811101000000123456",
			expected: "IBAN [IBAN]",
		},
		{
			name:     "multiple PII types",
			input:    "Email: test@test.com, Tel: 3331234567",
			expected: "Email: [EMAIL], Tel: [PHONE]",
		},
		{
			name:     "no PII",
			input:    "Ho la febbre a 39 da 3 giorni, pressione 130/85",
			expected: "Ho la febbre a 39 da 3 giorni, pressione 130/85",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RedactSensitiveData(tt.input)
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestContainsPII(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"has email", "Contact: test@example.com", true},
		{"has phone", "Chiama 3391234567", true},
		{"has codice fiscale", "RSSMRA85M01H501Z", true},
		{"clean symptoms", "mal di testa e nausea da ieri", false},
		{"clean metrics", "glicemia 110, saturazione 96", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsPII(tt.input); got != tt.expected {
				t.Errorf("ContainsPII(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeForLogging(t *testing.T) {
	long := strings.Repeat("a", 300)
	result := SanitizeForLogging(long)
	if len(result) != maxLogLength {
		t.Errorf("expected truncation to %d chars, got %d", maxLogLength, len(result))
	}
	if !strings.HasSuffix(result, "...") {
		t.Error("expected ellipsis at end")
	}

	if got := SanitizeForLogging("mail me at a@b.it"); got != "mail me at [EMAIL]" {
		t.Errorf("got %q", got)
	}
}

func TestRedactJSON(t *testing.T) {
	raw := []byte(`{"description":"chiamare 3331234567","location":"Via Roma 1","age":42,"symptoms":["febbre","scrivere a x@y.it"]}`)

	out, err := RedactJSON(raw)
	if err != nil {
		t.Fatalf("RedactJSON: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc["description"] != "chiamare [PHONE]" {
		t.Errorf("description = %v", doc["description"])
	}
	if doc["age"] != float64(42) {
		t.Errorf("age = %v", doc["age"])
	}
	symptoms := doc["symptoms"].([]any)
	if symptoms[0] != "febbre" || symptoms[1] != "scrivere a [EMAIL]" {
		t.Errorf("symptoms = %v", symptoms)
	}

	if _, err := RedactJSON([]byte("{")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestUserRef(t *testing.T) {
	a := UserRef("11111111-1111-1111-1111-111111111111")
	b := UserRef("11111111-1111-1111-1111-111111111111")
	c := UserRef("22222222-2222-2222-2222-222222222222")

	if a != b {
		t.Error("UserRef should be stable")
	}
	if a == c {
		t.Error("different users should get different refs")
	}
	if !strings.HasPrefix(a, "user_") || len(a) != len("user_")+8 {
		t.Errorf("unexpected ref %q", a)
	}
	if UserRef("") != "" {
		t.Error("empty id should give empty ref")
	}
}
