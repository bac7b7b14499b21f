package symptoms

import (
	"slices"
	"testing"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

func TestExtract(t *testing.T) {
	ex := NewExtractor(knowledge.NewDefault())

	tests := []struct {
		name          string
		text          string
		wantSymptoms  []string
		wantIntensity string
	}{
		{
			name:          "single known symptom",
			text:          "Ho la febbre da ieri",
			wantSymptoms:  []string{"febbre"},
			wantIntensity: IntensityModerate,
		},
		{
			name:          "synonyms map to table keys",
			text:          "Ho il fiato corto e un leggero mal di pancia",
			wantSymptoms:  []string{"difficoltà respiratorie", "dolore addominale"},
			wantIntensity: IntensityMild,
		},
		{
			name:          "longest phrase wins",
			text:          "Ho un dolore al petto intenso",
			wantSymptoms:  []string{"dolore al petto intenso"},
			wantIntensity: IntensitySevere,
		},
		{
			name:          "duplicates collapse",
			text:          "vertigini, capogiri e ancora vertigini",
			wantSymptoms:  []string{"vertigini"},
			wantIntensity: IntensityModerate,
		},
		{
			name:          "nothing recognised",
			text:          "Vorrei prenotare una visita",
			wantSymptoms:  []string{},
			wantIntensity: IntensityModerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.Extract(tt.text)

			if len(got.Symptoms) != len(tt.wantSymptoms) {
				t.Fatalf("Symptoms = %v, want %v", got.Symptoms, tt.wantSymptoms)
			}
			for _, want := range tt.wantSymptoms {
				if !slices.Contains(got.Symptoms, want) {
					t.Errorf("missing %q in %v", want, got.Symptoms)
				}
			}
			if got.Intensity != tt.wantIntensity {
				t.Errorf("Intensity = %s, want %s", got.Intensity, tt.wantIntensity)
			}
		})
	}
}

func TestExtractOnset(t *testing.T) {
	tests := []struct {
		text      string
		wantLabel string
		wantText  string
	}{
		{"è iniziato ieri sera", "yesterday", "ieri"},
		{"da stamattina ho nausea", "today", "stamattina"},
		{"è cominciato 3 giorni fa", "days_ago", "3 giorni fa"},
		{"due settimane, anzi 2 settimane fa", "weeks_ago", "2 settimane fa"},
		{"ce l'ho da 4 giorni", "days", "da 4 giorni"},
		{"proprio ora", "now", "proprio ora"},
		{"non saprei", "unknown", ""},
		{"ho pensieri cupi", "unknown", ""},
		{"cerco alloggi in zona", "unknown", ""},
		{"dalla strada 3 giorni dopo", "unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			label, text := extractOnset(tt.text)
			if label != tt.wantLabel || text != tt.wantText {
				t.Errorf("extractOnset(%q) = %q, %q; want %q, %q", tt.text, label, text, tt.wantLabel, tt.wantText)
			}
		})
	}
}

func TestExtractEmptyText(t *testing.T) {
	got := NewExtractor(knowledge.NewDefault()).Extract("   ")
	if len(got.Symptoms) != 0 || got.Onset != "unknown" {
		t.Errorf("unexpected extraction %+v", got)
	}
}
