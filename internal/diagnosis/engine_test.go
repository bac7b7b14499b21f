package diagnosis

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

func intPtr(v int) *int { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzeDiagnosis(t *testing.T) {
	e := NewEngine(knowledge.NewDefault())

	got := e.AnalyzeDiagnosis(Request{
		Symptoms: []string{"Febbre", "tosse", " stanchezza "},
		Patient:  Patient{Age: intPtr(40)},
	})

	if got.PrimaryDiagnosis != "COVID-19" {
		t.Fatalf("PrimaryDiagnosis = %s, want COVID-19", got.PrimaryDiagnosis)
	}
	if !almostEqual(got.Confidence, 0.6) {
		t.Errorf("Confidence = %v, want 0.6", got.Confidence)
	}

	wantDiff := []string{"Influenza", "Polmonite", "Angina pectoris"}
	if !slices.Equal(got.DifferentialDiagnoses, wantDiff) {
		t.Errorf("DifferentialDiagnoses = %v, want %v", got.DifferentialDiagnoses, wantDiff)
	}

	wantTreatments := []string{"home isolation", "oxygen saturation monitoring", "paracetamol"}
	if !slices.Equal(got.TreatmentSuggestions, wantTreatments) {
		t.Errorf("TreatmentSuggestions = %v, want %v", got.TreatmentSuggestions, wantTreatments)
	}

	if !slices.Equal(got.RecommendedTests, []string{"complete blood count"}) {
		t.Errorf("RecommendedTests = %v", got.RecommendedTests)
	}

	for _, want := range []string{"COVID-19", "60%", "Influenza", "Polmonite"} {
		if !strings.Contains(got.Reasoning, want) {
			t.Errorf("Reasoning %q does not mention %q", got.Reasoning, want)
		}
	}

	if len(got.RiskFactors) != 0 {
		t.Errorf("RiskFactors = %v, want none", got.RiskFactors)
	}
}

func TestAnalyzeDiagnosisCandidatesSortedAndBounded(t *testing.T) {
	e := NewEngine(knowledge.NewDefault())

	got := e.AnalyzeDiagnosis(Request{Symptoms: []string{"febbre", "mal di testa", "nausea", "vertigini", "dolore al petto"}})

	for i, c := range got.Candidates {
		if c.Confidence <= 0 || c.Confidence > 1 {
			t.Errorf("candidate %s confidence %v outside (0,1]", c.Condition, c.Confidence)
		}
		if i > 0 && c.Confidence > got.Candidates[i-1].Confidence {
			t.Errorf("candidates not sorted: %+v", got.Candidates)
		}
	}
	if len(got.DifferentialDiagnoses) > 3 {
		t.Errorf("too many differentials: %v", got.DifferentialDiagnoses)
	}
}

func TestAnalyzeDiagnosisTieKeepsTableOrder(t *testing.T) {
	kb := knowledge.New(knowledge.Tables{
		Diseases: []knowledge.Disease{
			{Name: "Second", Symptoms: []string{"x", "y"}},
			{Name: "First", Symptoms: []string{"x", "z"}},
			{Name: "Best", Symptoms: []string{"x"}},
		},
	})

	got := NewEngine(kb).AnalyzeDiagnosis(Request{Symptoms: []string{"x"}})

	var order []string
	for _, c := range got.Candidates {
		order = append(order, c.Condition)
	}
	if !slices.Equal(order, []string{"Best", "Second", "First"}) {
		t.Errorf("order = %v", order)
	}
}

func TestAnalyzeDiagnosisNoMatch(t *testing.T) {
	e := NewEngine(knowledge.NewDefault())

	got := e.AnalyzeDiagnosis(Request{Symptoms: []string{"qualcosa di strano"}})

	if got.PrimaryDiagnosis != NotIdentified {
		t.Errorf("PrimaryDiagnosis = %s", got.PrimaryDiagnosis)
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %v", got.Confidence)
	}
	if len(got.DifferentialDiagnoses) != 0 {
		t.Errorf("DifferentialDiagnoses = %v", got.DifferentialDiagnoses)
	}
	if !slices.Equal(got.TreatmentSuggestions, []string{consultPhysician}) {
		t.Errorf("TreatmentSuggestions = %v", got.TreatmentSuggestions)
	}
	if got.Reasoning == "" {
		t.Error("expected reasoning even without a match")
	}
}

func TestAnalyzeDiagnosisTreatmentFallback(t *testing.T) {
	kb := knowledge.New(knowledge.Tables{
		Diseases: []knowledge.Disease{{Name: "Bare", Symptoms: []string{"x"}}},
	})

	got := NewEngine(kb).AnalyzeDiagnosis(Request{Symptoms: []string{"x"}})

	if !slices.Equal(got.TreatmentSuggestions, []string{consultPhysician}) {
		t.Errorf("TreatmentSuggestions = %v", got.TreatmentSuggestions)
	}
}

func TestRecommendedTests(t *testing.T) {
	tests := []struct {
		name     string
		symptoms []string
		want     []string
	}{
		{name: "none", symptoms: []string{"nausea"}, want: []string{}},
		{name: "fever", symptoms: []string{"febbre"}, want: []string{"complete blood count"}},
		{name: "chest pain phrase", symptoms: []string{"dolore al petto intenso"}, want: []string{"ECG", "chest X-ray"}},
		{
			name:     "x-ray not repeated",
			symptoms: []string{"febbre", "dolore al petto", "difficoltà respiratorie"},
			want:     []string{"complete blood count", "ECG", "chest X-ray", "spirometry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommendedTests(tt.symptoms); !slices.Equal(got, tt.want) {
				t.Errorf("recommendedTests(%v) = %v, want %v", tt.symptoms, got, tt.want)
			}
		})
	}
}

func TestAnalyzeDiagnosisHistoryRiskFactors(t *testing.T) {
	e := NewEngine(knowledge.NewDefault())

	got := e.AnalyzeDiagnosis(Request{
		Symptoms:       []string{"vertigini"},
		Patient:        Patient{Age: intPtr(70)},
		MedicalHistory: []string{"Diabete tipo 2", "ipertensione arteriosa"},
		TestResults:    map[string]string{"ecg": "normal"},
	})

	want := []string{"advanced age", "diabetes", "hypertension"}
	if !slices.Equal(got.RiskFactors, want) {
		t.Errorf("RiskFactors = %v, want %v", got.RiskFactors, want)
	}
	if !strings.Contains(got.Reasoning, "1 test result") {
		t.Errorf("Reasoning should mention supplied tests: %q", got.Reasoning)
	}

	english := e.AnalyzeDiagnosis(Request{
		Symptoms:       []string{"vertigini"},
		MedicalHistory: []string{"Hypertension", "Diabetes"},
	})
	if want := []string{"diabetes", "hypertension"}; !slices.Equal(english.RiskFactors, want) {
		t.Errorf("English history RiskFactors = %v, want %v", english.RiskFactors, want)
	}

	denied := e.AnalyzeDiagnosis(Request{
		Symptoms:       []string{"vertigini"},
		MedicalHistory: []string{"non diabetico", "ipertensione"},
	})
	if want := []string{"hypertension"}; !slices.Equal(denied.RiskFactors, want) {
		t.Errorf("negated history RiskFactors = %v, want %v", denied.RiskFactors, want)
	}
}
