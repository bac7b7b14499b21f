package diagnosis

import (
	"slices"
	"testing"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

func TestAssessHealthRisk(t *testing.T) {
	e := NewEngine(knowledge.NewDefault())

	tests := []struct {
		name        string
		req         RiskRequest
		wantScore   int
		wantLevel   RiskLevel
		wantFactors []string
	}{
		{
			name:        "elderly man with diabetes",
			req:         RiskRequest{Age: intPtr(70), Sex: knowledge.SexMale, Conditions: []string{"diabete"}},
			wantScore:   4,
			wantLevel:   RiskModerate,
			wantFactors: []string{"advanced age", "diabetes", "male sex"},
		},
		{
			name:        "young woman without factors",
			req:         RiskRequest{Age: intPtr(30), Sex: knowledge.SexFemale},
			wantScore:   0,
			wantLevel:   RiskLow,
			wantFactors: []string{},
		},
		{
			name:        "male sex adds no points",
			req:         RiskRequest{Age: intPtr(30), Sex: knowledge.SexMale},
			wantScore:   0,
			wantLevel:   RiskLow,
			wantFactors: []string{"male sex"},
		},
		{
			name:        "middle age and lifestyle",
			req:         RiskRequest{Age: intPtr(50), LifestyleFactors: []string{"Fumo", "vita sedentaria"}},
			wantScore:   3,
			wantLevel:   RiskModerate,
			wantFactors: []string{"middle age", "smoking", "sedentary lifestyle"},
		},
		{
			name:        "45 is not middle age",
			req:         RiskRequest{Age: intPtr(45)},
			wantScore:   0,
			wantLevel:   RiskLow,
			wantFactors: []string{},
		},
		{
			name:        "65 is middle age",
			req:         RiskRequest{Age: intPtr(65)},
			wantScore:   1,
			wantLevel:   RiskLow,
			wantFactors: []string{"middle age"},
		},
		{
			name: "everything",
			req: RiskRequest{
				Age:              intPtr(72),
				Conditions:       []string{"obesità", "ipertensione", "diabetes type 2"},
				LifestyleFactors: []string{"smoker", "alcol"},
			},
			wantScore:   10,
			wantLevel:   RiskHigh,
			wantFactors: []string{"advanced age", "diabetes", "hypertension", "obesity", "smoking", "alcohol use"},
		},
		{
			name:        "same condition listed twice scores once",
			req:         RiskRequest{Conditions: []string{"diabete", "diabete tipo 1"}},
			wantScore:   2,
			wantLevel:   RiskLow,
			wantFactors: []string{"diabetes"},
		},
		{
			name:        "negated entries do not score",
			req:         RiskRequest{Conditions: []string{"no hypertension"}, LifestyleFactors: []string{"Non fumo", "mai bevuto alcol", "sedentario"}},
			wantScore:   1,
			wantLevel:   RiskLow,
			wantFactors: []string{"sedentary lifestyle"},
		},
		{
			name:        "missing age",
			req:         RiskRequest{Conditions: []string{"ipertensione"}, LifestyleFactors: []string{"sedentary"}},
			wantScore:   3,
			wantLevel:   RiskModerate,
			wantFactors: []string{"hypertension", "sedentary lifestyle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.AssessHealthRisk(tt.req)

			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.RiskLevel != tt.wantLevel {
				t.Errorf("RiskLevel = %s, want %s", got.RiskLevel, tt.wantLevel)
			}
			if !slices.Equal(got.RiskFactors, tt.wantFactors) {
				t.Errorf("RiskFactors = %v, want %v", got.RiskFactors, tt.wantFactors)
			}
			if len(got.Recommendations) == 0 || got.Recommendations[0] != riskAdvice[tt.wantLevel] {
				t.Errorf("Recommendations = %v", got.Recommendations)
			}
		})
	}
}

func TestAssessHealthRiskIgnoresFamilyHistory(t *testing.T) {
	e := NewEngine(knowledge.NewDefault())

	base := RiskRequest{Age: intPtr(55), Conditions: []string{"diabete"}}
	withFamily := base
	withFamily.FamilyHistory = []string{"infarto", "diabete", "ictus"}

	a, b := e.AssessHealthRisk(base), e.AssessHealthRisk(withFamily)
	if a.Score != b.Score || a.RiskLevel != b.RiskLevel {
		t.Errorf("family history changed the result: %+v vs %+v", a, b)
	}
}
