package diagnosis

import (
	"strings"
	"testing"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

func TestCheckMedicationInteractions(t *testing.T) {
	e := NewEngine(knowledge.NewDefault())

	tests := []struct {
		name      string
		req       InteractionRequest
		wantCount int
		wantRisk  InteractionRisk
		wantPairs int
	}{
		{
			name:      "aspirin and warfarin",
			req:       InteractionRequest{Medications: []string{"aspirina", "warfarin"}},
			wantCount: 1,
			wantRisk:  InteractionRiskModerate,
			wantPairs: 1,
		},
		{
			name:      "three anticoagulant pairs",
			req:       InteractionRequest{Medications: []string{"warfarin", "Aspirina", "ibuprofene"}},
			wantCount: 3,
			wantRisk:  InteractionRiskHigh,
			wantPairs: 3,
		},
		{
			name:      "supplements",
			req:       InteractionRequest{Medications: []string{"warfarin"}, Supplements: []string{"ginkgo", "iperico", "vitamina c"}},
			wantCount: 2,
			wantRisk:  InteractionRiskModerate,
			wantPairs: 3,
		},
		{
			name:      "nothing known",
			req:       InteractionRequest{Medications: []string{"paracetamolo", "omeprazolo"}},
			wantCount: 0,
			wantRisk:  InteractionRiskNone,
			wantPairs: 1,
		},
		{
			name:      "food is not evaluated",
			req:       InteractionRequest{Medications: []string{"simvastatina"}, FoodItems: []string{"pompelmo"}},
			wantCount: 0,
			wantRisk:  InteractionRiskNone,
		},
		{
			name:     "empty",
			req:      InteractionRequest{},
			wantRisk: InteractionRiskNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.CheckMedicationInteractions(tt.req)

			if len(got.Interactions) != tt.wantCount {
				t.Errorf("Interactions = %+v, want %d", got.Interactions, tt.wantCount)
			}
			if got.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %s, want %s", got.RiskLevel, tt.wantRisk)
			}
			if got.PairsChecked != tt.wantPairs {
				t.Errorf("PairsChecked = %d, want %d", got.PairsChecked, tt.wantPairs)
			}
			if len(got.Recommendations) == 0 {
				t.Error("expected a recommendation")
			}
		})
	}
}

func TestCheckMedicationInteractionsSeverityAndAdvice(t *testing.T) {
	e := NewEngine(knowledge.NewDefault())

	got := e.CheckMedicationInteractions(InteractionRequest{Medications: []string{"aspirina", "warfarin"}})

	if got.Interactions[0].Severity != knowledge.SeverityHigh {
		t.Errorf("Severity = %s, want high", got.Interactions[0].Severity)
	}
	if got.Recommendations[0] != "Avoid combining aspirina and warfarin" {
		t.Errorf("Recommendations = %v", got.Recommendations)
	}

	moderate := e.CheckMedicationInteractions(InteractionRequest{Medications: []string{"aspirina", "ibuprofene"}})
	if !strings.HasPrefix(moderate.Recommendations[0], "Monitor effects of") {
		t.Errorf("Recommendations = %v", moderate.Recommendations)
	}
}

func TestCheckMedicationInteractionsIsDirectional(t *testing.T) {
	kb := knowledge.New(knowledge.Tables{
		Interactions: []knowledge.Interaction{
			{DrugA: "alfa", DrugB: "beta", Severity: knowledge.SeverityHigh},
		},
	})
	e := NewEngine(kb)

	if got := e.CheckMedicationInteractions(InteractionRequest{Medications: []string{"alfa", "beta"}}); len(got.Interactions) != 1 {
		t.Errorf("forward order: got %d interactions, want 1", len(got.Interactions))
	}
	if got := e.CheckMedicationInteractions(InteractionRequest{Medications: []string{"beta", "alfa"}}); len(got.Interactions) != 0 {
		t.Errorf("reverse order: got %d interactions, want 0", len(got.Interactions))
	}
}
