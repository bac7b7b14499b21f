package diagnosis

import (
	"fmt"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

// InteractionRisk summarises how many interactions were found
type InteractionRisk string

const (
	InteractionRiskNone     InteractionRisk = "none"
	InteractionRiskModerate InteractionRisk = "moderate"
	InteractionRiskHigh     InteractionRisk = "high"
)

// more than this many interactions makes the overall risk high
const moderateInteractionLimit = 2

// InteractionRequest is the input of CheckMedicationInteractions.
// FoodItems is accepted but not evaluated.
type InteractionRequest struct {
	Medications []string
	Supplements []string
	FoodItems   []string
}

// InteractionResult is the output of CheckMedicationInteractions
type InteractionResult struct {
	Interactions    []knowledge.Interaction `json:"interactions"`
	RiskLevel       InteractionRisk         `json:"risk_level"`
	Recommendations []string                `json:"recommendations"`
	PairsChecked    int                     `json:"pairs_checked"`
}

// CheckMedicationInteractions checks every medication pair once (i<j) and
// every medication/supplement pair. Lookups are directional, so a pair is
// only reported when the table holds the row in the order checked.
func (e *Engine) CheckMedicationInteractions(req InteractionRequest) InteractionResult {
	meds := knowledge.NormalizeAll(req.Medications)
	supplements := knowledge.NormalizeAll(req.Supplements)

	res := InteractionResult{
		Interactions:    make([]knowledge.Interaction, 0),
		Recommendations: make([]string, 0),
	}

	check := func(a, b string) {
		res.PairsChecked++
		if in, ok := e.kb.LookupInteraction(a, b); ok {
			res.Interactions = append(res.Interactions, in)
		}
	}

	for i := 0; i < len(meds); i++ {
		for j := i + 1; j < len(meds); j++ {
			check(meds[i], meds[j])
		}
	}
	for _, m := range meds {
		for _, s := range supplements {
			check(m, s)
		}
	}

	switch n := len(res.Interactions); {
	case n == 0:
		res.RiskLevel = InteractionRiskNone
	case n <= moderateInteractionLimit:
		res.RiskLevel = InteractionRiskModerate
	default:
		res.RiskLevel = InteractionRiskHigh
	}

	for _, in := range res.Interactions {
		if in.Severity == knowledge.SeverityHigh {
			res.Recommendations = append(res.Recommendations, fmt.Sprintf("Avoid combining %s and %s", in.DrugA, in.DrugB))
		} else {
			res.Recommendations = append(res.Recommendations, fmt.Sprintf("Monitor effects of %s and %s", in.DrugA, in.DrugB))
		}
	}
	if len(res.Interactions) == 0 {
		res.Recommendations = append(res.Recommendations, "No known interactions found; always tell your pharmacist about every medicine you take")
	}

	return res
}
