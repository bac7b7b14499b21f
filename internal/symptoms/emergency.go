package symptoms

import (
	"strings"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

// Emergency urgency levels
const (
	UrgencyLevelImmediate = "immediate"
	UrgencyLevelUrgent    = "urgent"
	UrgencyLevelRoutine   = "routine"
)

const EmergencyNumber = "112"

var elderlyWarningSigns = []string{"confusione", "vertigini", "caduta"}

const chestPain = "dolore al petto"

// EmergencyRequest is the input of CheckEmergency
type EmergencyRequest struct {
	Symptoms []string
	Age      *int
	Sex      knowledge.Sex
	Location string
}

// EmergencyCheck is the result of CheckEmergency
type EmergencyCheck struct {
	IsEmergency       bool     `json:"is_emergency"`
	UrgencyLevel      string   `json:"urgency_level"`
	EmergencySymptoms []string `json:"emergency_symptoms"`
	Overrides         []string `json:"overrides,omitempty"`
	Recommendations   []string `json:"recommendations"`
	Location          string   `json:"location,omitempty"`
	EmergencyNumber   string   `json:"emergency_number"`
}

// CheckEmergency tests the symptoms against the emergency set, then applies
// demographic overrides. Overrides only ever raise routine to urgent; an
// emergency match stays immediate.
func (a *Analyzer) CheckEmergency(req EmergencyRequest) EmergencyCheck {
	normalized := knowledge.NormalizeAll(req.Symptoms)

	result := EmergencyCheck{
		UrgencyLevel:      UrgencyLevelRoutine,
		EmergencySymptoms: a.emergencySymptoms(normalized),
		Location:          strings.TrimSpace(req.Location),
		EmergencyNumber:   EmergencyNumber,
	}
	if result.EmergencySymptoms == nil {
		result.EmergencySymptoms = []string{}
	}

	if len(result.EmergencySymptoms) > 0 {
		result.IsEmergency = true
		result.UrgencyLevel = UrgencyLevelImmediate
		result.Recommendations = append(result.Recommendations,
			"Call "+EmergencyNumber+" immediately",
			"Do not drive yourself to the hospital",
		)
		if result.Location != "" {
			result.Recommendations = append(result.Recommendations, "Give the operator your location: "+result.Location)
		}
	}

	if req.Age != nil {
		age := *req.Age
		if age > elderlyAge && containsAny(normalized, elderlyWarningSigns) {
			result.Overrides = append(result.Overrides, "elderly patient with confusion, dizziness or a fall")
			result.promote("Older adults with these symptoms should be seen by a doctor today")
		}
		if req.Sex == knowledge.SexFemale && age > 40 && containsAny(normalized, []string{chestPain}) {
			result.Overrides = append(result.Overrides, "woman over 40 with chest pain")
			result.promote("Chest pain in women over 40 can signal a heart attack with atypical symptoms; get an ECG today")
		}
	}

	if len(result.Recommendations) == 0 {
		result.Recommendations = []string{"No emergency signs detected; monitor your symptoms and contact your GP if they worsen"}
	}

	return result
}

func (r *EmergencyCheck) promote(advice string) {
	if r.UrgencyLevel != UrgencyLevelImmediate {
		r.UrgencyLevel = UrgencyLevelUrgent
	}
	r.Recommendations = append(r.Recommendations, advice)
}

// containsAny reports whether any symptom contains any of the phrases
func containsAny(symptoms, phrases []string) bool {
	for _, s := range symptoms {
		for _, p := range phrases {
			if strings.Contains(s, p) {
				return true
			}
		}
	}
	return false
}
