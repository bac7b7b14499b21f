package diagnosis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

const (
	// NotIdentified is the primary diagnosis when no disease matched
	NotIdentified = "condition not identified"

	consultPhysician = "consult a physician"
	maxDifferentials = 3
)

// symptom keyword -> tests, checked by containment on normalized symptoms
var testsBySymptom = []struct {
	keyword string
	tests   []string
}{
	{"febbre", []string{"complete blood count"}},
	{"dolore al petto", []string{"ECG", "chest X-ray"}},
	{"difficoltà respiratorie", []string{"spirometry", "chest X-ray"}},
}

// history keywords -> risk factor
var historyRisks = []struct {
	aliases []string
	factor  string
}{
	{[]string{"diabete", "diabetes"}, "diabetes"},
	{[]string{"ipertensione", "hypertension"}, "hypertension"},
}

// Patient is the demographic part of a request. Both fields are optional.
type Patient struct {
	Age *int          `json:"age,omitempty"`
	Sex knowledge.Sex `json:"sex,omitempty"`
}

// Request is the input of AnalyzeDiagnosis
type Request struct {
	Symptoms       []string
	Patient        Patient
	MedicalHistory []string
	TestResults    map[string]string
}

// Candidate is a disease with at least one canonical symptom present
type Candidate struct {
	Condition        string   `json:"condition"`
	Category         string   `json:"category,omitempty"`
	Confidence       float64  `json:"confidence"`
	MatchingSymptoms []string `json:"matching_symptoms"`
}

// Result is the output of AnalyzeDiagnosis
type Result struct {
	Symptoms              []string    `json:"symptoms"`
	PrimaryDiagnosis      string      `json:"primary_diagnosis"`
	Confidence            float64     `json:"confidence"`
	DifferentialDiagnoses []string    `json:"differential_diagnoses"`
	Candidates            []Candidate `json:"candidates"`
	Reasoning             string      `json:"reasoning"`
	RecommendedTests      []string    `json:"recommended_tests"`
	TreatmentSuggestions  []string    `json:"treatment_suggestions"`
	RiskFactors           []string    `json:"risk_factors"`
}

// Engine runs the diagnosis rules over a read-only knowledge base.
// It is safe for concurrent use.
type Engine struct {
	kb knowledge.DiagnosisBase
}

// NewEngine creates an engine over kb
func NewEngine(kb knowledge.DiagnosisBase) *Engine {
	return &Engine{kb: kb}
}

// AnalyzeDiagnosis scores every disease by the fraction of its canonical
// symptoms present and derives tests, treatments and risk factors.
func (e *Engine) AnalyzeDiagnosis(req Request) Result {
	symptoms := knowledge.NormalizeAll(req.Symptoms)
	candidates := e.rankDiseases(symptoms)

	res := Result{
		Symptoms:              symptoms,
		PrimaryDiagnosis:      NotIdentified,
		DifferentialDiagnoses: make([]string, 0, maxDifferentials),
		Candidates:            candidates,
		RecommendedTests:      recommendedTests(symptoms),
		TreatmentSuggestions:  []string{consultPhysician},
		RiskFactors:           historyRiskFactors(req.Patient.Age, req.MedicalHistory),
	}

	if len(candidates) > 0 {
		top := candidates[0]
		res.PrimaryDiagnosis = top.Condition
		res.Confidence = top.Confidence
		for _, c := range candidates[1:min(len(candidates), maxDifferentials+1)] {
			res.DifferentialDiagnoses = append(res.DifferentialDiagnoses, c.Condition)
		}
		if d, ok := e.kb.LookupDisease(top.Condition); ok && len(d.Treatments) > 0 {
			res.TreatmentSuggestions = d.TreatmentNames()
		}
	}

	res.Reasoning = reasoning(symptoms, candidates, len(req.TestResults))
	return res
}

// rankDiseases keeps table order for equal confidence
func (e *Engine) rankDiseases(symptoms []string) []Candidate {
	present := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		present[s] = true
	}

	candidates := make([]Candidate, 0)
	for _, d := range e.kb.Diseases() {
		if len(d.Symptoms) == 0 {
			continue
		}
		var matching []string
		for _, s := range d.Symptoms {
			if present[s] {
				matching = append(matching, s)
			}
		}
		if len(matching) == 0 {
			continue
		}
		candidates = append(candidates, Candidate{
			Condition:        d.Name,
			Category:         d.Category,
			Confidence:       float64(len(matching)) / float64(len(d.Symptoms)),
			MatchingSymptoms: matching,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

func reasoning(symptoms []string, candidates []Candidate, testResults int) string {
	var b strings.Builder
	if len(candidates) == 0 {
		fmt.Fprintf(&b, "The reported symptoms (%s) do not match any condition in the knowledge base.", strings.Join(symptoms, ", "))
	} else {
		top := candidates[0]
		fmt.Fprintf(&b, "Based on the reported symptoms (%s), the most likely condition is %s with a %.0f%% symptom match.",
			strings.Join(symptoms, ", "), top.Condition, top.Confidence*100)
		if len(candidates) >= 2 {
			others := []string{candidates[1].Condition}
			if len(candidates) >= 3 {
				others = append(others, candidates[2].Condition)
			}
			fmt.Fprintf(&b, " Other conditions to consider: %s.", strings.Join(others, ", "))
		}
	}
	if testResults > 0 {
		fmt.Fprintf(&b, " %d test result(s) were supplied and should be reviewed by a physician.", testResults)
	}
	return b.String()
}

// recommendedTests de-duplicates while keeping the first occurrence
func recommendedTests(symptoms []string) []string {
	seen := make(map[string]bool)
	tests := make([]string, 0)
	for _, rule := range testsBySymptom {
		if !containsKeyword(symptoms, rule.keyword) {
			continue
		}
		for _, t := range rule.tests {
			if !seen[t] {
				seen[t] = true
				tests = append(tests, t)
			}
		}
	}
	return tests
}

func historyRiskFactors(age *int, history []string) []string {
	factors := make([]string, 0)
	if age != nil && *age > knowledge.ElderlyAge {
		factors = append(factors, factorAdvancedAge)
	}
	normalized := knowledge.NormalizeAll(history)
	for _, r := range historyRisks {
		if matchesAny(normalized, r.aliases) {
			factors = append(factors, r.factor)
		}
	}
	return factors
}

// containsKeyword reports whether any value contains keyword
func containsKeyword(values []string, keyword string) bool {
	for _, v := range values {
		if strings.Contains(v, keyword) {
			return true
		}
	}
	return false
}
