package symptoms

import (
	"math"
	"sort"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

// Level is the overall severity of a symptom set
type Level string

const (
	LevelEmergency Level = "emergency"
	LevelHigh      Level = "alta"
	LevelModerate  Level = "moderata"
	LevelLow       Level = "bassa"
)

const (
	// baseConfidence is what a condition gets from the first symptom reaching it
	baseConfidence = 0.7
	// extraConfidence is added for every further symptom reaching the same condition
	extraConfidence = 0.1

	emergencyConfidence = 0.9
	emergencyCondition  = "Medical emergency - requires immediate evaluation"
	emergencyAdvice     = "Seek immediate medical care: call 112 or go to the nearest emergency department"
	elderlyAge          = 65
)

var urgencyByLevel = map[Level]knowledge.Urgency{
	LevelEmergency: knowledge.UrgencyImmediate,
	LevelHigh:      knowledge.UrgencyWithin24h,
	LevelModerate:  knowledge.UrgencyWithinWeek,
	LevelLow:       knowledge.UrgencyRoutine,
}

var baseRecommendation = map[Level]string{
	LevelHigh:     "Contact a doctor within 24 hours",
	LevelModerate: "Book a medical visit within the week",
	LevelLow:      "Rest and monitor your symptoms; see your GP if they persist",
}

// symptomNotes are appended when the exact normalized symptom is present
var symptomNotes = []struct {
	symptom string
	note    string
}{
	{"febbre", "Monitor your body temperature regularly and stay hydrated"},
	{"dolore al petto", "Avoid physical exertion until you have been evaluated"},
}

// Request is the input of AnalyzeSymptoms
type Request struct {
	Symptoms       []string
	Age            *int
	Sex            knowledge.Sex
	MedicalHistory []string
	Medications    []string
}

// Candidate is a condition reached by at least one matched symptom
type Candidate struct {
	Condition  string             `json:"condition"`
	Symptoms   []string           `json:"symptoms"`
	Confidence float64            `json:"confidence"`
	Severity   knowledge.Severity `json:"severity"`
}

// Analysis is the result of AnalyzeSymptoms
type Analysis struct {
	Symptoms           []string          `json:"symptoms"`
	PossibleConditions []Candidate       `json:"possible_conditions"`
	SeverityLevel      Level             `json:"severity_level"`
	Urgency            knowledge.Urgency `json:"urgency"`
	IsEmergency        bool              `json:"is_emergency"`
	EmergencySymptoms  []string          `json:"emergency_symptoms,omitempty"`
	UnknownSymptoms    []string          `json:"unknown_symptoms,omitempty"`
	Recommendations    []string          `json:"recommendations"`
	ConfidenceScore    float64           `json:"confidence_score"`
}

// Analyzer scores symptom lists against a symptom knowledge base.
// It holds no mutable state and can be shared between goroutines.
type Analyzer struct {
	kb knowledge.SymptomBase
}

// NewAnalyzer creates an analyzer over the given knowledge base
func NewAnalyzer(kb knowledge.SymptomBase) *Analyzer {
	return &Analyzer{kb: kb}
}

// AnalyzeSymptoms ranks candidate conditions and classifies severity and urgency.
// An emergency symptom short-circuits everything else.
func (a *Analyzer) AnalyzeSymptoms(req Request) Analysis {
	normalized := knowledge.NormalizeAll(req.Symptoms)

	if emergency := a.emergencySymptoms(normalized); len(emergency) > 0 {
		return Analysis{
			Symptoms: normalized,
			PossibleConditions: []Candidate{{
				Condition:  emergencyCondition,
				Symptoms:   emergency,
				Confidence: emergencyConfidence,
				Severity:   knowledge.SeverityHigh,
			}},
			SeverityLevel:     LevelEmergency,
			Urgency:           knowledge.UrgencyImmediate,
			IsEmergency:       true,
			EmergencySymptoms: emergency,
			Recommendations:   []string{emergencyAdvice},
			ConfidenceScore:   emergencyConfidence,
		}
	}

	candidates, unknown := a.rankConditions(normalized)
	level := a.classify(normalized)

	return Analysis{
		Symptoms:           normalized,
		PossibleConditions: candidates,
		SeverityLevel:      level,
		Urgency:            UrgencyFor(level),
		UnknownSymptoms:    unknown,
		Recommendations:    recommendations(level, req.Age, normalized),
		ConfidenceScore:    CalculateConfidenceScore(len(normalized), len(candidates)),
	}
}

// rankConditions fans every known symptom out to its conditions. The first
// symptom reaching a condition contributes baseConfidence, each later one
// only extraConfidence. Confidence is not clamped.
func (a *Analyzer) rankConditions(symptoms []string) ([]Candidate, []string) {
	index := make(map[string]int)
	candidates := make([]Candidate, 0)
	unknown := make([]string, 0)

	for _, s := range symptoms {
		entry, ok := a.kb.LookupSymptom(s)
		if !ok {
			unknown = append(unknown, s)
			continue
		}

		for _, condition := range entry.Conditions {
			i, seen := index[condition]
			if !seen {
				index[condition] = len(candidates)
				candidates = append(candidates, Candidate{
					Condition:  condition,
					Symptoms:   []string{s},
					Confidence: baseConfidence,
					Severity:   entry.Severity,
				})
				continue
			}

			c := &candidates[i]
			c.Confidence += extraConfidence
			c.Symptoms = append(c.Symptoms, s)
			if knowledge.SeverityWeight(entry.Severity) > knowledge.SeverityWeight(c.Severity) {
				c.Severity = entry.Severity
			}
		}
	}

	// Stable: equal scores keep the order in which conditions were first reached
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	return candidates, unknown
}

// classify averages the severity weights of the symptoms found in the
// knowledge base. Unknown symptoms do not count.
func (a *Analyzer) classify(symptoms []string) Level {
	total, matched := 0, 0
	for _, s := range symptoms {
		entry, ok := a.kb.LookupSymptom(s)
		if !ok {
			continue
		}
		total += knowledge.SeverityWeight(entry.Severity)
		matched++
	}

	if matched == 0 {
		return LevelLow
	}

	avg := float64(total) / float64(matched)
	switch {
	case avg >= 2.5:
		return LevelHigh
	case avg >= 1.5:
		return LevelModerate
	default:
		return LevelLow
	}
}

func (a *Analyzer) emergencySymptoms(symptoms []string) []string {
	var found []string
	for _, s := range symptoms {
		if a.kb.IsEmergency(s) {
			found = append(found, s)
		}
	}
	return found
}

// UrgencyFor maps a severity level to its response timeframe
func UrgencyFor(level Level) knowledge.Urgency {
	if u, ok := urgencyByLevel[level]; ok {
		return u
	}
	return knowledge.UrgencyRoutine
}

// CalculateConfidenceScore blends how many symptoms were reported with how
// many conditions they reached. Both parts saturate at 1.
func CalculateConfidenceScore(symptomCount, conditionCount int) float64 {
	if symptomCount <= 0 {
		return 0
	}
	symptomPart := math.Min(float64(symptomCount)/5, 1)
	conditionPart := math.Min(float64(conditionCount)/3, 1)
	return (symptomPart + conditionPart) / 2
}

func recommendations(level Level, age *int, symptoms []string) []string {
	recs := []string{baseRecommendation[level]}

	if age != nil && *age > elderlyAge {
		recs = append(recs, "At your age, consult your doctor promptly even for mild symptoms")
	}

	for _, n := range symptomNotes {
		for _, s := range symptoms {
			if s == n.symptom {
				recs = append(recs, n.note)
				break
			}
		}
	}

	return recs
}
