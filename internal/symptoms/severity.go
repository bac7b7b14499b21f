package symptoms

import (
	"sort"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

var monitoringAdvice = map[Level]string{
	LevelEmergency: "Do not wait: call " + EmergencyNumber + " now and stay with someone until help arrives",
	LevelHigh:      "Check your symptoms every few hours and contact a doctor within 24 hours",
	LevelModerate:  "Keep a daily symptom diary and book a visit if there is no improvement within a few days",
	LevelLow:       "Rest, stay hydrated and monitor your symptoms over the next week",
}

// SeverityAssessment is the result of AssessSeverity
type SeverityAssessment struct {
	Severity         Level             `json:"severity"`
	Urgency          knowledge.Urgency `json:"urgency"`
	MatchedSymptoms  []string          `json:"matched_symptoms"`
	MonitoringAdvice string            `json:"monitoring_advice"`
}

// AssessSeverity classifies a symptom set without ranking conditions
func (a *Analyzer) AssessSeverity(symptoms []string) SeverityAssessment {
	normalized := knowledge.NormalizeAll(symptoms)

	level := a.classify(normalized)
	if len(a.emergencySymptoms(normalized)) > 0 {
		level = LevelEmergency
	}

	matched := make([]string, 0, len(normalized))
	for _, s := range normalized {
		if _, ok := a.kb.LookupSymptom(s); ok {
			matched = append(matched, s)
		}
	}

	return SeverityAssessment{
		Severity:         level,
		Urgency:          UrgencyFor(level),
		MatchedSymptoms:  matched,
		MonitoringAdvice: MonitoringAdvice(level),
	}
}

// MonitoringAdvice is the fixed advice for a severity level
func MonitoringAdvice(level Level) string {
	if advice, ok := monitoringAdvice[level]; ok {
		return advice
	}
	return monitoringAdvice[LevelLow]
}

// PatternMatch is a symptom pattern with at least two members present
type PatternMatch struct {
	Pattern   string   `json:"pattern"`
	Condition string   `json:"condition"`
	Matched   []string `json:"matched"`
	Coverage  float64  `json:"coverage"`
}

// MatchPatterns finds catalog patterns covered by the symptoms, best coverage first
func (a *Analyzer) MatchPatterns(symptoms []string) []PatternMatch {
	present := make(map[string]bool)
	for _, s := range knowledge.NormalizeAll(symptoms) {
		present[s] = true
	}

	matches := make([]PatternMatch, 0)
	for _, p := range a.kb.Patterns() {
		if len(p.Symptoms) == 0 {
			continue
		}
		var matched []string
		for _, s := range p.Symptoms {
			if present[s] {
				matched = append(matched, s)
			}
		}
		if len(matched) < 2 {
			continue
		}
		matches = append(matches, PatternMatch{
			Pattern:   p.Name,
			Condition: p.Condition,
			Matched:   matched,
			Coverage:  float64(len(matched)) / float64(len(p.Symptoms)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Coverage > matches[j].Coverage
	})

	return matches
}
