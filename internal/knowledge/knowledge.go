package knowledge

import (
	"strings"
)

// Severity is the intensity label attached to a symptom or interaction
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// Urgency is the response timeframe attached to a symptom
type Urgency string

const (
	UrgencyImmediate  Urgency = "immediate"
	UrgencyWithin24h  Urgency = "within_24h"
	UrgencyWithinWeek Urgency = "within_week"
	UrgencyRoutine    Urgency = "routine"
)

// TreatmentType tags a treatment entry
type TreatmentType string

const (
	TreatmentSupportive TreatmentType = "supportive"
	TreatmentMedication TreatmentType = "medication"
	TreatmentLifestyle  TreatmentType = "lifestyle"
)

// Age groups used by metric ranges
const (
	GroupAdult   = "adult"
	GroupElderly = "elderly"
	GroupAll     = "all"
)

// SymptomEntry maps a normalized symptom to the conditions it suggests
type SymptomEntry struct {
	Symptom    string   `yaml:"symptom" json:"symptom"`
	Conditions []string `yaml:"conditions" json:"conditions"`
	Severity   Severity `yaml:"severity" json:"severity"`
	Urgency    Urgency  `yaml:"urgency" json:"urgency"`
}

// Category groups symptoms for taxonomy browsing
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Symptoms []string `yaml:"symptoms" json:"symptoms"`
}

// Pattern is a named cluster of symptoms that usually appear together
type Pattern struct {
	Name      string   `yaml:"name" json:"name"`
	Symptoms  []string `yaml:"symptoms" json:"symptoms"`
	Condition string   `yaml:"condition" json:"condition"`
}

// Treatment is a single treatment option for a disease
type Treatment struct {
	Name string        `yaml:"name" json:"name"`
	Type TreatmentType `yaml:"type" json:"type"`
}

// Disease is a knowledge-base row used by the diagnosis engine
type Disease struct {
	Name        string      `yaml:"name" json:"name"`
	Category    string      `yaml:"category" json:"category"`
	Description string      `yaml:"description" json:"description"`
	Symptoms    []string    `yaml:"symptoms" json:"symptoms"`
	Treatments  []Treatment `yaml:"treatments" json:"treatments"`
}

// TreatmentNames returns the treatment names in table order
func (d Disease) TreatmentNames() []string {
	names := make([]string, 0, len(d.Treatments))
	for _, t := range d.Treatments {
		names = append(names, t.Name)
	}
	return names
}

// Interaction describes what happens when DrugA is taken with DrugB.
// Lookups are directional: an A->B row says nothing about B->A.
type Interaction struct {
	DrugA       string   `yaml:"drug_a" json:"drug_a"`
	DrugB       string   `yaml:"drug_b" json:"drug_b"`
	Severity    Severity `yaml:"severity" json:"severity"`
	Description string   `yaml:"description" json:"description"`
}

// Range is an inclusive normal interval
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// MetricRange holds the normal ranges of one health metric per age group
type MetricRange struct {
	Metric string           `yaml:"metric" json:"metric"`
	Unit   string           `yaml:"unit" json:"unit"`
	Ranges map[string]Range `yaml:"ranges" json:"ranges"`
}

// SymptomBase is the read-only capability the symptoms analyzer needs
type SymptomBase interface {
	LookupSymptom(symptom string) (SymptomEntry, bool)
	IsEmergency(symptom string) bool
	Symptoms() []SymptomEntry
	EmergencySymptoms() []string
	Categories() []Category
	Patterns() []Pattern
}

// DiagnosisBase is the read-only capability the diagnosis engine needs
type DiagnosisBase interface {
	// Diseases returns every disease in table order. The order is the
	// tie-break for equally scored diagnoses.
	Diseases() []Disease
	LookupDisease(name string) (Disease, bool)
	LookupInteraction(drugA, drugB string) (Interaction, bool)
	LookupRange(metric, group string) (Range, bool)
	Metrics() []MetricRange
}

// Base is the full knowledge base
type Base interface {
	SymptomBase
	DiagnosisBase
}

// Normalize trims and lowercases a symptom, drug or metric name
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeAll normalizes a list, dropping entries that end up empty
func NormalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SeverityWeight maps a severity label to the weight used for averaging
func SeverityWeight(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityModerate:
		return 2
	default:
		return 1
	}
}
