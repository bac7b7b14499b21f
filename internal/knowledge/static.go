package knowledge

import (
	"maps"
	"slices"
	"strings"
)

// Static is an in-memory knowledge base built once from Tables.
// It is never mutated after New returns and is safe for concurrent readers.
type Static struct {
	symptoms     map[string]SymptomEntry
	symptomList  []SymptomEntry
	emergency    map[string]struct{}
	emergencySet []string
	categories   []Category
	patterns     []Pattern
	diseases     []Disease
	interactions map[string]map[string]Interaction
	metrics      []MetricRange
	ranges       map[string]map[string]Range
}

// New builds a Static knowledge base, normalizing every lookup key
func New(t Tables) *Static {
	s := &Static{
		symptoms:     make(map[string]SymptomEntry, len(t.Symptoms)),
		emergency:    make(map[string]struct{}, len(t.Emergency)),
		interactions: make(map[string]map[string]Interaction),
		ranges:       make(map[string]map[string]Range),
	}

	for _, e := range t.Symptoms {
		e.Symptom = Normalize(e.Symptom)
		if e.Symptom == "" {
			continue
		}
		e.Conditions = slices.Clone(e.Conditions)
		if _, dup := s.symptoms[e.Symptom]; dup {
			continue
		}
		s.symptomList = append(s.symptomList, e)
		s.symptoms[e.Symptom] = e
	}

	for _, sym := range t.Emergency {
		n := Normalize(sym)
		if n == "" {
			continue
		}
		if _, dup := s.emergency[n]; !dup {
			s.emergencySet = append(s.emergencySet, n)
		}
		s.emergency[n] = struct{}{}
	}

	for _, c := range t.Categories {
		s.categories = append(s.categories, Category{Name: c.Name, Symptoms: NormalizeAll(c.Symptoms)})
	}

	for _, p := range t.Patterns {
		s.patterns = append(s.patterns, Pattern{Name: p.Name, Symptoms: NormalizeAll(p.Symptoms), Condition: p.Condition})
	}

	for _, d := range t.Diseases {
		d.Symptoms = NormalizeAll(d.Symptoms)
		d.Treatments = slices.Clone(d.Treatments)
		s.diseases = append(s.diseases, d)
	}

	for _, in := range t.Interactions {
		a, b := Normalize(in.DrugA), Normalize(in.DrugB)
		if a == "" || b == "" {
			continue
		}
		in.DrugA, in.DrugB = a, b
		if s.interactions[a] == nil {
			s.interactions[a] = make(map[string]Interaction)
		}
		s.interactions[a][b] = in
	}

	for _, m := range t.Metrics {
		name := Normalize(m.Metric)
		if name == "" {
			continue
		}
		groups := make(map[string]Range, len(m.Ranges))
		for g, r := range m.Ranges {
			groups[Normalize(g)] = r
		}
		s.ranges[name] = groups
		s.metrics = append(s.metrics, MetricRange{Metric: name, Unit: m.Unit, Ranges: groups})
	}

	return s
}

// NewDefault builds a Static knowledge base from the built-in tables
func NewDefault() *Static {
	return New(Default())
}

// LookupSymptom returns the entry for a symptom
func (s *Static) LookupSymptom(symptom string) (SymptomEntry, bool) {
	e, ok := s.symptoms[Normalize(symptom)]
	return cloneSymptom(e), ok
}

// IsEmergency reports whether the symptom belongs to the emergency set
func (s *Static) IsEmergency(symptom string) bool {
	_, ok := s.emergency[Normalize(symptom)]
	return ok
}

// Symptoms returns the symptom table in table order
func (s *Static) Symptoms() []SymptomEntry {
	return cloneEach(s.symptomList, cloneSymptom)
}

// EmergencySymptoms returns the emergency set in table order
func (s *Static) EmergencySymptoms() []string {
	return slices.Clone(s.emergencySet)
}

// Categories returns the symptom taxonomy in table order
func (s *Static) Categories() []Category {
	return cloneEach(s.categories, cloneCategory)
}

// Category finds a category by case-insensitive name
func (s *Static) Category(name string) (Category, bool) {
	want := Normalize(name)
	for _, c := range s.categories {
		if Normalize(c.Name) == want {
			return cloneCategory(c), true
		}
	}
	return Category{}, false
}

// Patterns returns the symptom-pattern catalog in table order
func (s *Static) Patterns() []Pattern {
	return cloneEach(s.patterns, clonePattern)
}

// Diseases returns the disease table in table order
func (s *Static) Diseases() []Disease {
	return cloneEach(s.diseases, cloneDisease)
}

// LookupDisease finds a disease by name. An exact (normalized) match wins,
// otherwise the first disease whose name contains the query, or is
// contained by it, is returned.
func (s *Static) LookupDisease(name string) (Disease, bool) {
	want := Normalize(name)
	if want == "" {
		return Disease{}, false
	}
	for _, d := range s.diseases {
		if Normalize(d.Name) == want {
			return cloneDisease(d), true
		}
	}
	for _, d := range s.diseases {
		have := Normalize(d.Name)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return cloneDisease(d), true
		}
	}
	return Disease{}, false
}

// LookupInteraction checks drugA -> drugB only
func (s *Static) LookupInteraction(drugA, drugB string) (Interaction, bool) {
	row, ok := s.interactions[Normalize(drugA)]
	if !ok {
		return Interaction{}, false
	}
	in, ok := row[Normalize(drugB)]
	return in, ok
}

// LookupRange returns the normal range of a metric for an age group
func (s *Static) LookupRange(metric, group string) (Range, bool) {
	groups, ok := s.ranges[Normalize(metric)]
	if !ok {
		return Range{}, false
	}
	r, ok := groups[Normalize(group)]
	return r, ok
}

// InteractionCount is the number of directional interaction rows
func (s *Static) InteractionCount() int {
	n := 0
	for _, row := range s.interactions {
		n += len(row)
	}
	return n
}

// Metrics returns the metric range table in table order
func (s *Static) Metrics() []MetricRange {
	return cloneEach(s.metrics, cloneMetric)
}

// cloneEach copies items down to their nested slices and maps so callers
// can never write through to the tables
func cloneEach[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = clone(it)
	}
	return out
}

func cloneSymptom(e SymptomEntry) SymptomEntry {
	e.Conditions = slices.Clone(e.Conditions)
	return e
}

func cloneCategory(c Category) Category {
	c.Symptoms = slices.Clone(c.Symptoms)
	return c
}

func clonePattern(p Pattern) Pattern {
	p.Symptoms = slices.Clone(p.Symptoms)
	return p
}

func cloneDisease(d Disease) Disease {
	d.Symptoms = slices.Clone(d.Symptoms)
	d.Treatments = slices.Clone(d.Treatments)
	return d
}

func cloneMetric(m MetricRange) MetricRange {
	m.Ranges = maps.Clone(m.Ranges)
	return m
}

var _ Base = (*Static)(nil)
