package knowledge

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyTables = errors.New("knowledge tables are empty")
)

// LoadFile reads, validates and builds a knowledge base from a YAML file
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}

	tables, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return New(tables), nil
}

// Parse decodes and validates YAML tables
func Parse(data []byte) (Tables, error) {
	var t Tables
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Tables{}, fmt.Errorf("failed to decode knowledge tables: %w", err)
	}

	if err := Validate(t); err != nil {
		return Tables{}, err
	}

	return t, nil
}

// Export encodes tables as YAML
func Export(t Tables) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("failed to encode knowledge tables: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush knowledge tables: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks labels, keys and ranges. Every problem found is reported.
func Validate(t Tables) error {
	if len(t.Symptoms) == 0 && len(t.Diseases) == 0 {
		return ErrEmptyTables
	}

	var errs []error

	seen := make(map[string]bool, len(t.Symptoms))
	for i, s := range t.Symptoms {
		key := Normalize(s.Symptom)
		if key == "" {
			errs = append(errs, fmt.Errorf("symptoms[%d]: empty symptom", i))
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("symptoms[%d]: duplicate symptom %q", i, key))
		}
		seen[key] = true
		if !validSeverity(s.Severity) {
			errs = append(errs, fmt.Errorf("symptoms[%d]: unknown severity %q", i, s.Severity))
		}
		if !validUrgency(s.Urgency) {
			errs = append(errs, fmt.Errorf("symptoms[%d]: unknown urgency %q", i, s.Urgency))
		}
	}

	for i, e := range t.Emergency {
		if Normalize(e) == "" {
			errs = append(errs, fmt.Errorf("emergency[%d]: empty symptom", i))
		}
	}

	for i, d := range t.Diseases {
		if Normalize(d.Name) == "" {
			errs = append(errs, fmt.Errorf("diseases[%d]: empty name", i))
		}
		if len(d.Symptoms) == 0 {
			errs = append(errs, fmt.Errorf("diseases[%d] %q: no symptoms", i, d.Name))
		}
		for j, tr := range d.Treatments {
			switch tr.Type {
			case TreatmentSupportive, TreatmentMedication, TreatmentLifestyle:
			default:
				errs = append(errs, fmt.Errorf("diseases[%d].treatments[%d]: unknown type %q", i, j, tr.Type))
			}
		}
	}

	for i, in := range t.Interactions {
		if Normalize(in.DrugA) == "" || Normalize(in.DrugB) == "" {
			errs = append(errs, fmt.Errorf("interactions[%d]: empty drug name", i))
		}
		if !validSeverity(in.Severity) {
			errs = append(errs, fmt.Errorf("interactions[%d]: unknown severity %q", i, in.Severity))
		}
	}

	for i, m := range t.Metrics {
		if Normalize(m.Metric) == "" {
			errs = append(errs, fmt.Errorf("metrics[%d]: empty metric", i))
		}
		for g, r := range m.Ranges {
			switch Normalize(g) {
			case GroupAdult, GroupElderly, GroupAll:
			default:
				errs = append(errs, fmt.Errorf("metrics[%d] %q: unknown age group %q", i, m.Metric, g))
			}
			if r.Min > r.Max {
				errs = append(errs, fmt.Errorf("metrics[%d] %q: min %.2f above max %.2f", i, m.Metric, r.Min, r.Max))
			}
		}
	}

	return errors.Join(errs...)
}

func validSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityModerate, SeverityHigh:
		return true
	}
	return false
}

func validUrgency(u Urgency) bool {
	switch u {
	case UrgencyImmediate, UrgencyWithin24h, UrgencyWithinWeek, UrgencyRoutine:
		return true
	}
	return false
}
