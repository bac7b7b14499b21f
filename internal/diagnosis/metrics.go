package diagnosis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

// MetricStatus classifies a reading against its normal range
type MetricStatus string

const (
	StatusLow    MetricStatus = "low"
	StatusNormal MetricStatus = "normal"
	StatusHigh   MetricStatus = "high"
)

// MetricsRequest is the input of AnalyzeHealthMetrics.
// Sex and ActivityLevel are accepted but do not change the ranges.
type MetricsRequest struct {
	Metrics       map[string]float64
	Age           *int
	Sex           knowledge.Sex
	ActivityLevel string
}

// MetricReading is one classified metric
type MetricReading struct {
	Metric string          `json:"metric"`
	Value  float64         `json:"value"`
	Unit   string          `json:"unit,omitempty"`
	Status MetricStatus    `json:"status"`
	Group  string          `json:"group"`
	Normal knowledge.Range `json:"normal_range"`
}

// MetricsResult is the output of AnalyzeHealthMetrics
type MetricsResult struct {
	Readings        []MetricReading `json:"readings"`
	Recommendations []string        `json:"recommendations"`
	RiskFactors     []string        `json:"risk_factors"`
}

// AnalyzeHealthMetrics classifies each known metric as low, normal or high.
// Metrics missing from the range table are skipped.
func (e *Engine) AnalyzeHealthMetrics(req MetricsRequest) MetricsResult {
	res := MetricsResult{
		Readings:        make([]MetricReading, 0, len(req.Metrics)),
		Recommendations: make([]string, 0),
		RiskFactors:     make([]string, 0),
	}

	values := make(map[string]float64, len(req.Metrics))
	for name, v := range req.Metrics {
		if n := knowledge.Normalize(name); n != "" {
			values[n] = v
		}
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make(map[string]string)
	for _, m := range e.kb.Metrics() {
		units[m.Metric] = m.Unit
	}

	group := knowledge.AgeGroup(req.Age)
	for _, name := range names {
		rng, usedGroup, ok := e.lookupRange(name, group)
		if !ok {
			continue
		}
		value := values[name]
		reading := MetricReading{
			Metric: name,
			Value:  value,
			Unit:   units[name],
			Status: classifyReading(value, rng),
			Group:  usedGroup,
			Normal: rng,
		}
		res.Readings = append(res.Readings, reading)

		if reading.Status == StatusNormal {
			continue
		}
		label := strings.ReplaceAll(name, "_", " ")
		direction := "above"
		if reading.Status == StatusLow {
			direction = "below"
		}
		res.Recommendations = append(res.Recommendations, fmt.Sprintf(
			"Monitor %s: %g%s is %s the normal range (%g-%g)",
			label, value, unitSuffix(reading.Unit), direction, rng.Min, rng.Max))
		res.RiskFactors = append(res.RiskFactors, fmt.Sprintf("%s %s", reading.Status, label))
	}

	return res
}

// lookupRange tries the patient's age group and then the shared bucket
func (e *Engine) lookupRange(metric, group string) (knowledge.Range, string, bool) {
	if r, ok := e.kb.LookupRange(metric, group); ok {
		return r, group, true
	}
	if r, ok := e.kb.LookupRange(metric, knowledge.GroupAll); ok {
		return r, knowledge.GroupAll, true
	}
	return knowledge.Range{}, "", false
}

func classifyReading(v float64, r knowledge.Range) MetricStatus {
	switch {
	case v < r.Min:
		return StatusLow
	case v > r.Max:
		return StatusHigh
	default:
		return StatusNormal
	}
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}
