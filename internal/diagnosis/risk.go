package diagnosis

import (
	"strings"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

// RiskLevel is the bucketed health risk
type RiskLevel string

const (
	RiskLow      RiskLevel = "basso"
	RiskModerate RiskLevel = "moderato"
	RiskHigh     RiskLevel = "alto"
)

const (
	factorAdvancedAge = "advanced age"
	factorMiddleAge   = "middle age"
	factorMaleSex     = "male sex"

	middleAge = 45

	highRiskScore     = 5
	moderateRiskScore = 3
)

type riskRule struct {
	aliases []string
	factor  string
	points  int
	advice  string
}

// Conditions and lifestyle factors are matched by containment on normalized
// entries, so "diabete tipo 2" counts as diabetes. Negated entries such as
// "non fumo" never match. Each rule scores once.
var conditionRules = []riskRule{
	{aliases: []string{"diabete", "diabetes"}, factor: "diabetes", points: 2, advice: "Keep blood glucose checks on the schedule agreed with your doctor"},
	{aliases: []string{"ipertensione", "hypertension"}, factor: "hypertension", points: 2, advice: "Measure your blood pressure regularly"},
	{aliases: []string{"obesità", "obesity"}, factor: "obesity", points: 2, advice: "Ask your GP about a weight management plan"},
}

var lifestyleRules = []riskRule{
	{aliases: []string{"fumo", "fumatore", "fumatrice", "smoking", "smoker"}, factor: "smoking", points: 1, advice: "Consider a smoking cessation programme"},
	{aliases: []string{"sedentari", "sedentary"}, factor: "sedentary lifestyle", points: 1, advice: "Aim for at least 150 minutes of moderate activity a week"},
	{aliases: []string{"alcol", "alcool", "alcohol"}, factor: "alcohol use", points: 1, advice: "Reduce alcohol intake"},
}

var riskAdvice = map[RiskLevel]string{
	RiskHigh:     "Schedule a full check-up with your doctor soon",
	RiskModerate: "Discuss prevention with your GP at your next visit",
	RiskLow:      "Keep up regular check-ups and a healthy lifestyle",
}

// RiskRequest is the input of AssessHealthRisk.
// FamilyHistory is accepted but does not contribute to the score.
type RiskRequest struct {
	Age              *int
	Sex              knowledge.Sex
	Conditions       []string
	LifestyleFactors []string
	FamilyHistory    []string
}

// RiskResult is the output of AssessHealthRisk
type RiskResult struct {
	Score           int       `json:"score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskFactors     []string  `json:"risk_factors"`
	Recommendations []string  `json:"recommendations"`
}

// AssessHealthRisk adds up demographic, condition and lifestyle points
func (e *Engine) AssessHealthRisk(req RiskRequest) RiskResult {
	res := RiskResult{
		RiskFactors:     make([]string, 0),
		Recommendations: make([]string, 0),
	}

	if req.Age != nil {
		switch age := *req.Age; {
		case age > knowledge.ElderlyAge:
			res.Score += 2
			res.RiskFactors = append(res.RiskFactors, factorAdvancedAge)
		case age > middleAge:
			res.Score++
			res.RiskFactors = append(res.RiskFactors, factorMiddleAge)
		}
	}

	var advice []string
	apply := func(rules []riskRule, values []string) {
		normalized := knowledge.NormalizeAll(values)
		for _, r := range rules {
			if !matchesAny(normalized, r.aliases) {
				continue
			}
			res.Score += r.points
			res.RiskFactors = append(res.RiskFactors, r.factor)
			advice = append(advice, r.advice)
		}
	}
	apply(conditionRules, req.Conditions)
	apply(lifestyleRules, req.LifestyleFactors)

	if req.Sex == knowledge.SexMale {
		res.RiskFactors = append(res.RiskFactors, factorMaleSex)
	}

	switch {
	case res.Score >= highRiskScore:
		res.RiskLevel = RiskHigh
	case res.Score >= moderateRiskScore:
		res.RiskLevel = RiskModerate
	default:
		res.RiskLevel = RiskLow
	}

	res.Recommendations = append(res.Recommendations, riskAdvice[res.RiskLevel])
	res.Recommendations = append(res.Recommendations, advice...)
	return res
}

func matchesAny(values, aliases []string) bool {
	affirmed := make([]string, 0, len(values))
	for _, v := range values {
		if !negated(v) {
			affirmed = append(affirmed, v)
		}
	}
	for _, a := range aliases {
		if containsKeyword(affirmed, a) {
			return true
		}
	}
	return false
}

var negations = []string{"non ", "no ", "not ", "never ", "mai "}

// negated reports whether a normalized entry starts with a negation
func negated(v string) bool {
	for _, n := range negations {
		if strings.HasPrefix(v, n) {
			return true
		}
	}
	return false
}
