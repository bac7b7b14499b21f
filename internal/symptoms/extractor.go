package symptoms

import (
	"regexp"
	"sort"
	"strings"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

// Intensity hints extracted from free text
const (
	IntensitySevere   = "severe"
	IntensityModerate = "moderate"
	IntensityMild     = "mild"
)

// colloquial phrases that map onto knowledge-base symptom keys
var synonyms = map[string]string{
	"mi fa male la testa":       "mal di testa",
	"emicrania":                 "mal di testa",
	"male al petto":             "dolore al petto",
	"dolore toracico":           "dolore al petto",
	"fiato corto":               "difficoltà respiratorie",
	"affanno":                   "difficoltà respiratorie",
	"non riesco a respirare":    "difficoltà respiratorie",
	"giramenti di testa":        "vertigini",
	"capogiri":                  "vertigini",
	"stanco":                    "stanchezza",
	"stanca":                    "stanchezza",
	"spossatezza":               "stanchezza",
	"mal di pancia":             "dolore addominale",
	"mal di stomaco":            "dolore addominale",
	"ho vomitato":               "vomito",
	"temperatura alta":          "febbre",
	"brucia quando urino":       "bruciore urinario",
	"mal di schiena":            "dolore lombare",
	"svenuto":                   "svenimento",
	"svenuta":                   "svenimento",
	"ho perso conoscenza":       "perdita di coscienza",
	"non riesco a parlare":      "difficoltà a parlare",
	"dolori alle articolazioni": "dolore articolare",
}

var (
	severeKeywords   = []string{"insopportabile", "fortissimo", "fortissima", "molto forte", "intenso", "intensa", "grave", "atroce"}
	moderateKeywords = []string{"moderato", "moderata", "fastidioso", "fastidiosa", "forte"}
	mildKeywords     = []string{"lieve", "leggero", "leggera", "un po'", "poco"}
)

type onsetPattern struct {
	label string
	re    *regexp.Regexp
}

// Checked in order; the first match wins
var onsetPatterns = []onsetPattern{
	{"now", regexp.MustCompile(`\b(proprio ora|adesso|in questo momento)\b`)},
	{"today", regexp.MustCompile(`\b(oggi|stamattina|stamani|stasera)\b`)},
	{"yesterday", regexp.MustCompile(`\bieri\b`)},
	{"days_ago", regexp.MustCompile(`\b(\d+)\s*giorn[oi]\s*fa\b`)},
	{"weeks_ago", regexp.MustCompile(`\b(\d+)\s*settiman[ae]\s*fa\b`)},
	{"days", regexp.MustCompile(`\bda\s*(\d+)\s*giorn[oi]\b`)},
	{"this_week", regexp.MustCompile(`\bquesta settimana\b`)},
	{"recently", regexp.MustCompile(`\b(ultimamente|di recente|recentemente)\b`)},
}

// Extraction is what Extract found in a free-text description
type Extraction struct {
	Symptoms  []string `json:"symptoms"`
	Intensity string   `json:"intensity"`
	Onset     string   `json:"onset"`
	OnsetText string   `json:"onset_text,omitempty"`
}

// Extractor maps free text onto knowledge-base symptom keys by literal
// phrase containment. It does no language understanding beyond that.
type Extractor struct {
	phrases []phrase
}

type phrase struct {
	text    string
	symptom string
}

// NewExtractor builds the phrase list from the knowledge base and the synonym table
func NewExtractor(kb knowledge.SymptomBase) *Extractor {
	seen := make(map[string]bool)
	var phrases []phrase
	add := func(text, symptom string) {
		text = knowledge.Normalize(text)
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		phrases = append(phrases, phrase{text: text, symptom: knowledge.Normalize(symptom)})
	}

	for _, s := range kb.EmergencySymptoms() {
		add(s, s)
	}
	for _, e := range kb.Symptoms() {
		add(e.Symptom, e.Symptom)
	}
	for _, c := range kb.Categories() {
		for _, s := range c.Symptoms {
			add(s, s)
		}
	}
	for text, symptom := range synonyms {
		add(text, symptom)
	}

	// Longest phrase first so "dolore al petto intenso" wins over "dolore al petto"
	sort.SliceStable(phrases, func(i, j int) bool {
		if len(phrases[i].text) != len(phrases[j].text) {
			return len(phrases[i].text) > len(phrases[j].text)
		}
		return phrases[i].text < phrases[j].text
	})

	return &Extractor{phrases: phrases}
}

// Extract finds symptom keys, an intensity hint and an onset hint in text
func (e *Extractor) Extract(text string) Extraction {
	lower := knowledge.Normalize(text)
	out := Extraction{Symptoms: make([]string, 0)}
	if lower == "" {
		out.Intensity = IntensityModerate
		out.Onset = "unknown"
		return out
	}

	var consumed []string
	found := make(map[string]bool)
	for _, p := range e.phrases {
		if !strings.Contains(lower, p.text) || insideConsumed(p.text, consumed) {
			continue
		}
		consumed = append(consumed, p.text)
		if !found[p.symptom] {
			found[p.symptom] = true
			out.Symptoms = append(out.Symptoms, p.symptom)
		}
	}

	out.Intensity = extractIntensity(lower)
	out.Onset, out.OnsetText = extractOnset(lower)
	return out
}

func insideConsumed(text string, consumed []string) bool {
	for _, c := range consumed {
		if strings.Contains(c, text) {
			return true
		}
	}
	return false
}

func extractIntensity(text string) string {
	for _, k := range severeKeywords {
		if strings.Contains(text, k) {
			return IntensitySevere
		}
	}
	for _, k := range moderateKeywords {
		if strings.Contains(text, k) {
			return IntensityModerate
		}
	}
	for _, k := range mildKeywords {
		if strings.Contains(text, k) {
			return IntensityMild
		}
	}
	return IntensityModerate
}

// extractOnset returns the onset label and the phrase that triggered it
func extractOnset(text string) (string, string) {
	for _, p := range onsetPatterns {
		if m := p.re.FindString(text); m != "" {
			return p.label, m
		}
	}
	return "unknown", ""
}
