package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/healthdesk-be/internal/history"
	"github.com/themobileprof/healthdesk-be/internal/knowledge"
	"github.com/themobileprof/healthdesk-be/internal/privacy"
	"github.com/themobileprof/healthdesk-be/internal/symptoms"
)

const errNoSymptoms = "At least one symptom is required"

// TriageHandler serves the symptom analyzer
type TriageHandler struct {
	analyzer  *symptoms.Analyzer
	extractor *symptoms.Extractor
	recorder  *history.Recorder
}

// NewTriageHandler creates a triage handler; recorder may be nil
func NewTriageHandler(analyzer *symptoms.Analyzer, extractor *symptoms.Extractor, recorder *history.Recorder) *TriageHandler {
	return &TriageHandler{
		analyzer:  analyzer,
		extractor: extractor,
		recorder:  recorder,
	}
}

// AnalyzeSymptomsRequest is the body of POST /api/symptoms/analyze.
// Symptoms and Description may be combined; at least one must yield a symptom.
type AnalyzeSymptomsRequest struct {
	Symptoms       []string `json:"symptoms"`
	Description    string   `json:"description,omitempty"`
	Age            *int     `json:"age,omitempty" binding:"omitempty,min=0,max=130"`
	Sex            string   `json:"sex,omitempty"`
	MedicalHistory []string `json:"medical_history,omitempty"`
	Medications    []string `json:"medications,omitempty"`
}

// EmergencyRequest is the body of POST /api/symptoms/emergency
type EmergencyRequest struct {
	Symptoms []string `json:"symptoms"`
	Age      *int     `json:"age,omitempty" binding:"omitempty,min=0,max=130"`
	Sex      string   `json:"sex,omitempty"`
	Location string   `json:"location,omitempty"`
}

// SeverityRequest is the body of POST /api/symptoms/severity
type SeverityRequest struct {
	Symptoms []string `json:"symptoms"`
}

// AnalyzeSymptoms handles POST /api/symptoms/analyze
func (h *TriageHandler) AnalyzeSymptoms(c *gin.Context) {
	var req AnalyzeSymptomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sex, err := parseSex(req.Sex)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	list := knowledge.NormalizeAll(req.Symptoms)
	body := gin.H{}
	if req.Description != "" && h.extractor != nil {
		extraction := h.extractor.Extract(req.Description)
		list = mergeSymptoms(list, extraction.Symptoms)
		body["extraction"] = extraction
		if privacy.ContainsPII(req.Description) {
			_ = c.Error(fmt.Errorf("description contained personal data"))
		}
	}
	if len(list) == 0 {
		if req.Description != "" {
			_ = c.Error(fmt.Errorf("no symptom recognized in %q", privacy.SanitizeForLogging(req.Description)))
		}
		badRequest(c, errNoSymptoms)
		return
	}

	analysis := h.analyzer.AnalyzeSymptoms(symptoms.Request{
		Symptoms:       list,
		Age:            req.Age,
		Sex:            sex,
		MedicalHistory: req.MedicalHistory,
		Medications:    req.Medications,
	})
	body["patterns"] = h.analyzer.MatchPatterns(list)

	respondRecorded(c, h.recorder, history.Entry{
		Kind:     history.KindSymptoms,
		Input:    req,
		Result:   analysis,
		Severity: string(analysis.SeverityLevel),
	}, body)
}

// CheckEmergency handles POST /api/symptoms/emergency
func (h *TriageHandler) CheckEmergency(c *gin.Context) {
	var req EmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(knowledge.NormalizeAll(req.Symptoms)) == 0 {
		badRequest(c, errNoSymptoms)
		return
	}

	sex, err := parseSex(req.Sex)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	check := h.analyzer.CheckEmergency(symptoms.EmergencyRequest{
		Symptoms: req.Symptoms,
		Age:      req.Age,
		Sex:      sex,
		Location: req.Location,
	})

	respondRecorded(c, h.recorder, history.Entry{
		Kind:     history.KindEmergency,
		Input:    req,
		Result:   check,
		Severity: check.UrgencyLevel,
	}, nil)
}

// AssessSeverity handles POST /api/symptoms/severity
func (h *TriageHandler) AssessSeverity(c *gin.Context) {
	var req SeverityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(knowledge.NormalizeAll(req.Symptoms)) == 0 {
		badRequest(c, errNoSymptoms)
		return
	}

	assessment := h.analyzer.AssessSeverity(req.Symptoms)

	respondRecorded(c, h.recorder, history.Entry{
		Kind:     history.KindSeverity,
		Input:    req,
		Result:   assessment,
		Severity: string(assessment.Severity),
	}, nil)
}

// mergeSymptoms appends extracted symptoms that are not already listed
func mergeSymptoms(listed, extracted []string) []string {
	seen := make(map[string]bool, len(listed))
	for _, s := range listed {
		seen[s] = true
	}
	for _, s := range extracted {
		if !seen[s] {
			seen[s] = true
			listed = append(listed, s)
		}
	}
	return listed
}
