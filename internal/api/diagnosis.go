package api

import (
	"github.com/gin-gonic/gin"

	"github.com/themobileprof/healthdesk-be/internal/diagnosis"
	"github.com/themobileprof/healthdesk-be/internal/history"
	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

// DiagnosisHandler serves the diagnosis engine
type DiagnosisHandler struct {
	engine   *diagnosis.Engine
	recorder *history.Recorder
}

// NewDiagnosisHandler creates a diagnosis handler; recorder may be nil
func NewDiagnosisHandler(engine *diagnosis.Engine, recorder *history.Recorder) *DiagnosisHandler {
	return &DiagnosisHandler{
		engine:   engine,
		recorder: recorder,
	}
}

// PatientInfo is the demographic block shared by diagnosis requests
type PatientInfo struct {
	Age *int   `json:"age,omitempty" binding:"omitempty,min=0,max=130"`
	Sex string `json:"sex,omitempty"`
}

// DiagnosisRequest is the body of POST /api/diagnosis/analyze
type DiagnosisRequest struct {
	Symptoms       []string          `json:"symptoms"`
	PatientInfo    PatientInfo       `json:"patient_info"`
	MedicalHistory []string          `json:"medical_history,omitempty"`
	TestResults    map[string]string `json:"test_results,omitempty"`
}

// InteractionsRequest is the body of POST /api/diagnosis/interactions
type InteractionsRequest struct {
	Medications []string `json:"medications"`
	Supplements []string `json:"supplements,omitempty"`
	FoodItems   []string `json:"food_items,omitempty"`
}

// MetricsRequest is the body of POST /api/diagnosis/metrics
type MetricsRequest struct {
	Metrics       map[string]float64 `json:"metrics"`
	Age           *int               `json:"age,omitempty" binding:"omitempty,min=0,max=130"`
	Sex           string             `json:"sex,omitempty"`
	ActivityLevel string             `json:"activity_level,omitempty"`
}

// RiskRequest is the body of POST /api/diagnosis/risk
type RiskRequest struct {
	Age              *int     `json:"age,omitempty" binding:"omitempty,min=0,max=130"`
	Sex              string   `json:"sex,omitempty"`
	Conditions       []string `json:"conditions,omitempty"`
	LifestyleFactors []string `json:"lifestyle_factors,omitempty"`
	FamilyHistory    []string `json:"family_history,omitempty"`
}

// AnalyzeDiagnosis handles POST /api/diagnosis/analyze
func (h *DiagnosisHandler) AnalyzeDiagnosis(c *gin.Context) {
	var req DiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(knowledge.NormalizeAll(req.Symptoms)) == 0 {
		badRequest(c, errNoSymptoms)
		return
	}

	sex, err := parseSex(req.PatientInfo.Sex)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	result := h.engine.AnalyzeDiagnosis(diagnosis.Request{
		Symptoms:       req.Symptoms,
		Patient:        diagnosis.Patient{Age: req.PatientInfo.Age, Sex: sex},
		MedicalHistory: req.MedicalHistory,
		TestResults:    req.TestResults,
	})

	respondRecorded(c, h.recorder, history.Entry{
		Kind:   history.KindDiagnosis,
		Input:  req,
		Result: result,
	}, nil)
}

// CheckInteractions handles POST /api/diagnosis/interactions
func (h *DiagnosisHandler) CheckInteractions(c *gin.Context) {
	var req InteractionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(knowledge.NormalizeAll(req.Medications)) == 0 {
		badRequest(c, "At least one medication is required")
		return
	}

	result := h.engine.CheckMedicationInteractions(diagnosis.InteractionRequest{
		Medications: req.Medications,
		Supplements: req.Supplements,
		FoodItems:   req.FoodItems,
	})

	respondRecorded(c, h.recorder, history.Entry{
		Kind:     history.KindInteractions,
		Input:    req,
		Result:   result,
		Severity: string(result.RiskLevel),
	}, nil)
}

// AnalyzeMetrics handles POST /api/diagnosis/metrics
func (h *DiagnosisHandler) AnalyzeMetrics(c *gin.Context) {
	var req MetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.Metrics) == 0 {
		badRequest(c, "At least one metric is required")
		return
	}

	sex, err := parseSex(req.Sex)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	result := h.engine.AnalyzeHealthMetrics(diagnosis.MetricsRequest{
		Metrics:       req.Metrics,
		Age:           req.Age,
		Sex:           sex,
		ActivityLevel: req.ActivityLevel,
	})

	respondRecorded(c, h.recorder, history.Entry{
		Kind:   history.KindMetrics,
		Input:  req,
		Result: result,
	}, nil)
}

// AssessRisk handles POST /api/diagnosis/risk
func (h *DiagnosisHandler) AssessRisk(c *gin.Context) {
	var req RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sex, err := parseSex(req.Sex)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	result := h.engine.AssessHealthRisk(diagnosis.RiskRequest{
		Age:              req.Age,
		Sex:              sex,
		Conditions:       req.Conditions,
		LifestyleFactors: req.LifestyleFactors,
		FamilyHistory:    req.FamilyHistory,
	})

	respondRecorded(c, h.recorder, history.Entry{
		Kind:     history.KindRisk,
		Input:    req,
		Result:   result,
		Severity: string(result.RiskLevel),
	}, nil)
}
