package domain

import (
	"time"

	id "counsel/pkg/domain"
)

// RiskLevel is the qualitative summary of accumulated risk factors.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// OpportunityLevel is the qualitative summary of identified opportunity areas.
type OpportunityLevel string

const (
	OpportunityLow         OpportunityLevel = "low"
	OpportunityMedium      OpportunityLevel = "medium"
	OpportunityHigh        OpportunityLevel = "high"
	OpportunityExceptional OpportunityLevel = "exceptional"
)

// RiskAssessment pairs each identified risk factor with a mitigation.
type RiskAssessment struct {
	Level       RiskLevel `json:"level"`
	Factors     []string  `json:"factors"`
	Mitigations []string  `json:"mitigations"`
}

// OpportunityAssessment lists the opportunity areas derived from the context.
type OpportunityAssessment struct {
	Level    OpportunityLevel `json:"level"`
	Areas    []string         `json:"areas"`
	Timeline string           `json:"timeline"`
}

// Analysis is the qualitative half of a result.
type Analysis struct {
	Summary     string                `json:"summary"`
	KeyFindings []string              `json:"key_findings"`
	Risk        RiskAssessment        `json:"risk_assessment"`
	Opportunity OpportunityAssessment `json:"opportunity_assessment"`
}

// Metadata describes how a result was produced.
type Metadata struct {
	AnalysisMethod string        `json:"analysis_method"`
	DataPoints     int           `json:"data_points"`
	ProcessingTime time.Duration `json:"processing_time"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Result is the engine's complete answer: ranked recommendations, analysis,
// the optional decision matrix, deterministic reasoning text, and aggregate
// confidence.
type Result struct {
	ID              id.AdviceID      `json:"id"`
	Recommendations []Recommendation `json:"recommendations"`
	Analysis        Analysis         `json:"analysis"`
	DecisionMatrix  *DecisionMatrix  `json:"decision_matrix,omitempty"`
	Reasoning       string           `json:"reasoning"`
	Confidence      float64          `json:"confidence"`
	Metadata        Metadata         `json:"metadata"`
}
