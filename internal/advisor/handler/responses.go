package handler

import (
	"time"

	"counsel/internal/domain"
	"counsel/internal/history"
)

// AdviseResponse is the HTTP response for POST /advise.
type AdviseResponse struct {
	ID              string                  `json:"id"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Analysis        domain.Analysis         `json:"analysis"`
	DecisionMatrix  *domain.DecisionMatrix  `json:"decision_matrix,omitempty"`
	Reasoning       string                  `json:"reasoning"`
	Confidence      float64                 `json:"confidence"`
	Metadata        MetadataResponse        `json:"metadata"`
}

// MetadataResponse is the metadata portion of the response. Processing time
// is exposed in milliseconds rather than Go's duration encoding.
type MetadataResponse struct {
	AnalysisMethod   string    `json:"analysis_method"`
	DataPoints       int       `json:"data_points"`
	ProcessingTimeMS float64   `json:"processing_time_ms"`
	Timestamp        time.Time `json:"timestamp"`
}

// FromResult converts a domain result to an HTTP response.
func FromResult(result *domain.Result) *AdviseResponse {
	return &AdviseResponse{
		ID:              result.ID.String(),
		Recommendations: result.Recommendations,
		Analysis:        result.Analysis,
		DecisionMatrix:  result.DecisionMatrix,
		Reasoning:       result.Reasoning,
		Confidence:      result.Confidence,
		Metadata: MetadataResponse{
			AnalysisMethod:   result.Metadata.AnalysisMethod,
			DataPoints:       result.Metadata.DataPoints,
			ProcessingTimeMS: float64(result.Metadata.ProcessingTime) / float64(time.Millisecond),
			Timestamp:        result.Metadata.Timestamp,
		},
	}
}

// HistoryResponse is the HTTP response for GET /advise/history.
type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

// HistoryEntryResponse is one summarized past invocation.
type HistoryEntryResponse struct {
	ID              string    `json:"id"`
	Domain          string    `json:"domain"`
	Objective       string    `json:"objective"`
	Recommendations int       `json:"recommendations"`
	Confidence      float64   `json:"confidence"`
	RiskLevel       string    `json:"risk_level"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromHistory converts history entries to an HTTP response.
func FromHistory(entries []history.Entry) *HistoryResponse {
	out := &HistoryResponse{Entries: make([]HistoryEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		out.Entries = append(out.Entries, HistoryEntryResponse{
			ID:              entry.ID.String(),
			Domain:          entry.Context.Domain,
			Objective:       entry.Context.Objective,
			Recommendations: len(entry.Result.Recommendations),
			Confidence:      entry.Result.Confidence,
			RiskLevel:       string(entry.Result.Analysis.Risk.Level),
			CreatedAt:       entry.CreatedAt,
		})
	}
	return out
}
