package audit

import (
	"time"

	id "counsel/pkg/domain"
)

// Action identifies what an audit event records.
const (
	ActionAdviceIssued   = "advice_issued"
	ActionAdviceRejected = "advice_rejected"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp       time.Time   `json:"timestamp"`
	Action          string      `json:"action"`
	AdviceID        id.AdviceID `json:"advice_id"`
	RequestID       string      `json:"request_id,omitempty"`
	ClientIP        string      `json:"client_ip,omitempty"`
	Domain          string      `json:"domain"`
	Objective       string      `json:"objective"`
	Recommendations int         `json:"recommendations"`
	TopCategory     string      `json:"top_category,omitempty"`
	Confidence      float64     `json:"confidence"`
	RiskLevel       string      `json:"risk_level"`
	// Reason carries the validation failure for rejection events.
	Reason string `json:"reason,omitempty"`
}
