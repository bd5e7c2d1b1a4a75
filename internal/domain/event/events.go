package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeScreeningCompleted is emitted when an enhanced screening
	// finishes for an applicant.
	EventTypeScreeningCompleted = "screening.completed"

	// EventTypeHighRiskApplicant is emitted when a screening lands on a
	// CRITICAL risk level.
	EventTypeHighRiskApplicant = "screening.high_risk.detected"
)

// ScreeningCompleted is published after every enhanced screening.
type ScreeningCompleted struct {
	ScreeningID     uuid.UUID `json:"screening_id"`
	ApplicantID     uuid.UUID `json:"applicant_id"`
	NormalizedScore int       `json:"normalized_score"`
	RiskLevel       string    `json:"risk_level"`
	Recommendation  string    `json:"recommendation"`
	Degraded        bool      `json:"degraded"`
	FindingCount    int       `json:"finding_count"`
	ScreenedAt      time.Time `json:"screened_at"`
}

// EventType returns the event type identifier.
func (e ScreeningCompleted) EventType() string {
	return EventTypeScreeningCompleted
}

// AggregateID returns the screening ID as the aggregate identifier.
func (e ScreeningCompleted) AggregateID() uuid.UUID {
	return e.ScreeningID
}

// HighRiskApplicantDetected is published when an applicant screens at
// CRITICAL risk, so the workflow layer can escalate immediately.
type HighRiskApplicantDetected struct {
	ScreeningID     uuid.UUID `json:"screening_id"`
	ApplicantID     uuid.UUID `json:"applicant_id"`
	NormalizedScore int       `json:"normalized_score"`
	RuleCodes       []string  `json:"rule_codes"`
	DetectedAt      time.Time `json:"detected_at"`
}

// EventType returns the event type identifier.
func (e HighRiskApplicantDetected) EventType() string {
	return EventTypeHighRiskApplicant
}

// AggregateID returns the screening ID as the aggregate identifier.
func (e HighRiskApplicantDetected) AggregateID() uuid.UUID {
	return e.ScreeningID
}
