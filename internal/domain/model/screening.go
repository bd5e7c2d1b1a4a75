package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lendora/screening-service/internal/domain/event"
	"github.com/lendora/screening-service/internal/domain/valueobject"
	"github.com/lendora/screening-service/pkg/events"
)

// SeverityCounts tallies findings by severity across internal and external
// sources.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Total returns the number of counted findings.
func (c SeverityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// ScoreBreakdown retains every intermediate value of the normalization
// formula. Compliance requires the scoring to be reproducible from the
// breakdown alone, so this is persisted with the screening.
type ScoreBreakdown struct {
	InternalRawPoints int            `json:"internal_raw_points"`
	ExternalRawPoints int            `json:"external_raw_points"`
	InternalFindings  int            `json:"internal_findings"`
	ExternalFlags     int            `json:"external_flags"`
	SeverityCounts    SeverityCounts `json:"severity_counts"`
	SeverityScore     int            `json:"severity_score"`
	PointsScore       float64        `json:"points_score"`
	NormalizedScore   int            `json:"normalized_score"`
	Formula           string         `json:"formula"`
}

// ScoreOutcome is what the scoring engine computes from an internal and an
// external result.
type ScoreOutcome struct {
	NormalizedScore int
	RiskLevel       valueobject.RiskLevel
	Recommendation  valueobject.Recommendation
	Breakdown       ScoreBreakdown
	Degraded        bool
}

// EnhancedScoringResult is the aggregate root for one blended screening: the
// internal rule findings, the external provider result, and the normalized
// score with its audit breakdown. It is constructed fully populated and not
// mutated afterwards.
type EnhancedScoringResult struct {
	events.Collector

	id             uuid.UUID
	applicantID    uuid.UUID
	internal       FraudDetectionResult
	external       ExternalCheckResult
	normalized     int
	riskLevel      valueobject.RiskLevel
	recommendation valueobject.Recommendation
	breakdown      ScoreBreakdown
	degraded       bool
	screenedAt     time.Time
}

// NewEnhancedScoringResult assembles the screening aggregate from its parts
// and records the domain events the outcome warrants.
func NewEnhancedScoringResult(
	applicantID uuid.UUID,
	internal FraudDetectionResult,
	external ExternalCheckResult,
	outcome ScoreOutcome,
) (*EnhancedScoringResult, error) {
	if applicantID == uuid.Nil {
		return nil, fmt.Errorf("applicant ID is required")
	}
	if outcome.NormalizedScore < 0 || outcome.NormalizedScore > 100 {
		return nil, fmt.Errorf("normalized score must be between 0 and 100, got %d", outcome.NormalizedScore)
	}
	if outcome.RiskLevel.IsZero() || outcome.Recommendation.IsZero() {
		return nil, fmt.Errorf("score outcome is incomplete")
	}

	r := &EnhancedScoringResult{
		id:             uuid.New(),
		applicantID:    applicantID,
		internal:       internal,
		external:       external,
		normalized:     outcome.NormalizedScore,
		riskLevel:      outcome.RiskLevel,
		recommendation: outcome.Recommendation,
		breakdown:      outcome.Breakdown,
		degraded:       outcome.Degraded,
		screenedAt:     time.Now().UTC(),
	}

	r.Record(event.ScreeningCompleted{
		ScreeningID:     r.id,
		ApplicantID:     r.applicantID,
		NormalizedScore: r.normalized,
		RiskLevel:       r.riskLevel.String(),
		Recommendation:  r.recommendation.String(),
		Degraded:        r.degraded,
		FindingCount:    len(internal.Findings()) + len(external.Flags),
		ScreenedAt:      r.screenedAt,
	})

	if r.riskLevel.Equal(valueobject.RiskLevelCritical) {
		codes := make([]string, 0, len(internal.Findings()))
		for _, f := range internal.Findings() {
			codes = append(codes, f.RuleCode)
		}
		r.Record(event.HighRiskApplicantDetected{
			ScreeningID:     r.id,
			ApplicantID:     r.applicantID,
			NormalizedScore: r.normalized,
			RuleCodes:       codes,
			DetectedAt:      r.screenedAt,
		})
	}

	return r, nil
}

// ReconstructEnhancedScoringResult rebuilds a screening from persisted data.
// No validation, no events.
func ReconstructEnhancedScoringResult(
	id, applicantID uuid.UUID,
	internal FraudDetectionResult,
	external ExternalCheckResult,
	normalized int,
	riskLevel valueobject.RiskLevel,
	recommendation valueobject.Recommendation,
	breakdown ScoreBreakdown,
	degraded bool,
	screenedAt time.Time,
) *EnhancedScoringResult {
	return &EnhancedScoringResult{
		id:             id,
		applicantID:    applicantID,
		internal:       internal,
		external:       external,
		normalized:     normalized,
		riskLevel:      riskLevel,
		recommendation: recommendation,
		breakdown:      breakdown,
		degraded:       degraded,
		screenedAt:     screenedAt,
	}
}

// --- Accessors ---

func (r *EnhancedScoringResult) ID() uuid.UUID                { return r.id }
func (r *EnhancedScoringResult) ApplicantID() uuid.UUID       { return r.applicantID }
func (r *EnhancedScoringResult) Internal() FraudDetectionResult { return r.internal }
func (r *EnhancedScoringResult) External() ExternalCheckResult  { return r.external }
func (r *EnhancedScoringResult) NormalizedScore() int         { return r.normalized }
func (r *EnhancedScoringResult) RiskLevel() valueobject.RiskLevel { return r.riskLevel }
func (r *EnhancedScoringResult) Recommendation() valueobject.Recommendation {
	return r.recommendation
}
func (r *EnhancedScoringResult) Breakdown() ScoreBreakdown { return r.breakdown }
func (r *EnhancedScoringResult) Degraded() bool            { return r.degraded }
func (r *EnhancedScoringResult) ScreenedAt() time.Time     { return r.screenedAt }
