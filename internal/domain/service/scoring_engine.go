package service

import (
	"math"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/valueobject"
)

const (
	severityScoreCap = 60
	pointsScoreCap   = 40.0

	// maxCombinedRawPoints anchors the raw-points normalization. Raw totals at
	// or above this value saturate the points portion of the score.
	maxCombinedRawPoints = 800.0

	reviewScoreThreshold = 35

	scoreFormula = "min(60, 15*critical + 10*high + 5*medium + 2*low) + min(40, rawPoints/800*40)"
)

// ScoringEngine blends the internal rule findings and the external screening
// result into one normalized 0-100 score with a routing recommendation. The
// two sources use incompatible raw point scales, so each contributes through
// its own capped sub-score.
type ScoringEngine struct{}

func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// Normalize computes the blended score outcome. Severity counts from both
// sources drive the severity portion; the combined raw point total drives the
// points portion. Reject overrides apply regardless of the numeric score.
func (e *ScoringEngine) Normalize(internal model.FraudDetectionResult, external model.ExternalCheckResult) model.ScoreOutcome {
	counts := severityCounts(internal, external)

	severityScore := 15*counts.Critical + 10*counts.High + 5*counts.Medium + 2*counts.Low
	if severityScore > severityScoreCap {
		severityScore = severityScoreCap
	}

	rawPoints := internal.TotalScore() + external.TotalScore
	pointsScore := float64(rawPoints) / maxCombinedRawPoints * pointsScoreCap
	if pointsScore > pointsScoreCap {
		pointsScore = pointsScoreCap
	}
	if pointsScore < 0 {
		pointsScore = 0
	}

	normalized := int(math.Round(float64(severityScore) + pointsScore))
	if normalized > 100 {
		normalized = 100
	}
	if normalized < 0 {
		normalized = 0
	}

	level := valueobject.RiskLevelFromNormalizedScore(normalized)
	recommendation := e.recommend(normalized, level, internal, external)

	return model.ScoreOutcome{
		NormalizedScore: normalized,
		RiskLevel:       level,
		Recommendation:  recommendation,
		Breakdown: model.ScoreBreakdown{
			InternalRawPoints: internal.TotalScore(),
			ExternalRawPoints: external.TotalScore,
			InternalFindings:  len(internal.Findings()),
			ExternalFlags:     len(external.Flags),
			SeverityCounts:    counts,
			SeverityScore:     severityScore,
			PointsScore:       pointsScore,
			NormalizedScore:   normalized,
			Formula:           scoreFormula,
		},
		Degraded: external.Degraded,
	}
}

// recommend applies the routing policy. Any critical indicator, a criminal
// record, defaulted loans, or a HIGH-or-worse risk level rejects outright;
// scores in the review band go to manual review. A degraded external result
// never yields an unattended approval.
func (e *ScoringEngine) recommend(score int, level valueobject.RiskLevel, internal model.FraudDetectionResult, external model.ExternalCheckResult) valueobject.Recommendation {
	switch {
	case internal.HasSeverity(valueobject.SeverityCritical),
		external.HasCriticalFlag(),
		external.HasCriminalRecord,
		external.DefaultedLoans > 0,
		level.AtLeast(valueobject.RiskLevelHigh):
		return valueobject.RecommendationReject
	case score >= reviewScoreThreshold:
		return valueobject.RecommendationReview
	case external.Degraded:
		return valueobject.RecommendationReview
	default:
		return valueobject.RecommendationApprove
	}
}

func severityCounts(internal model.FraudDetectionResult, external model.ExternalCheckResult) model.SeverityCounts {
	var counts model.SeverityCounts
	for _, f := range internal.Findings() {
		tally(&counts, f.Severity)
	}
	for _, f := range external.Flags {
		tally(&counts, f.Severity)
	}
	return counts
}

func tally(counts *model.SeverityCounts, sev valueobject.Severity) {
	switch {
	case sev.Equal(valueobject.SeverityCritical):
		counts.Critical++
	case sev.Equal(valueobject.SeverityHigh):
		counts.High++
	case sev.Equal(valueobject.SeverityMedium):
		counts.Medium++
	case sev.Equal(valueobject.SeverityLow):
		counts.Low++
	}
}
