package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendora/screening-service/internal/domain/event"
	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/valueobject"
	"github.com/lendora/screening-service/pkg/testutil"
)

func finding(severity valueobject.Severity, points int) model.Finding {
	return model.Finding{
		RuleCode: "TEST_RULE",
		Category: valueobject.CategoryIdentity,
		Severity: severity,
		Points:   points,
	}
}

func outcome(score int, level valueobject.RiskLevel, rec valueobject.Recommendation) model.ScoreOutcome {
	return model.ScoreOutcome{
		NormalizedScore: score,
		RiskLevel:       level,
		Recommendation:  rec,
	}
}

func TestNewFraudDetectionResult(t *testing.T) {
	t.Run("sums points and derives level", func(t *testing.T) {
		result := model.NewFraudDetectionResult(testutil.TestApplicantID1, []model.Finding{
			finding(valueobject.SeverityMedium, 25),
			finding(valueobject.SeverityLow, 10),
		})
		assert.Equal(t, 35, result.TotalScore())
		assert.True(t, result.RiskLevel().Equal(valueobject.RiskLevelMedium))
		assert.True(t, result.HasSeverity(valueobject.SeverityMedium))
		assert.False(t, result.HasSeverity(valueobject.SeverityCritical))
	})

	t.Run("zero findings mean zero score and clean level", func(t *testing.T) {
		result := model.NewFraudDetectionResult(testutil.TestApplicantID1, nil)
		assert.Equal(t, 0, result.TotalScore())
		assert.True(t, result.RiskLevel().Equal(valueobject.RiskLevelClean))
		assert.Empty(t, result.Findings())
	})

	t.Run("detached from the caller's slice", func(t *testing.T) {
		findings := []model.Finding{finding(valueobject.SeverityLow, 5)}
		result := model.NewFraudDetectionResult(testutil.TestApplicantID1, findings)
		findings[0].Points = 999
		assert.Equal(t, 5, result.Findings()[0].Points)
	})
}

func TestMergeDetectionResults(t *testing.T) {
	identity := model.NewFraudDetectionResult(testutil.TestApplicantID1, []model.Finding{
		finding(valueobject.SeverityMedium, 25),
	})
	employment := model.NewFraudDetectionResult(testutil.TestApplicantID1, []model.Finding{
		finding(valueobject.SeverityHigh, 50),
	})

	merged := model.MergeDetectionResults(identity, employment)

	assert.Equal(t, testutil.TestApplicantID1, merged.ApplicantID())
	assert.Equal(t, 75, merged.TotalScore())
	require.Len(t, merged.Findings(), 2)
	assert.True(t, merged.RiskLevel().Equal(valueobject.RiskLevelHigh))
}

func TestNewEnhancedScoringResult(t *testing.T) {
	internal := model.NewFraudDetectionResult(testutil.TestApplicantID1, []model.Finding{
		finding(valueobject.SeverityMedium, 25),
	})
	external := model.ExternalCheckResult{TotalScore: 10, PersonFound: true}

	t.Run("records a completion event", func(t *testing.T) {
		screening, err := model.NewEnhancedScoringResult(testutil.TestApplicantID1, internal, external,
			outcome(12, valueobject.RiskLevelLow, valueobject.RecommendationApprove))
		require.NoError(t, err)

		evts := screening.Drain()
		require.Len(t, evts, 1)
		completed, ok := evts[0].(event.ScreeningCompleted)
		require.True(t, ok)
		assert.Equal(t, screening.ID(), completed.AggregateID())
		assert.Equal(t, 12, completed.NormalizedScore)
		assert.Equal(t, "APPROVE", completed.Recommendation)
		assert.Equal(t, 1, completed.FindingCount)

		assert.Empty(t, screening.Drain())
	})

	t.Run("critical risk adds an escalation event", func(t *testing.T) {
		screening, err := model.NewEnhancedScoringResult(testutil.TestApplicantID1, internal, external,
			outcome(85, valueobject.RiskLevelCritical, valueobject.RecommendationReject))
		require.NoError(t, err)

		evts := screening.Drain()
		require.Len(t, evts, 2)
		escalation, ok := evts[1].(event.HighRiskApplicantDetected)
		require.True(t, ok)
		assert.Equal(t, []string{"TEST_RULE"}, escalation.RuleCodes)
	})

	t.Run("rejects a nil applicant", func(t *testing.T) {
		_, err := model.NewEnhancedScoringResult(uuid.Nil, internal, external,
			outcome(12, valueobject.RiskLevelLow, valueobject.RecommendationApprove))
		testutil.AssertErrorContains(t, err, "applicant ID")
	})

	t.Run("rejects an out-of-range score", func(t *testing.T) {
		_, err := model.NewEnhancedScoringResult(testutil.TestApplicantID1, internal, external,
			outcome(101, valueobject.RiskLevelCritical, valueobject.RecommendationReject))
		testutil.AssertErrorContains(t, err, "between 0 and 100")
	})

	t.Run("rejects an incomplete outcome", func(t *testing.T) {
		_, err := model.NewEnhancedScoringResult(testutil.TestApplicantID1, internal, external,
			model.ScoreOutcome{NormalizedScore: 12})
		testutil.AssertErrorContains(t, err, "incomplete")
	})
}

func TestReconstructEnhancedScoringResult(t *testing.T) {
	internal := model.NewFraudDetectionResult(testutil.TestApplicantID1, nil)
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	screening := model.ReconstructEnhancedScoringResult(
		testutil.TestScreeningID, testutil.TestApplicantID1,
		internal, model.DegradedExternalResult(),
		40, valueobject.RiskLevelMedium, valueobject.RecommendationReview,
		model.ScoreBreakdown{NormalizedScore: 40}, true, at,
	)

	assert.Equal(t, testutil.TestScreeningID, screening.ID())
	assert.Equal(t, 40, screening.NormalizedScore())
	assert.True(t, screening.Degraded())
	assert.Equal(t, at, screening.ScreenedAt())
	assert.Empty(t, screening.Drain())
}

func TestDegradedExternalResult(t *testing.T) {
	result := model.DegradedExternalResult()

	assert.True(t, result.Degraded)
	assert.Equal(t, model.DegradedExternalScore, result.TotalScore)
	assert.False(t, result.HasCriticalFlag())
}
