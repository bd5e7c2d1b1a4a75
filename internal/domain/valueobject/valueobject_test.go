package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendora/screening-service/internal/domain/valueobject"
)

func TestSeverityFromString(t *testing.T) {
	for _, s := range []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"} {
		sev, err := valueobject.SeverityFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, sev.String())
	}

	_, err := valueobject.SeverityFromString("EXTREME")
	assert.Error(t, err)
}

func TestSeverityWeight(t *testing.T) {
	tests := []struct {
		severity valueobject.Severity
		weight   int
	}{
		{valueobject.SeverityCritical, 15},
		{valueobject.SeverityHigh, 10},
		{valueobject.SeverityMedium, 5},
		{valueobject.SeverityLow, 2},
		{valueobject.Severity{}, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.weight, tt.severity.Weight())
	}
}

func TestRiskLevelFromNormalizedScore(t *testing.T) {
	tests := []struct {
		score int
		want  valueobject.RiskLevel
	}{
		{0, valueobject.RiskLevelClean},
		{14, valueobject.RiskLevelClean},
		{15, valueobject.RiskLevelLow},
		{34, valueobject.RiskLevelLow},
		{35, valueobject.RiskLevelMedium},
		{59, valueobject.RiskLevelMedium},
		{60, valueobject.RiskLevelHigh},
		{79, valueobject.RiskLevelHigh},
		{80, valueobject.RiskLevelCritical},
		{100, valueobject.RiskLevelCritical},
	}

	for _, tt := range tests {
		assert.True(t, tt.want.Equal(valueobject.RiskLevelFromNormalizedScore(tt.score)),
			"score %d should map to %s", tt.score, tt.want)
	}
}

func TestRiskLevelFromRawPoints(t *testing.T) {
	tests := []struct {
		points int
		want   valueobject.RiskLevel
	}{
		{0, valueobject.RiskLevelClean},
		{1, valueobject.RiskLevelLow},
		{29, valueobject.RiskLevelLow},
		{30, valueobject.RiskLevelMedium},
		{59, valueobject.RiskLevelMedium},
		{60, valueobject.RiskLevelHigh},
		{99, valueobject.RiskLevelHigh},
		{100, valueobject.RiskLevelCritical},
		{500, valueobject.RiskLevelCritical},
	}

	for _, tt := range tests {
		assert.True(t, tt.want.Equal(valueobject.RiskLevelFromRawPoints(tt.points)),
			"points %d should map to %s", tt.points, tt.want)
	}
}

func TestRiskLevelAtLeast(t *testing.T) {
	assert.True(t, valueobject.RiskLevelCritical.AtLeast(valueobject.RiskLevelHigh))
	assert.True(t, valueobject.RiskLevelHigh.AtLeast(valueobject.RiskLevelHigh))
	assert.False(t, valueobject.RiskLevelLow.AtLeast(valueobject.RiskLevelMedium))
	assert.True(t, valueobject.RiskLevelClean.AtLeast(valueobject.RiskLevel{}))
}

func TestRecommendationFromString(t *testing.T) {
	for _, s := range []string{"APPROVE", "REVIEW", "REJECT"} {
		rec, err := valueobject.RecommendationFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, rec.String())
	}

	_, err := valueobject.RecommendationFromString("DECLINE")
	assert.Error(t, err)

	assert.True(t, valueobject.RecommendationReject.IsReject())
	assert.False(t, valueobject.RecommendationReject.IsApprove())
}

func TestRuleCategoryFromString(t *testing.T) {
	cat, err := valueobject.RuleCategoryFromString("IDENTITY")
	require.NoError(t, err)
	assert.True(t, cat.Equal(valueobject.CategoryIdentity))

	_, err = valueobject.RuleCategoryFromString("VEHICLE")
	assert.Error(t, err)
}
