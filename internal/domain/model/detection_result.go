package model

import (
	"github.com/google/uuid"

	"github.com/lendora/screening-service/internal/domain/valueobject"
)

// FraudDetectionResult is the immutable outcome of running one or more rule
// sets over an applicant snapshot. The total score and risk level are fixed
// at construction; evaluating the same snapshot twice yields an identical
// result.
type FraudDetectionResult struct {
	applicantID uuid.UUID
	findings    []Finding
	totalScore  int
	riskLevel   valueobject.RiskLevel
}

// NewFraudDetectionResult builds a result from the findings collected during
// evaluation. The total score is the sum of finding points; the risk level is
// derived from the raw total.
func NewFraudDetectionResult(applicantID uuid.UUID, findings []Finding) FraudDetectionResult {
	total := 0
	for _, f := range findings {
		total += f.Points
	}

	copied := make([]Finding, len(findings))
	copy(copied, findings)

	return FraudDetectionResult{
		applicantID: applicantID,
		findings:    copied,
		totalScore:  total,
		riskLevel:   valueobject.RiskLevelFromRawPoints(total),
	}
}

// MergeDetectionResults combines per-domain results for the same applicant
// into one. Totals are additive and finding order is preserved.
func MergeDetectionResults(results ...FraudDetectionResult) FraudDetectionResult {
	var applicantID uuid.UUID
	var findings []Finding
	for _, r := range results {
		if applicantID == uuid.Nil {
			applicantID = r.applicantID
		}
		findings = append(findings, r.findings...)
	}
	return NewFraudDetectionResult(applicantID, findings)
}

// ApplicantID returns the screened applicant's identifier.
func (r FraudDetectionResult) ApplicantID() uuid.UUID {
	return r.applicantID
}

// Findings returns a copy of the triggered findings in evaluation order.
func (r FraudDetectionResult) Findings() []Finding {
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// TotalScore returns the sum of all finding points.
func (r FraudDetectionResult) TotalScore() int {
	return r.totalScore
}

// RiskLevel returns the level derived from the raw point total.
func (r FraudDetectionResult) RiskLevel() valueobject.RiskLevel {
	return r.riskLevel
}

// HasSeverity reports whether any finding carries the given severity.
func (r FraudDetectionResult) HasSeverity(sev valueobject.Severity) bool {
	for _, f := range r.findings {
		if f.Severity.Equal(sev) {
			return true
		}
	}
	return false
}
