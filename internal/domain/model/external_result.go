package model

import "github.com/lendora/screening-service/internal/domain/valueobject"

// DegradedExternalScore is the conservative score assumed when the external
// screening provider fails or times out. It keeps a provider outage from
// silently scoring applicants as clean without, by itself, pushing them into
// rejection territory.
const DegradedExternalScore = 40

// ExternalFlag is one fraud indicator reported by the external screening
// provider.
type ExternalFlag struct {
	Category string
	Severity valueobject.Severity
	Points   int
}

// ExternalCheckResult is the external provider's screening output. The
// provider contract guarantees a result object is always produced; when the
// call itself fails the engine substitutes DegradedExternalResult.
type ExternalCheckResult struct {
	TotalScore        int
	Flags             []ExternalFlag
	PersonFound       bool
	HasCriminalRecord bool
	DefaultedLoans    int
	Degraded          bool
}

// DegradedExternalResult is the stand-in used when the external screening
// call fails. The result is explicitly marked so downstream consumers can
// distinguish "provider said clean" from "provider unavailable".
func DegradedExternalResult() ExternalCheckResult {
	return ExternalCheckResult{
		TotalScore: DegradedExternalScore,
		Degraded:   true,
	}
}

// HasCriticalFlag reports whether any external flag carries CRITICAL
// severity.
func (r ExternalCheckResult) HasCriticalFlag() bool {
	for _, f := range r.Flags {
		if f.Severity.Equal(valueobject.SeverityCritical) {
			return true
		}
	}
	return false
}
