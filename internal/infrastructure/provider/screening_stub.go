package provider

import (
	"context"
	"crypto/sha256"

	"github.com/google/uuid"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/internal/domain/valueobject"
)

// Compile-time interface check.
var _ port.ExternalScreeningClient = (*ScreeningStub)(nil)

// ScreeningStub is a deterministic stand-in for the external screening
// provider in development and test environments. The same applicant always
// gets the same result, derived from a hash of the applicant ID.
type ScreeningStub struct{}

func NewScreeningStub() *ScreeningStub {
	return &ScreeningStub{}
}

// Screen returns a synthetic screening result. Most applicants come back
// clean; a deterministic slice of the ID space gets flags so downstream
// paths stay exercised.
func (s *ScreeningStub) Screen(_ context.Context, applicantID uuid.UUID) (model.ExternalCheckResult, error) {
	sum := sha256.Sum256(applicantID[:])

	result := model.ExternalCheckResult{
		PersonFound: sum[0] >= 13, // ~5% of applicants are unknown
		TotalScore:  int(sum[1]) % 60,
	}

	if sum[2] < 26 { // ~10% carry a credit-history flag
		result.Flags = append(result.Flags, model.ExternalFlag{
			Category: "CREDIT_HISTORY",
			Severity: valueobject.SeverityMedium,
			Points:   25,
		})
		result.DefaultedLoans = int(sum[3]) % 3
	}

	if sum[4] < 5 { // ~2% hit the watchlist
		result.Flags = append(result.Flags, model.ExternalFlag{
			Category: "WATCHLIST",
			Severity: valueobject.SeverityCritical,
			Points:   100,
		})
		result.HasCriminalRecord = true
		result.TotalScore += 100
	}

	return result, nil
}
