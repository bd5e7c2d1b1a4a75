package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/valueobject"
	"github.com/lendora/screening-service/pkg/events"
)

// ErrApplicantNotFound is returned when an applicant ID does not resolve to
// a record. It aborts the whole screening for that applicant.
var ErrApplicantNotFound = errors.New("applicant not found")

// ErrScreeningNotFound is returned when no screening exists for the
// requested identifier.
var ErrScreeningNotFound = errors.New("screening not found")

// RuleCatalog looks up the externally managed rule policy. Only active
// definitions are returned; an unknown category yields an empty map, not an
// error, so every rule in that category silently skips.
type RuleCatalog interface {
	ActiveRules(ctx context.Context, category valueobject.RuleCategory) (map[string]model.RuleDefinition, error)
}

// SnapshotProvider fetches the read-only applicant snapshot the rule sets
// evaluate. Missing sub-records (no employment, no documents) are returned as
// nil/empty, never as errors; only a missing applicant yields
// ErrApplicantNotFound.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, applicantID uuid.UUID) (model.ApplicantSnapshot, error)
}

// ApplicantDirectory answers indexed uniqueness queries against the
// applicant store. Each count excludes the applicant being screened.
type ApplicantDirectory interface {
	CountByNationalID(ctx context.Context, number string, exclude uuid.UUID) (int, error)
	CountByTaxID(ctx context.Context, number string, exclude uuid.UUID) (int, error)
	CountByPhone(ctx context.Context, phone string, exclude uuid.UUID) (int, error)
	CountByEmail(ctx context.Context, email string, exclude uuid.UUID) (int, error)
}

// ExternalScreeningClient calls the external fraud screening provider. A
// failure here must not abort the screening; callers substitute
// model.DegradedExternalResult.
type ExternalScreeningClient interface {
	Screen(ctx context.Context, applicantID uuid.UUID) (model.ExternalCheckResult, error)
}

// ScreeningRepository persists completed screenings for audit and retrieval.
type ScreeningRepository interface {
	Save(ctx context.Context, screening *model.EnhancedScoringResult) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EnhancedScoringResult, error)
	FindLatestByApplicant(ctx context.Context, applicantID uuid.UUID) (*model.EnhancedScoringResult, error)
}

// EventPublisher sends domain events to the messaging infrastructure.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
