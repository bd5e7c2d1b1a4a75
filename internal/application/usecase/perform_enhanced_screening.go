package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lendora/screening-service/internal/application/dto"
	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/internal/domain/service"
	"github.com/lendora/screening-service/pkg/observability"
)

// PerformEnhancedScreening runs the full pipeline for one applicant: both
// internal rule sets, the external provider check, score normalization,
// persistence, and event publication.
type PerformEnhancedScreening struct {
	snapshots       port.SnapshotProvider
	catalog         port.RuleCatalog
	identity        *service.IdentityRuleSet
	employment      *service.EmploymentRuleSet
	external        port.ExternalScreeningClient
	externalTimeout time.Duration
	scorer          *service.ScoringEngine
	repo            port.ScreeningRepository
	publisher       port.EventPublisher
	metrics         *observability.ScreeningMetrics
	logger          *slog.Logger
}

// NewPerformEnhancedScreening creates a new PerformEnhancedScreening use
// case. metrics may be nil when instrumentation is not wired.
func NewPerformEnhancedScreening(
	snapshots port.SnapshotProvider,
	catalog port.RuleCatalog,
	identity *service.IdentityRuleSet,
	employment *service.EmploymentRuleSet,
	external port.ExternalScreeningClient,
	externalTimeout time.Duration,
	scorer *service.ScoringEngine,
	repo port.ScreeningRepository,
	publisher port.EventPublisher,
	metrics *observability.ScreeningMetrics,
	logger *slog.Logger,
) *PerformEnhancedScreening {
	return &PerformEnhancedScreening{
		snapshots:       snapshots,
		catalog:         catalog,
		identity:        identity,
		employment:      employment,
		external:        external,
		externalTimeout: externalTimeout,
		scorer:          scorer,
		repo:            repo,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute screens the applicant end to end. An unreachable external provider
// degrades the screening instead of failing it; a failing event publish is
// logged and tolerated because the screening itself is already persisted.
func (uc *PerformEnhancedScreening) Execute(ctx context.Context, req dto.ScreenApplicantRequest) (dto.ScreeningResponse, error) {
	snap, err := uc.snapshots.Snapshot(ctx, req.ApplicantID)
	if err != nil {
		return dto.ScreeningResponse{}, fmt.Errorf("failed to load applicant snapshot: %w", err)
	}

	internal, err := uc.evaluateInternal(ctx, snap)
	if err != nil {
		return dto.ScreeningResponse{}, err
	}

	external := uc.screenExternally(ctx, req)

	outcome := uc.scorer.Normalize(internal, external)

	screening, err := model.NewEnhancedScoringResult(req.ApplicantID, internal, external, outcome)
	if err != nil {
		return dto.ScreeningResponse{}, fmt.Errorf("failed to assemble screening: %w", err)
	}

	if err := uc.repo.Save(ctx, screening); err != nil {
		return dto.ScreeningResponse{}, fmt.Errorf("failed to save screening: %w", err)
	}

	if evts := screening.Drain(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.Error("failed to publish screening events",
				slog.String("screening_id", screening.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}

	uc.record(screening)

	return dto.ScreeningFromModel(screening), nil
}

func (uc *PerformEnhancedScreening) evaluateInternal(ctx context.Context, snap model.ApplicantSnapshot) (model.FraudDetectionResult, error) {
	identityRules, err := uc.catalog.ActiveRules(ctx, uc.identity.Category())
	if err != nil {
		return model.FraudDetectionResult{}, fmt.Errorf("failed to load identity rules: %w", err)
	}
	employmentRules, err := uc.catalog.ActiveRules(ctx, uc.employment.Category())
	if err != nil {
		return model.FraudDetectionResult{}, fmt.Errorf("failed to load employment rules: %w", err)
	}

	findings := uc.identity.Evaluate(ctx, snap, identityRules)
	findings = append(findings, uc.employment.Evaluate(ctx, snap, employmentRules)...)

	return model.NewFraudDetectionResult(snap.Applicant.ID, findings), nil
}

func (uc *PerformEnhancedScreening) screenExternally(ctx context.Context, req dto.ScreenApplicantRequest) model.ExternalCheckResult {
	callCtx, cancel := context.WithTimeout(ctx, uc.externalTimeout)
	defer cancel()

	result, err := uc.external.Screen(callCtx, req.ApplicantID)
	if err != nil {
		uc.logger.Warn("external screening unavailable, proceeding degraded",
			slog.String("applicant_id", req.ApplicantID.String()),
			slog.String("error", err.Error()),
		)
		if uc.metrics != nil {
			uc.metrics.ExternalDegraded.Inc()
		}
		return model.DegradedExternalResult()
	}
	return result
}

func (uc *PerformEnhancedScreening) record(screening *model.EnhancedScoringResult) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ScreeningsTotal.WithLabelValues(screening.Recommendation().String()).Inc()
	uc.metrics.NormalizedScore.Observe(float64(screening.NormalizedScore()))
	for _, f := range screening.Internal().Findings() {
		uc.metrics.FindingsTotal.WithLabelValues(f.Category.String(), f.Severity.String()).Inc()
	}
}
