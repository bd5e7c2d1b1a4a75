package usecase

import (
	"context"
	"fmt"

	"github.com/lendora/screening-service/internal/application/dto"
	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/internal/domain/service"
)

// DetectIdentityFraud is the use case for running the identity rule set over
// one applicant.
type DetectIdentityFraud struct {
	snapshots port.SnapshotProvider
	catalog   port.RuleCatalog
	ruleSet   *service.IdentityRuleSet
}

// NewDetectIdentityFraud creates a new DetectIdentityFraud use case.
func NewDetectIdentityFraud(
	snapshots port.SnapshotProvider,
	catalog port.RuleCatalog,
	ruleSet *service.IdentityRuleSet,
) *DetectIdentityFraud {
	return &DetectIdentityFraud{
		snapshots: snapshots,
		catalog:   catalog,
		ruleSet:   ruleSet,
	}
}

// Execute fetches the applicant snapshot, loads the active identity rules,
// and evaluates them.
func (uc *DetectIdentityFraud) Execute(ctx context.Context, req dto.DetectFraudRequest) (dto.DetectionResponse, error) {
	snap, err := uc.snapshots.Snapshot(ctx, req.ApplicantID)
	if err != nil {
		return dto.DetectionResponse{}, fmt.Errorf("failed to load applicant snapshot: %w", err)
	}

	rules, err := uc.catalog.ActiveRules(ctx, uc.ruleSet.Category())
	if err != nil {
		return dto.DetectionResponse{}, fmt.Errorf("failed to load identity rules: %w", err)
	}

	findings := uc.ruleSet.Evaluate(ctx, snap, rules)
	result := model.NewFraudDetectionResult(req.ApplicantID, findings)

	return dto.DetectionFromModel(result), nil
}
