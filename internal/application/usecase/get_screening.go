package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lendora/screening-service/internal/application/dto"
	"github.com/lendora/screening-service/internal/domain/port"
)

// GetScreening retrieves a persisted screening, either by its own ID or as
// the latest one on file for an applicant.
type GetScreening struct {
	repo port.ScreeningRepository
}

// NewGetScreening creates a new GetScreening use case.
func NewGetScreening(repo port.ScreeningRepository) *GetScreening {
	return &GetScreening{repo: repo}
}

// Execute resolves the request by screening ID when one is given, otherwise
// by applicant ID.
func (uc *GetScreening) Execute(ctx context.Context, req dto.GetScreeningRequest) (dto.ScreeningResponse, error) {
	if req.ScreeningID == uuid.Nil && req.ApplicantID == uuid.Nil {
		return dto.ScreeningResponse{}, fmt.Errorf("either screening ID or applicant ID is required")
	}

	if req.ScreeningID != uuid.Nil {
		screening, err := uc.repo.FindByID(ctx, req.ScreeningID)
		if err != nil {
			return dto.ScreeningResponse{}, fmt.Errorf("failed to find screening: %w", err)
		}
		return dto.ScreeningFromModel(screening), nil
	}

	screening, err := uc.repo.FindLatestByApplicant(ctx, req.ApplicantID)
	if err != nil {
		return dto.ScreeningResponse{}, fmt.Errorf("failed to find screening for applicant: %w", err)
	}
	return dto.ScreeningFromModel(screening), nil
}
