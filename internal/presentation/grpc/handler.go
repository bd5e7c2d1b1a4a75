package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lendora/screening-service/internal/application/dto"
	"github.com/lendora/screening-service/internal/application/usecase"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that ScreeningServiceHandler implements ScreeningServiceServer.
var _ ScreeningServiceServer = (*ScreeningServiceHandler)(nil)

// ScreeningServiceHandler implements the gRPC ScreeningServiceServer interface.
type ScreeningServiceHandler struct {
	UnimplementedScreeningServiceServer
	detectIdentity   *usecase.DetectIdentityFraud
	detectEmployment *usecase.DetectEmploymentFraud
	screenApplicant  *usecase.PerformEnhancedScreening
	getScreening     *usecase.GetScreening
	logger           *slog.Logger
}

// NewScreeningServiceHandler creates a new gRPC handler.
func NewScreeningServiceHandler(
	detectIdentity *usecase.DetectIdentityFraud,
	detectEmployment *usecase.DetectEmploymentFraud,
	screenApplicant *usecase.PerformEnhancedScreening,
	getScreening *usecase.GetScreening,
	logger *slog.Logger,
) *ScreeningServiceHandler {
	return &ScreeningServiceHandler{
		detectIdentity:   detectIdentity,
		detectEmployment: detectEmployment,
		screenApplicant:  screenApplicant,
		getScreening:     getScreening,
		logger:           logger,
	}
}

// Proto-aligned request/response message types.

// DetectFraudRequest represents the proto DetectFraudRequest message.
type DetectFraudRequest struct {
	ApplicantID string `json:"applicant_id"`
}

// FindingMsg represents the proto Finding message.
type FindingMsg struct {
	RuleCode    string `json:"rule_code"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Points      int32  `json:"points"`
	Description string `json:"description"`
	Details     string `json:"details,omitempty"`
}

// DetectFraudResponse represents the proto DetectFraudResponse message.
type DetectFraudResponse struct {
	ApplicantID string        `json:"applicant_id"`
	Findings    []*FindingMsg `json:"findings"`
	TotalScore  int32         `json:"total_score"`
	RiskLevel   string        `json:"risk_level"`
}

// ScreenApplicantRequest represents the proto ScreenApplicantRequest message.
type ScreenApplicantRequest struct {
	ApplicantID string `json:"applicant_id"`
}

// GetScreeningRequest represents the proto GetScreeningRequest message.
// Exactly one of screening_id and applicant_id must be set.
type GetScreeningRequest struct {
	ScreeningID string `json:"screening_id"`
	ApplicantID string `json:"applicant_id"`
}

// ExternalFlagMsg represents the proto ExternalFlag message.
type ExternalFlagMsg struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Points   int32  `json:"points"`
}

// SeverityCountsMsg represents the proto SeverityCounts message.
type SeverityCountsMsg struct {
	Critical int32 `json:"critical"`
	High     int32 `json:"high"`
	Medium   int32 `json:"medium"`
	Low      int32 `json:"low"`
}

// ScoreBreakdownMsg represents the proto ScoreBreakdown message.
type ScoreBreakdownMsg struct {
	InternalRawPoints int32              `json:"internal_raw_points"`
	ExternalRawPoints int32              `json:"external_raw_points"`
	InternalFindings  int32              `json:"internal_findings"`
	ExternalFlags     int32              `json:"external_flags"`
	SeverityCounts    *SeverityCountsMsg `json:"severity_counts"`
	SeverityScore     int32              `json:"severity_score"`
	PointsScore       float64            `json:"points_score"`
}

// ScreeningMsg represents the proto Screening message.
type ScreeningMsg struct {
	ID              string             `json:"id"`
	ApplicantID     string             `json:"applicant_id"`
	NormalizedScore int32              `json:"normalized_score"`
	RiskLevel       string             `json:"risk_level"`
	Recommendation  string             `json:"recommendation"`
	Degraded        bool               `json:"degraded"`
	Findings        []*FindingMsg      `json:"findings"`
	ExternalFlags   []*ExternalFlagMsg `json:"external_flags"`
	Breakdown       *ScoreBreakdownMsg `json:"breakdown"`
	ScreenedAt      string             `json:"screened_at"`
}

// ScreeningResponse represents the proto ScreeningResponse message.
type ScreeningResponse struct {
	Screening *ScreeningMsg `json:"screening"`
}

// DetectIdentityFraud evaluates the identity rule set for an applicant.
func (h *ScreeningServiceHandler) DetectIdentityFraud(ctx context.Context, req *DetectFraudRequest) (*DetectFraudResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOfficer, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	applicantID, err := parseApplicantID(req)
	if err != nil {
		return nil, err
	}

	result, err := h.detectIdentity.Execute(ctx, dto.DetectFraudRequest{ApplicantID: applicantID})
	if err != nil {
		return nil, h.mapError(err, "failed to detect identity fraud", applicantID)
	}
	return detectionToMsg(result), nil
}

// DetectEmploymentFraud evaluates the employment rule set for an applicant.
func (h *ScreeningServiceHandler) DetectEmploymentFraud(ctx context.Context, req *DetectFraudRequest) (*DetectFraudResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOfficer, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	applicantID, err := parseApplicantID(req)
	if err != nil {
		return nil, err
	}

	result, err := h.detectEmployment.Execute(ctx, dto.DetectFraudRequest{ApplicantID: applicantID})
	if err != nil {
		return nil, h.mapError(err, "failed to detect employment fraud", applicantID)
	}
	return detectionToMsg(result), nil
}

// PerformEnhancedScreening runs the full internal plus external screening
// pipeline and persists the outcome.
func (h *ScreeningServiceHandler) PerformEnhancedScreening(ctx context.Context, req *ScreenApplicantRequest) (*ScreeningResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOfficer, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	applicantID, err := uuid.Parse(req.ApplicantID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid applicant_id: %v", err)
	}

	h.logger.Info("screening applicant",
		slog.String("applicant_id", applicantID.String()),
	)

	result, err := h.screenApplicant.Execute(ctx, dto.ScreenApplicantRequest{ApplicantID: applicantID})
	if err != nil {
		return nil, h.mapError(err, "failed to screen applicant", applicantID)
	}
	return &ScreeningResponse{Screening: screeningToMsg(result)}, nil
}

// GetScreening retrieves a persisted screening by its ID or the latest one
// for an applicant.
func (h *ScreeningServiceHandler) GetScreening(ctx context.Context, req *GetScreeningRequest) (*ScreeningResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOfficer, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	query := dto.GetScreeningRequest{}
	if req.ScreeningID != "" {
		id, err := uuid.Parse(req.ScreeningID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid screening_id: %v", err)
		}
		query.ScreeningID = id
	}
	if req.ApplicantID != "" {
		id, err := uuid.Parse(req.ApplicantID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid applicant_id: %v", err)
		}
		query.ApplicantID = id
	}
	if query.ScreeningID == uuid.Nil && query.ApplicantID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "screening_id or applicant_id is required")
	}

	result, err := h.getScreening.Execute(ctx, query)
	if err != nil {
		return nil, h.mapError(err, "failed to get screening", query.ApplicantID)
	}
	return &ScreeningResponse{Screening: screeningToMsg(result)}, nil
}

func parseApplicantID(req *DetectFraudRequest) (uuid.UUID, error) {
	if req == nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, "request is required")
	}
	applicantID, err := uuid.Parse(req.ApplicantID)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid applicant_id: %v", err)
	}
	return applicantID, nil
}

func (h *ScreeningServiceHandler) mapError(err error, msg string, applicantID uuid.UUID) error {
	switch {
	case errors.Is(err, port.ErrApplicantNotFound):
		return status.Error(codes.NotFound, "applicant not found")
	case errors.Is(err, port.ErrScreeningNotFound):
		return status.Error(codes.NotFound, "screening not found")
	default:
		h.logger.Error(msg,
			slog.String("applicant_id", applicantID.String()),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}

func findingsToMsg(findings []dto.FindingDTO) []*FindingMsg {
	out := make([]*FindingMsg, len(findings))
	for i, f := range findings {
		out[i] = &FindingMsg{
			RuleCode:    f.RuleCode,
			Category:    f.Category,
			Severity:    f.Severity,
			Points:      int32(f.Points),
			Description: f.Description,
			Details:     f.Details,
		}
	}
	return out
}

func detectionToMsg(r dto.DetectionResponse) *DetectFraudResponse {
	return &DetectFraudResponse{
		ApplicantID: r.ApplicantID.String(),
		Findings:    findingsToMsg(r.Findings),
		TotalScore:  int32(r.TotalScore),
		RiskLevel:   r.RiskLevel,
	}
}

func screeningToMsg(r dto.ScreeningResponse) *ScreeningMsg {
	flags := make([]*ExternalFlagMsg, len(r.ExternalFlags))
	for i, f := range r.ExternalFlags {
		flags[i] = &ExternalFlagMsg{
			Category: f.Category,
			Severity: f.Severity,
			Points:   int32(f.Points),
		}
	}

	return &ScreeningMsg{
		ID:              r.ID.String(),
		ApplicantID:     r.ApplicantID.String(),
		NormalizedScore: int32(r.NormalizedScore),
		RiskLevel:       r.RiskLevel,
		Recommendation:  r.Recommendation,
		Degraded:        r.Degraded,
		Findings:        findingsToMsg(r.Findings),
		ExternalFlags:   flags,
		Breakdown: &ScoreBreakdownMsg{
			InternalRawPoints: int32(r.Breakdown.InternalRawPoints),
			ExternalRawPoints: int32(r.Breakdown.ExternalRawPoints),
			InternalFindings:  int32(r.Breakdown.InternalFindings),
			ExternalFlags:     int32(r.Breakdown.ExternalFlags),
			SeverityCounts: &SeverityCountsMsg{
				Critical: int32(r.Breakdown.SeverityCounts.Critical),
				High:     int32(r.Breakdown.SeverityCounts.High),
				Medium:   int32(r.Breakdown.SeverityCounts.Medium),
				Low:      int32(r.Breakdown.SeverityCounts.Low),
			},
			SeverityScore: int32(r.Breakdown.SeverityScore),
			PointsScore:   r.Breakdown.PointsScore,
		},
		ScreenedAt: r.ScreenedAt.UTC().Format(time.RFC3339),
	}
}
