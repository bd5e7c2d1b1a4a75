package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendora/screening-service/internal/domain/model"
)

// DetectFraudRequest is the input DTO for the per-category detection use
// cases.
type DetectFraudRequest struct {
	ApplicantID uuid.UUID `json:"applicant_id"`
}

// FindingDTO is one triggered fraud indicator in a response.
type FindingDTO struct {
	RuleCode    string `json:"rule_code"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Points      int    `json:"points"`
	Description string `json:"description"`
	Details     string `json:"details,omitempty"`
}

// DetectionResponse is the output DTO of a single-category fraud detection.
type DetectionResponse struct {
	ApplicantID uuid.UUID    `json:"applicant_id"`
	Findings    []FindingDTO `json:"findings"`
	TotalScore  int          `json:"total_score"`
	RiskLevel   string       `json:"risk_level"`
}

// ScreenApplicantRequest is the input DTO for the enhanced screening use
// case.
type ScreenApplicantRequest struct {
	ApplicantID uuid.UUID `json:"applicant_id"`
}

// GetScreeningRequest retrieves a persisted screening, either by its own ID
// or the latest one for an applicant.
type GetScreeningRequest struct {
	ScreeningID uuid.UUID `json:"screening_id"`
	ApplicantID uuid.UUID `json:"applicant_id"`
}

// ExternalFlagDTO is one indicator reported by the external provider.
type ExternalFlagDTO struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Points   int    `json:"points"`
}

// ScreeningResponse is the output DTO of an enhanced screening.
type ScreeningResponse struct {
	ID              uuid.UUID            `json:"id"`
	ApplicantID     uuid.UUID            `json:"applicant_id"`
	NormalizedScore int                  `json:"normalized_score"`
	RiskLevel       string               `json:"risk_level"`
	Recommendation  string               `json:"recommendation"`
	Degraded        bool                 `json:"degraded"`
	Findings        []FindingDTO         `json:"findings"`
	ExternalFlags   []ExternalFlagDTO    `json:"external_flags"`
	Breakdown       model.ScoreBreakdown `json:"breakdown"`
	ScreenedAt      time.Time            `json:"screened_at"`
}

// FindingsFromModel maps domain findings to their DTO form.
func FindingsFromModel(findings []model.Finding) []FindingDTO {
	out := make([]FindingDTO, len(findings))
	for i, f := range findings {
		out[i] = FindingDTO{
			RuleCode:    f.RuleCode,
			Category:    f.Category.String(),
			Severity:    f.Severity.String(),
			Points:      f.Points,
			Description: f.Description,
			Details:     f.Details,
		}
	}
	return out
}

// DetectionFromModel maps a detection result to the response DTO.
func DetectionFromModel(r model.FraudDetectionResult) DetectionResponse {
	return DetectionResponse{
		ApplicantID: r.ApplicantID(),
		Findings:    FindingsFromModel(r.Findings()),
		TotalScore:  r.TotalScore(),
		RiskLevel:   r.RiskLevel().String(),
	}
}

// ScreeningFromModel maps the screening aggregate to the response DTO.
func ScreeningFromModel(s *model.EnhancedScoringResult) ScreeningResponse {
	external := s.External()
	flags := make([]ExternalFlagDTO, len(external.Flags))
	for i, f := range external.Flags {
		flags[i] = ExternalFlagDTO{
			Category: f.Category,
			Severity: f.Severity.String(),
			Points:   f.Points,
		}
	}

	return ScreeningResponse{
		ID:              s.ID(),
		ApplicantID:     s.ApplicantID(),
		NormalizedScore: s.NormalizedScore(),
		RiskLevel:       s.RiskLevel().String(),
		Recommendation:  s.Recommendation().String(),
		Degraded:        s.Degraded(),
		Findings:        FindingsFromModel(s.Internal().Findings()),
		ExternalFlags:   flags,
		Breakdown:       s.Breakdown(),
		ScreenedAt:      s.ScreenedAt(),
	}
}
