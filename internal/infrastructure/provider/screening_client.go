package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/internal/domain/valueobject"
)

// Compile-time interface check.
var _ port.ExternalScreeningClient = (*ScreeningClient)(nil)

// ScreeningClient implements port.ExternalScreeningClient against the
// external fraud screening API.
type ScreeningClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewScreeningClient creates a new external screening API client.
func NewScreeningClient(apiKey, baseURL string, timeout time.Duration) *ScreeningClient {
	return &ScreeningClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// screeningResponse represents the provider's screening payload.
type screeningResponse struct {
	TotalScore        int  `json:"total_score"`
	PersonFound       bool `json:"person_found"`
	HasCriminalRecord bool `json:"has_criminal_record"`
	DefaultedLoans    int  `json:"defaulted_loans"`
	Flags             []struct {
		Category string `json:"category"`
		Severity string `json:"severity"`
		Points   int    `json:"points"`
	} `json:"flags"`
}

// Screen requests a fraud screening for the given applicant. Errors are
// returned as-is; the use case layer decides whether to degrade.
func (c *ScreeningClient) Screen(ctx context.Context, applicantID uuid.UUID) (model.ExternalCheckResult, error) {
	url := fmt.Sprintf("%s/v1/screenings/%s", c.baseURL, applicantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return model.ExternalCheckResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.ExternalCheckResult{}, fmt.Errorf("screening API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ExternalCheckResult{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.ExternalCheckResult{}, fmt.Errorf("screening API error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload screeningResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.ExternalCheckResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	result := model.ExternalCheckResult{
		TotalScore:        payload.TotalScore,
		PersonFound:       payload.PersonFound,
		HasCriminalRecord: payload.HasCriminalRecord,
		DefaultedLoans:    payload.DefaultedLoans,
	}
	for _, f := range payload.Flags {
		severity, err := valueobject.SeverityFromString(f.Severity)
		if err != nil {
			return model.ExternalCheckResult{}, fmt.Errorf("failed to parse flag severity: %w", err)
		}
		result.Flags = append(result.Flags, model.ExternalFlag{
			Category: f.Category,
			Severity: severity,
			Points:   f.Points,
		})
	}

	return result, nil
}
