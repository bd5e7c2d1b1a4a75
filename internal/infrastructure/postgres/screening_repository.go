package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/internal/domain/valueobject"
)

// ScreeningRepository implements port.ScreeningRepository using PostgreSQL.
// Findings live in their own table so auditors can query by rule code; the
// score breakdown and external flags are stored as JSONB documents.
type ScreeningRepository struct {
	pool *pgxpool.Pool
}

// NewScreeningRepository creates a new PostgreSQL-backed screening
// repository.
func NewScreeningRepository(pool *pgxpool.Pool) *ScreeningRepository {
	return &ScreeningRepository{pool: pool}
}

type externalFlagRecord struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Points   int    `json:"points"`
}

// Save persists a screening and its findings.
func (r *ScreeningRepository) Save(ctx context.Context, screening *model.EnhancedScoringResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	breakdown, err := json.Marshal(screening.Breakdown())
	if err != nil {
		return fmt.Errorf("failed to encode breakdown: %w", err)
	}

	external := screening.External()
	flags := make([]externalFlagRecord, len(external.Flags))
	for i, f := range external.Flags {
		flags[i] = externalFlagRecord{Category: f.Category, Severity: f.Severity.String(), Points: f.Points}
	}
	externalFlags, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("failed to encode external flags: %w", err)
	}

	query := `
		INSERT INTO screenings (
			id, applicant_id,
			internal_score, normalized_score, risk_level, recommendation,
			external_score, external_person_found, external_criminal_record,
			external_defaulted_loans, external_flags, degraded,
			breakdown, screened_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = tx.Exec(ctx, query,
		screening.ID(),
		screening.ApplicantID(),
		screening.Internal().TotalScore(),
		screening.NormalizedScore(),
		screening.RiskLevel().String(),
		screening.Recommendation().String(),
		external.TotalScore,
		external.PersonFound,
		external.HasCriminalRecord,
		external.DefaultedLoans,
		externalFlags,
		screening.Degraded(),
		breakdown,
		screening.ScreenedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save screening: %w", err)
	}

	for i, f := range screening.Internal().Findings() {
		_, err = tx.Exec(ctx, `
			INSERT INTO screening_findings (
				screening_id, position, rule_code, category, severity,
				points, description, details
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			screening.ID(), i, f.RuleCode, f.Category.String(), f.Severity.String(),
			f.Points, f.Description, f.Details,
		)
		if err != nil {
			return fmt.Errorf("failed to save finding: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const screeningColumns = `
	id, applicant_id,
	normalized_score, risk_level, recommendation,
	external_score, external_person_found, external_criminal_record,
	external_defaulted_loans, external_flags, degraded,
	breakdown, screened_at
`

// FindByID retrieves a screening by its unique identifier.
func (r *ScreeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EnhancedScoringResult, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE id = $1`
	return r.scanScreening(ctx, r.pool.QueryRow(ctx, query, id))
}

// FindLatestByApplicant retrieves the most recent screening for an
// applicant.
func (r *ScreeningRepository) FindLatestByApplicant(ctx context.Context, applicantID uuid.UUID) (*model.EnhancedScoringResult, error) {
	query := `SELECT ` + screeningColumns + `
		FROM screenings WHERE applicant_id = $1
		ORDER BY screened_at DESC LIMIT 1`
	return r.scanScreening(ctx, r.pool.QueryRow(ctx, query, applicantID))
}

func (r *ScreeningRepository) scanScreening(ctx context.Context, row pgx.Row) (*model.EnhancedScoringResult, error) {
	var (
		id                uuid.UUID
		applicantID       uuid.UUID
		normalized        int
		riskLevelStr      string
		recommendationStr string
		externalScore     int
		personFound       bool
		criminalRecord    bool
		defaultedLoans    int
		externalFlagsRaw  []byte
		degraded          bool
		breakdownRaw      []byte
		screenedAt        time.Time
	)

	err := row.Scan(
		&id, &applicantID,
		&normalized, &riskLevelStr, &recommendationStr,
		&externalScore, &personFound, &criminalRecord,
		&defaultedLoans, &externalFlagsRaw, &degraded,
		&breakdownRaw, &screenedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrScreeningNotFound
		}
		return nil, fmt.Errorf("failed to scan screening: %w", err)
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk level: %w", err)
	}
	recommendation, err := valueobject.RecommendationFromString(recommendationStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recommendation: %w", err)
	}

	var breakdown model.ScoreBreakdown
	if err := json.Unmarshal(breakdownRaw, &breakdown); err != nil {
		return nil, fmt.Errorf("failed to decode breakdown: %w", err)
	}

	var flagRecords []externalFlagRecord
	if err := json.Unmarshal(externalFlagsRaw, &flagRecords); err != nil {
		return nil, fmt.Errorf("failed to decode external flags: %w", err)
	}
	flags := make([]model.ExternalFlag, len(flagRecords))
	for i, f := range flagRecords {
		severity, err := valueobject.SeverityFromString(f.Severity)
		if err != nil {
			return nil, fmt.Errorf("failed to parse flag severity: %w", err)
		}
		flags[i] = model.ExternalFlag{Category: f.Category, Severity: severity, Points: f.Points}
	}

	findings, err := r.loadFindings(ctx, id)
	if err != nil {
		return nil, err
	}

	return model.ReconstructEnhancedScoringResult(
		id, applicantID,
		model.NewFraudDetectionResult(applicantID, findings),
		model.ExternalCheckResult{
			TotalScore:        externalScore,
			Flags:             flags,
			PersonFound:       personFound,
			HasCriminalRecord: criminalRecord,
			DefaultedLoans:    defaultedLoans,
			Degraded:          degraded,
		},
		normalized, riskLevel, recommendation, breakdown, degraded, screenedAt,
	), nil
}

func (r *ScreeningRepository) loadFindings(ctx context.Context, screeningID uuid.UUID) ([]model.Finding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rule_code, category, severity, points, description, details
		FROM screening_findings
		WHERE screening_id = $1
		ORDER BY position`,
		screeningID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var findings []model.Finding
	for rows.Next() {
		var (
			f           model.Finding
			categoryStr string
			severityStr string
		)
		if err := rows.Scan(&f.RuleCode, &categoryStr, &severityStr, &f.Points, &f.Description, &f.Details); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		category, err := valueobject.RuleCategoryFromString(categoryStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finding category: %w", err)
		}
		severity, err := valueobject.SeverityFromString(severityStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finding severity: %w", err)
		}
		f.Category = category
		f.Severity = severity
		findings = append(findings, f)
	}

	return findings, rows.Err()
}
