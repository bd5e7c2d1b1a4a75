package usecase_test

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/valueobject"
	"github.com/lendora/screening-service/pkg/events"
	"github.com/lendora/screening-service/pkg/testutil"
)

// --- Mock implementations ---

type mockSnapshotProvider struct {
	snapshots map[uuid.UUID]model.ApplicantSnapshot
	err       error
}

func (m *mockSnapshotProvider) Snapshot(_ context.Context, applicantID uuid.UUID) (model.ApplicantSnapshot, error) {
	if m.err != nil {
		return model.ApplicantSnapshot{}, m.err
	}
	snap, ok := m.snapshots[applicantID]
	if !ok {
		return model.ApplicantSnapshot{}, fmt.Errorf("applicant not found: %s", applicantID)
	}
	return snap, nil
}

type mockRuleCatalog struct {
	rules map[string]map[string]model.RuleDefinition
	err   error
}

func (m *mockRuleCatalog) ActiveRules(_ context.Context, category valueobject.RuleCategory) (map[string]model.RuleDefinition, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rules[category.String()], nil
}

type mockDirectory struct{}

func (mockDirectory) CountByNationalID(context.Context, string, uuid.UUID) (int, error) { return 0, nil }
func (mockDirectory) CountByTaxID(context.Context, string, uuid.UUID) (int, error)      { return 0, nil }
func (mockDirectory) CountByPhone(context.Context, string, uuid.UUID) (int, error)      { return 0, nil }
func (mockDirectory) CountByEmail(context.Context, string, uuid.UUID) (int, error)      { return 0, nil }

type mockExternalClient struct {
	result model.ExternalCheckResult
	err    error
	calls  int
}

func (m *mockExternalClient) Screen(_ context.Context, _ uuid.UUID) (model.ExternalCheckResult, error) {
	m.calls++
	if m.err != nil {
		return model.ExternalCheckResult{}, m.err
	}
	return m.result, nil
}

type mockScreeningRepository struct {
	saved    *model.EnhancedScoringResult
	saveErr  error
	byID     map[uuid.UUID]*model.EnhancedScoringResult
	latest   map[uuid.UUID]*model.EnhancedScoringResult
	findErr  error
}

func (m *mockScreeningRepository) Save(_ context.Context, screening *model.EnhancedScoringResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = screening
	return nil
}

func (m *mockScreeningRepository) FindByID(_ context.Context, id uuid.UUID) (*model.EnhancedScoringResult, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	s, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("screening not found: %s", id)
	}
	return s, nil
}

func (m *mockScreeningRepository) FindLatestByApplicant(_ context.Context, applicantID uuid.UUID) (*model.EnhancedScoringResult, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	s, ok := m.latest[applicantID]
	if !ok {
		return nil, fmt.Errorf("screening not found for applicant: %s", applicantID)
	}
	return s, nil
}

type mockEventPublisher struct {
	published []events.DomainEvent
	err       error
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, evts...)
	return nil
}

// --- Shared fixtures ---

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func identityRule(code string, severity valueobject.Severity, points int) model.RuleDefinition {
	return model.RuleDefinition{
		Code:     code,
		Category: valueobject.CategoryIdentity,
		Severity: severity,
		Points:   points,
		Active:   true,
	}
}

func employmentRule(code string, severity valueobject.Severity, points int) model.RuleDefinition {
	return model.RuleDefinition{
		Code:     code,
		Category: valueobject.CategoryEmployment,
		Severity: severity,
		Points:   points,
		Active:   true,
	}
}

// snapshotWithoutDocuments triggers the missing national ID and tax ID rules
// plus the missing payslip rule when those are active.
func snapshotWithoutDocuments() model.ApplicantSnapshot {
	return model.ApplicantSnapshot{
		Applicant: model.Applicant{
			ID:          testutil.TestApplicantID1,
			FirstName:   "Asha",
			LastName:    "Verma",
			DateOfBirth: time.Now().UTC().AddDate(-32, 0, 0),
			Email:       "asha.verma@example.com",
			Phone:       "+919811112222",
		},
		Employment: &model.EmploymentRecord{
			ID:            uuid.New(),
			ApplicantID:   testutil.TestApplicantID1,
			EmployerName:  "Brightline Software Labs",
			Type:          model.EmploymentSalaried,
			StartDate:     time.Now().UTC().AddDate(-2, 0, 0),
			MonthlyIncome: decimal.NewFromInt(60000),
		},
	}
}
