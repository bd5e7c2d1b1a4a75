package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/service"
	"github.com/lendora/screening-service/internal/domain/valueobject"
	"github.com/lendora/screening-service/pkg/testutil"
)

type mockDirectory struct {
	nationalIDCounts map[string]int
	taxIDCounts      map[string]int
	phoneCounts      map[string]int
	emailCounts      map[string]int
	err              error
}

func (m *mockDirectory) CountByNationalID(_ context.Context, number string, _ uuid.UUID) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.nationalIDCounts[number], nil
}

func (m *mockDirectory) CountByTaxID(_ context.Context, number string, _ uuid.UUID) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.taxIDCounts[number], nil
}

func (m *mockDirectory) CountByPhone(_ context.Context, phone string, _ uuid.UUID) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.phoneCounts[phone], nil
}

func (m *mockDirectory) CountByEmail(_ context.Context, email string, _ uuid.UUID) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.emailCounts[email], nil
}

func activeIdentityRules(codes ...string) map[string]model.RuleDefinition {
	rules := make(map[string]model.RuleDefinition, len(codes))
	for _, code := range codes {
		rules[code] = model.RuleDefinition{
			Code:     code,
			Category: valueobject.CategoryIdentity,
			Severity: valueobject.SeverityMedium,
			Points:   10,
			Active:   true,
		}
	}
	return rules
}

func findingCodes(findings []model.Finding) []string {
	codes := make([]string, len(findings))
	for i, f := range findings {
		codes[i] = f.RuleCode
	}
	return codes
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func cleanSnapshot() model.ApplicantSnapshot {
	dob := time.Now().UTC().AddDate(-35, 0, 0)
	return model.ApplicantSnapshot{
		Applicant: model.Applicant{
			ID:          testutil.TestApplicantID1,
			FirstName:   "Rahul",
			LastName:    "Sharma",
			DateOfBirth: dob,
			Gender:      "M",
			Phone:       "+919812345678",
			Email:       "rahul.sharma@example.com",
			Address:     "Plot 12 Sector 18 Gurgaon Haryana",
		},
		IdentityDocuments: []model.IdentityDocument{
			{
				ID:          uuid.New(),
				ApplicantID: testutil.TestApplicantID1,
				Kind:        model.DocumentNationalID,
				Number:      "234567890123",
				Name:        "Rahul Sharma",
				DateOfBirth: dob,
				Gender:      "M",
				Address:     "Plot 12 Sector 18 Gurgaon Haryana",
			},
			{
				ID:          uuid.New(),
				ApplicantID: testutil.TestApplicantID1,
				Kind:        model.DocumentTaxID,
				Number:      "ABCDE1234F",
				Name:        "Rahul Sharma",
				DateOfBirth: dob,
			},
		},
	}
}

func TestIdentityRuleSetCleanApplicant(t *testing.T) {
	ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
	rules := activeIdentityRules(
		service.RuleDuplicateNationalID, service.RuleDuplicateTaxID,
		service.RuleInvalidTaxIDFormat, service.RuleInvalidNationalIDFormat,
		service.RuleDOBMismatch, service.RuleNameMismatch, service.RuleGenderMismatch,
		service.RulePassportExpired, service.RuleDuplicatePhone, service.RuleDuplicateEmail,
		service.RuleUnderageApplicant, service.RuleSuspiciousAge,
		service.RuleMissingNationalID, service.RuleMissingTaxID,
		service.RuleDocumentTampered, service.RuleAddressMismatch,
	)

	findings := ruleSet.Evaluate(context.Background(), cleanSnapshot(), rules)

	assert.Empty(t, findings)
}

func TestIdentityRuleSetInvalidNationalIDFormat(t *testing.T) {
	// Only the format rule is active, so a malformed national ID produces
	// exactly one finding worth exactly that rule's points.
	ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
	snap := cleanSnapshot()
	snap.IdentityDocuments = []model.IdentityDocument{
		{
			ID:          uuid.New(),
			ApplicantID: snap.Applicant.ID,
			Kind:        model.DocumentNationalID,
			Number:      "12AB",
			Name:        snap.Applicant.FullName(),
		},
	}
	rules := map[string]model.RuleDefinition{
		service.RuleInvalidNationalIDFormat: {
			Code:     service.RuleInvalidNationalIDFormat,
			Category: valueobject.CategoryIdentity,
			Severity: valueobject.SeverityHigh,
			Points:   25,
			Active:   true,
		},
	}

	findings := ruleSet.Evaluate(context.Background(), snap, rules)

	require.Len(t, findings, 1)
	assert.Equal(t, service.RuleInvalidNationalIDFormat, findings[0].RuleCode)
	assert.Equal(t, 25, findings[0].Points)

	result := model.NewFraudDetectionResult(snap.Applicant.ID, findings)
	assert.Equal(t, 25, result.TotalScore())
}

func TestIdentityRuleSetDuplicateNationalID(t *testing.T) {
	directory := &mockDirectory{nationalIDCounts: map[string]int{"234567890123": 1}}
	ruleSet := service.NewIdentityRuleSet(directory, false, testLogger())
	rules := activeIdentityRules(service.RuleDuplicateNationalID)

	findings := ruleSet.Evaluate(context.Background(), cleanSnapshot(), rules)

	require.Len(t, findings, 1)
	assert.Equal(t, service.RuleDuplicateNationalID, findings[0].RuleCode)
	assert.Contains(t, findings[0].Details, "1 other applicant")
}

func TestIdentityRuleSetChecksumToggle(t *testing.T) {
	// "234567890123" is well-formed but fails the check-digit test.
	snap := cleanSnapshot()
	rules := activeIdentityRules(service.RuleNationalIDChecksum)

	t.Run("disabled by default behavior", func(t *testing.T) {
		ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
		findings := ruleSet.Evaluate(context.Background(), snap, rules)
		assert.Empty(t, findings)
	})

	t.Run("enabled flags bad check digit", func(t *testing.T) {
		ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, true, testLogger())
		findings := ruleSet.Evaluate(context.Background(), snap, rules)
		require.Len(t, findings, 1)
		assert.Equal(t, service.RuleNationalIDChecksum, findings[0].RuleCode)
	})

	t.Run("malformed numbers are left to the format rule", func(t *testing.T) {
		malformed := snap
		malformed.IdentityDocuments = []model.IdentityDocument{
			{Kind: model.DocumentNationalID, Number: "12AB"},
		}
		ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, true, testLogger())
		findings := ruleSet.Evaluate(context.Background(), malformed, rules)
		assert.Empty(t, findings)
	})
}

func TestIdentityRuleSetMismatchAggregation(t *testing.T) {
	// Two documents each disagreeing on name and DOB still produce one
	// finding per rule, with combined detail text.
	snap := cleanSnapshot()
	otherDOB := snap.Applicant.DateOfBirth.AddDate(-2, 1, 0)
	snap.IdentityDocuments = []model.IdentityDocument{
		{Kind: model.DocumentNationalID, Number: "234567890123", Name: "Vikram Mehta", DateOfBirth: otherDOB},
		{Kind: model.DocumentTaxID, Number: "ABCDE1234F", Name: "Sunil Gupta", DateOfBirth: otherDOB},
	}
	ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
	rules := activeIdentityRules(service.RuleNameMismatch, service.RuleDOBMismatch)

	findings := ruleSet.Evaluate(context.Background(), snap, rules)

	require.Len(t, findings, 2)
	testutil.AssertFindingCodes(t, findingCodes(findings),
		service.RuleDOBMismatch, service.RuleNameMismatch)
	for _, f := range findings {
		assert.Contains(t, f.Details, ";")
	}
}

func TestIdentityRuleSetPerDocumentFindings(t *testing.T) {
	expired := time.Now().UTC().AddDate(-1, 0, 0)
	alsoExpired := time.Now().UTC().AddDate(0, -6, 0)
	snap := cleanSnapshot()
	snap.IdentityDocuments = append(snap.IdentityDocuments,
		model.IdentityDocument{Kind: model.DocumentPassport, Number: "P1234567", ExpiryDate: &expired},
		model.IdentityDocument{Kind: model.DocumentPassport, Number: "P7654321", ExpiryDate: &alsoExpired, Tampered: true},
	)
	ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
	rules := activeIdentityRules(service.RulePassportExpired, service.RuleDocumentTampered)

	findings := ruleSet.Evaluate(context.Background(), snap, rules)

	// Two expired passports fire twice; one tampered document fires once.
	testutil.AssertFindingCodes(t, findingCodes(findings),
		service.RulePassportExpired, service.RulePassportExpired, service.RuleDocumentTampered)
}

func TestIdentityRuleSetAgeBounds(t *testing.T) {
	ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
	rules := activeIdentityRules(service.RuleUnderageApplicant, service.RuleSuspiciousAge)

	cases := []struct {
		name     string
		age      int
		expected []string
	}{
		{"minor", 16, []string{service.RuleUnderageApplicant}},
		{"borderline young", 19, []string{service.RuleSuspiciousAge}},
		{"typical", 35, nil},
		{"borderline old", 85, []string{service.RuleSuspiciousAge}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := cleanSnapshot()
			snap.Applicant.DateOfBirth = time.Now().UTC().AddDate(-tc.age, 0, -1)
			for i := range snap.IdentityDocuments {
				snap.IdentityDocuments[i].DateOfBirth = snap.Applicant.DateOfBirth
			}
			findings := ruleSet.Evaluate(context.Background(), snap, rules)
			testutil.AssertFindingCodes(t, findingCodes(findings), tc.expected...)
		})
	}
}

func TestIdentityRuleSetMissingDocuments(t *testing.T) {
	snap := cleanSnapshot()
	snap.IdentityDocuments = nil
	ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
	rules := activeIdentityRules(service.RuleMissingNationalID, service.RuleMissingTaxID)

	findings := ruleSet.Evaluate(context.Background(), snap, rules)

	testutil.AssertFindingCodes(t, findingCodes(findings),
		service.RuleMissingNationalID, service.RuleMissingTaxID)
}

func TestIdentityRuleSetInactiveRulesSkipped(t *testing.T) {
	snap := cleanSnapshot()
	snap.IdentityDocuments = nil
	rules := activeIdentityRules(service.RuleMissingNationalID, service.RuleMissingTaxID)
	inactive := rules[service.RuleMissingTaxID]
	inactive.Active = false
	rules[service.RuleMissingTaxID] = inactive

	ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
	findings := ruleSet.Evaluate(context.Background(), snap, rules)

	testutil.AssertFindingCodes(t, findingCodes(findings), service.RuleMissingNationalID)
}

func TestIdentityRuleSetDirectoryFaultIsolated(t *testing.T) {
	// A failing directory lookup must not suppress the rules that do not
	// depend on it.
	snap := cleanSnapshot()
	snap.IdentityDocuments = nil
	directory := &mockDirectory{err: errors.New("connection refused")}
	ruleSet := service.NewIdentityRuleSet(directory, false, testLogger())
	rules := activeIdentityRules(
		service.RuleDuplicateNationalID, service.RuleDuplicatePhone,
		service.RuleMissingNationalID,
	)

	findings := ruleSet.Evaluate(context.Background(), snap, rules)

	testutil.AssertFindingCodes(t, findingCodes(findings), service.RuleMissingNationalID)
}

func TestIdentityRuleSetIdempotent(t *testing.T) {
	snap := cleanSnapshot()
	snap.IdentityDocuments = nil
	ruleSet := service.NewIdentityRuleSet(&mockDirectory{}, false, testLogger())
	rules := activeIdentityRules(service.RuleMissingNationalID, service.RuleMissingTaxID)

	first := model.NewFraudDetectionResult(snap.Applicant.ID,
		ruleSet.Evaluate(context.Background(), snap, rules))
	second := model.NewFraudDetectionResult(snap.Applicant.ID,
		ruleSet.Evaluate(context.Background(), snap, rules))

	assert.Equal(t, first.TotalScore(), second.TotalScore())
	assert.Equal(t, first.Findings(), second.Findings())
	assert.True(t, first.RiskLevel().Equal(second.RiskLevel()))
}
