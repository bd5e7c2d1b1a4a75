package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/port"
	"github.com/lendora/screening-service/internal/domain/valueobject"
	"github.com/lendora/screening-service/pkg/textmatch"
	"github.com/lendora/screening-service/pkg/verhoeff"
)

// Rule codes evaluated by the identity rule set.
const (
	RuleDuplicateNationalID     = "DUPLICATE_NATIONAL_ID"
	RuleDuplicateTaxID          = "DUPLICATE_TAX_ID"
	RuleInvalidTaxIDFormat      = "INVALID_TAX_ID_FORMAT"
	RuleInvalidNationalIDFormat = "INVALID_NATIONAL_ID_FORMAT"
	RuleNationalIDChecksum      = "NATIONAL_ID_CHECKSUM_FAILED"
	RuleDOBMismatch             = "DOB_MISMATCH"
	RuleNameMismatch            = "NAME_MISMATCH"
	RuleGenderMismatch          = "GENDER_MISMATCH"
	RulePassportExpired         = "PASSPORT_EXPIRED"
	RuleDuplicatePhone          = "DUPLICATE_PHONE"
	RuleDuplicateEmail          = "DUPLICATE_EMAIL"
	RuleUnderageApplicant       = "UNDERAGE_APPLICANT"
	RuleSuspiciousAge           = "SUSPICIOUS_AGE"
	RuleMissingNationalID       = "MISSING_NATIONAL_ID"
	RuleMissingTaxID            = "MISSING_TAX_ID"
	RuleDocumentTampered        = "DOCUMENT_TAMPERED"
	RuleAddressMismatch         = "ADDRESS_MISMATCH"
)

var (
	taxIDPattern      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	nationalIDPattern = regexp.MustCompile(`^[0-9]{12}$`)
)

// IdentityRuleSet evaluates the identity fraud rules over an applicant
// snapshot. Every evaluator is an independent, side-effect-free predicate;
// severity and points come from the injected rule definitions.
type IdentityRuleSet struct {
	directory       port.ApplicantDirectory
	checksumEnabled bool
	logger          *slog.Logger
}

// NewIdentityRuleSet creates the identity rule set. checksumEnabled toggles
// the Verhoeff check-digit validation of national ID numbers on top of the
// format check.
func NewIdentityRuleSet(directory port.ApplicantDirectory, checksumEnabled bool, logger *slog.Logger) *IdentityRuleSet {
	return &IdentityRuleSet{
		directory:       directory,
		checksumEnabled: checksumEnabled,
		logger:          logger,
	}
}

// Category returns the rule category this set evaluates.
func (s *IdentityRuleSet) Category() valueobject.RuleCategory {
	return valueobject.CategoryIdentity
}

type identityEvaluator struct {
	code string
	fn   func(ctx context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error)
}

// Evaluate runs every identity evaluator in fixed order and collects the
// triggered findings. A fault in one evaluator is logged and skipped; the
// remaining rules still run.
func (s *IdentityRuleSet) Evaluate(ctx context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) []model.Finding {
	evaluators := []identityEvaluator{
		{RuleDuplicateNationalID, s.duplicateNationalID},
		{RuleDuplicateTaxID, s.duplicateTaxID},
		{RuleInvalidTaxIDFormat, s.taxIDFormat},
		{RuleInvalidNationalIDFormat, s.nationalIDFormat},
		{RuleNationalIDChecksum, s.nationalIDChecksum},
		{RuleDOBMismatch, s.dateOfBirthConsistency},
		{RuleNameMismatch, s.nameConsistency},
		{RuleGenderMismatch, s.genderConsistency},
		{RulePassportExpired, s.passportExpiry},
		{RuleDuplicatePhone, s.duplicatePhone},
		{RuleDuplicateEmail, s.duplicateEmail},
		{RuleUnderageApplicant, s.ageBounds},
		{RuleMissingNationalID, s.missingNationalID},
		{RuleMissingTaxID, s.missingTaxID},
		{RuleDocumentTampered, s.tamperedDocuments},
		{RuleAddressMismatch, s.addressConsistency},
	}

	var findings []model.Finding
	for _, ev := range evaluators {
		triggered, err := ev.fn(ctx, snap, rules)
		if err != nil {
			s.logger.Warn("identity rule evaluation failed",
				slog.String("rule", ev.code),
				slog.String("applicant_id", snap.Applicant.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		findings = append(findings, triggered...)
	}
	return findings
}

func (s *IdentityRuleSet) duplicateNationalID(ctx context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleDuplicateNationalID)
	if !ok {
		return nil, nil
	}

	others := 0
	for _, number := range distinctNumbers(snap.DocumentsOfKind(model.DocumentNationalID)) {
		n, err := s.directory.CountByNationalID(ctx, number, snap.Applicant.ID)
		if err != nil {
			return nil, err
		}
		others += n
	}
	if others == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"National ID number is shared with other applicants",
		fmt.Sprintf("national ID found on %d other applicant(s)", others),
	)}, nil
}

func (s *IdentityRuleSet) duplicateTaxID(ctx context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleDuplicateTaxID)
	if !ok {
		return nil, nil
	}

	others := 0
	for _, number := range distinctNumbers(snap.DocumentsOfKind(model.DocumentTaxID)) {
		n, err := s.directory.CountByTaxID(ctx, number, snap.Applicant.ID)
		if err != nil {
			return nil, err
		}
		others += n
	}
	if others == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"Tax ID number is shared with other applicants",
		fmt.Sprintf("tax ID found on %d other applicant(s)", others),
	)}, nil
}

func (s *IdentityRuleSet) taxIDFormat(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleInvalidTaxIDFormat)
	if !ok {
		return nil, nil
	}

	var invalid []string
	for _, doc := range snap.DocumentsOfKind(model.DocumentTaxID) {
		number := strings.ToUpper(strings.TrimSpace(doc.Number))
		if !taxIDPattern.MatchString(number) {
			invalid = append(invalid, number)
		}
	}
	if len(invalid) == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"Tax ID number does not match the required format",
		strings.Join(invalid, "; "),
	)}, nil
}

func (s *IdentityRuleSet) nationalIDFormat(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleInvalidNationalIDFormat)
	if !ok {
		return nil, nil
	}

	var invalid []string
	for _, doc := range snap.DocumentsOfKind(model.DocumentNationalID) {
		number := strings.TrimSpace(doc.Number)
		if !nationalIDPattern.MatchString(number) {
			invalid = append(invalid, number)
		}
	}
	if len(invalid) == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"National ID number is not a valid 12-digit number",
		strings.Join(invalid, "; "),
	)}, nil
}

func (s *IdentityRuleSet) nationalIDChecksum(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	if !s.checksumEnabled {
		return nil, nil
	}
	def, ok := activeRule(rules, RuleNationalIDChecksum)
	if !ok {
		return nil, nil
	}

	var failed []string
	for _, doc := range snap.DocumentsOfKind(model.DocumentNationalID) {
		number := strings.TrimSpace(doc.Number)
		// Only well-formed numbers are checksum-tested; malformed ones are
		// already covered by the format rule.
		if nationalIDPattern.MatchString(number) && !verhoeff.Validate(number) {
			failed = append(failed, number)
		}
	}
	if len(failed) == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"National ID number fails check-digit validation",
		strings.Join(failed, "; "),
	)}, nil
}

func (s *IdentityRuleSet) dateOfBirthConsistency(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleDOBMismatch)
	if !ok {
		return nil, nil
	}
	if snap.Applicant.DateOfBirth.IsZero() {
		return nil, nil
	}

	var mismatches []string
	for _, doc := range snap.IdentityDocuments {
		if doc.DateOfBirth.IsZero() {
			continue
		}
		if !sameDate(snap.Applicant.DateOfBirth, doc.DateOfBirth) {
			mismatches = append(mismatches, fmt.Sprintf("%s %s: %s",
				doc.Kind, doc.Number, doc.DateOfBirth.Format("2006-01-02")))
		}
	}
	if len(mismatches) == 0 {
		return nil, nil
	}

	// One aggregated finding regardless of how many documents disagree.
	return []model.Finding{model.NewFinding(def,
		"Date of birth differs across identity documents",
		fmt.Sprintf("applicant %s vs %s",
			snap.Applicant.DateOfBirth.Format("2006-01-02"), strings.Join(mismatches, "; ")),
	)}, nil
}

func (s *IdentityRuleSet) nameConsistency(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleNameMismatch)
	if !ok {
		return nil, nil
	}
	fullName := snap.Applicant.FullName()
	if fullName == "" {
		return nil, nil
	}

	var mismatches []string
	for _, doc := range snap.IdentityDocuments {
		if doc.Name == "" {
			continue
		}
		if !textmatch.Names(fullName, doc.Name) {
			mismatches = append(mismatches, fmt.Sprintf("%s %s: %q", doc.Kind, doc.Number, doc.Name))
		}
	}
	if len(mismatches) == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"Name differs across identity documents",
		fmt.Sprintf("applicant %q vs %s", fullName, strings.Join(mismatches, "; ")),
	)}, nil
}

func (s *IdentityRuleSet) genderConsistency(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleGenderMismatch)
	if !ok {
		return nil, nil
	}
	gender := strings.TrimSpace(snap.Applicant.Gender)
	if gender == "" {
		return nil, nil
	}

	var mismatches []string
	for _, doc := range snap.DocumentsOfKind(model.DocumentNationalID) {
		if doc.Gender == "" {
			continue
		}
		if !strings.EqualFold(gender, doc.Gender) {
			mismatches = append(mismatches, fmt.Sprintf("%s: %s", doc.Number, doc.Gender))
		}
	}
	if len(mismatches) == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"Gender differs from the national ID record",
		fmt.Sprintf("applicant %s vs %s", gender, strings.Join(mismatches, "; ")),
	)}, nil
}

func (s *IdentityRuleSet) passportExpiry(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RulePassportExpired)
	if !ok {
		return nil, nil
	}

	now := time.Now().UTC()
	var findings []model.Finding
	for _, doc := range snap.DocumentsOfKind(model.DocumentPassport) {
		if doc.Expired(now) {
			// One finding per expired passport.
			findings = append(findings, model.NewFinding(def,
				"Passport on file is expired",
				fmt.Sprintf("passport %s expired on %s", doc.Number, doc.ExpiryDate.Format("2006-01-02")),
			))
		}
	}
	return findings, nil
}

func (s *IdentityRuleSet) duplicatePhone(ctx context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleDuplicatePhone)
	if !ok {
		return nil, nil
	}
	phone := strings.TrimSpace(snap.Applicant.Phone)
	if phone == "" {
		return nil, nil
	}

	n, err := s.directory.CountByPhone(ctx, phone, snap.Applicant.ID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"Phone number is shared with other applicants",
		fmt.Sprintf("phone found on %d other applicant(s)", n),
	)}, nil
}

func (s *IdentityRuleSet) duplicateEmail(ctx context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleDuplicateEmail)
	if !ok {
		return nil, nil
	}
	email := strings.TrimSpace(snap.Applicant.Email)
	if email == "" {
		return nil, nil
	}

	n, err := s.directory.CountByEmail(ctx, email, snap.Applicant.ID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"Email address is shared with other applicants",
		fmt.Sprintf("email found on %d other applicant(s)", n),
	)}, nil
}

// ageBounds flags minors as a hard finding and borderline ages as a softer
// one. The two findings are mutually exclusive.
func (s *IdentityRuleSet) ageBounds(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	age := snap.Applicant.AgeAt(time.Now().UTC())
	if age < 0 {
		return nil, nil
	}

	if age < 18 {
		def, ok := activeRule(rules, RuleUnderageApplicant)
		if !ok {
			return nil, nil
		}
		return []model.Finding{model.NewFinding(def,
			"Applicant is below the legal minimum age",
			fmt.Sprintf("computed age %d", age),
		)}, nil
	}

	if age <= 20 || age > 80 {
		def, ok := activeRule(rules, RuleSuspiciousAge)
		if !ok {
			return nil, nil
		}
		return []model.Finding{model.NewFinding(def,
			"Applicant age is outside the typical borrowing range",
			fmt.Sprintf("computed age %d", age),
		)}, nil
	}

	return nil, nil
}

func (s *IdentityRuleSet) missingNationalID(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleMissingNationalID)
	if !ok {
		return nil, nil
	}
	if snap.HasDocumentOfKind(model.DocumentNationalID) {
		return nil, nil
	}
	return []model.Finding{model.NewFinding(def,
		"Mandatory national ID document is missing",
		"no national ID on file",
	)}, nil
}

func (s *IdentityRuleSet) missingTaxID(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleMissingTaxID)
	if !ok {
		return nil, nil
	}
	if snap.HasDocumentOfKind(model.DocumentTaxID) {
		return nil, nil
	}
	return []model.Finding{model.NewFinding(def,
		"Mandatory tax ID document is missing",
		"no tax ID on file",
	)}, nil
}

func (s *IdentityRuleSet) tamperedDocuments(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleDocumentTampered)
	if !ok {
		return nil, nil
	}

	var findings []model.Finding
	for _, doc := range snap.IdentityDocuments {
		if doc.Tampered {
			// One finding per tampered document.
			findings = append(findings, model.NewFinding(def,
				"Document analysis flagged possible tampering",
				fmt.Sprintf("%s %s", doc.Kind, doc.Number),
			))
		}
	}
	return findings, nil
}

func (s *IdentityRuleSet) addressConsistency(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleAddressMismatch)
	if !ok {
		return nil, nil
	}
	address := strings.TrimSpace(snap.Applicant.Address)
	if address == "" {
		return nil, nil
	}

	var mismatches []string
	for _, doc := range snap.DocumentsOfKind(model.DocumentNationalID) {
		if doc.Address == "" {
			continue
		}
		if !textmatch.Addresses(address, doc.Address) {
			mismatches = append(mismatches, fmt.Sprintf("%s: %q", doc.Number, doc.Address))
		}
	}
	if len(mismatches) == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"Address differs from the national ID record",
		fmt.Sprintf("applicant %q vs %s", address, strings.Join(mismatches, "; ")),
	)}, nil
}

func distinctNumbers(docs []model.IdentityDocument) []string {
	seen := make(map[string]struct{}, len(docs))
	var numbers []string
	for _, doc := range docs {
		number := strings.TrimSpace(doc.Number)
		if number == "" {
			continue
		}
		if _, ok := seen[number]; ok {
			continue
		}
		seen[number] = struct{}{}
		numbers = append(numbers, number)
	}
	return numbers
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
