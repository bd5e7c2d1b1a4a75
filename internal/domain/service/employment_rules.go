package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/valueobject"
)

// Rule codes evaluated by the employment rule set.
const (
	RuleShellCompanyEmployer      = "SHELL_COMPANY_EMPLOYER"
	RuleUnverifiedEmployer        = "UNVERIFIED_EMPLOYER"
	RulePersonalEmailEmployer     = "PERSONAL_EMAIL_EMPLOYER"
	RuleMissingPayslip            = "MISSING_PAYSLIP"
	RuleTemplatePayslip           = "TEMPLATE_PAYSLIP"
	RulePayslipEmployerMismatch   = "PAYSLIP_EMPLOYER_MISMATCH"
	RuleNonStandardPayslip        = "NON_STANDARD_PAYSLIP"
	RuleResidentialEmployer       = "RESIDENTIAL_EMPLOYER_ADDRESS"
	RuleGenericEmployerName       = "GENERIC_EMPLOYER_NAME"
	RuleFutureEmploymentStart     = "FUTURE_EMPLOYMENT_START"
	RuleUnrealisticTenure         = "UNREALISTIC_TENURE"
	RuleTenureMismatch            = "TENURE_MISMATCH"
	RuleSelfEmploymentUnverified  = "SELF_EMPLOYMENT_UNVERIFIED"
	RuleHighIncomeNoProof         = "HIGH_INCOME_NO_PROOF"
	RuleSelfEmployedNoTaxID       = "SELF_EMPLOYED_NO_TAX_ID"
	RuleGhostCompany              = "GHOST_COMPANY"
	RuleSuspiciousEmployer        = "SUSPICIOUS_EMPLOYER"
)

const (
	maxRealisticTenureYears = 40
	tenureMismatchYears     = 3
)

// highIncomeThreshold is the monthly income above which self-employed
// applicants must back their declaration with documents.
var highIncomeThreshold = decimal.NewFromInt(50000)

var (
	embeddedEmailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	webmailDomains = []string{
		"gmail.com", "yahoo.com", "yahoo.in", "hotmail.com", "outlook.com",
		"rediffmail.com", "protonmail.com", "aol.com",
	}

	templateWords = []string{"template", "sample", "dummy", "example"}

	payslipVocabulary = []string{"basic", "gross", "deduction", "net pay"}

	residentialWords = []string{
		"apartment", "flat no", "house no", "block no", "sector",
		"villa", "residency", "colony",
	}
)

// EmploymentRuleSet evaluates the employment fraud rules over an applicant
// snapshot. Rules operate on the single employment record and the supporting
// documents; applicants without an employment record produce no findings.
type EmploymentRuleSet struct {
	logger *slog.Logger
}

func NewEmploymentRuleSet(logger *slog.Logger) *EmploymentRuleSet {
	return &EmploymentRuleSet{logger: logger}
}

// Category returns the rule category this set evaluates.
func (s *EmploymentRuleSet) Category() valueobject.RuleCategory {
	return valueobject.CategoryEmployment
}

type employmentEvaluator struct {
	code string
	fn   func(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error)
}

// Evaluate runs every employment evaluator in fixed order. A fault in one
// evaluator is logged and skipped; the remaining rules still run.
func (s *EmploymentRuleSet) Evaluate(_ context.Context, snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) []model.Finding {
	if snap.Employment == nil {
		return nil
	}

	evaluators := []employmentEvaluator{
		{RuleShellCompanyEmployer, s.employerLegitimacy},
		{RulePersonalEmailEmployer, s.personalEmailEmployer},
		{RuleMissingPayslip, s.payslipContent},
		{RuleResidentialEmployer, s.residentialEmployer},
		{RuleGenericEmployerName, s.genericEmployerName},
		{RuleFutureEmploymentStart, s.durationSanity},
		{RuleSelfEmploymentUnverified, s.selfEmploymentProof},
		{RuleGhostCompany, s.ghostCompany},
	}

	var findings []model.Finding
	for _, ev := range evaluators {
		triggered, err := ev.fn(snap, rules)
		if err != nil {
			s.logger.Warn("employment rule evaluation failed",
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

// employerLegitimacy checks the employer against the allowlist first and the
// shell-keyword list second. The two findings are mutually exclusive and the
// check is skipped for self-employed applicants, whose employer field names
// their own venture.
func (s *EmploymentRuleSet) employerLegitimacy(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	emp := snap.Employment
	if emp.IsSelfEmployed() {
		return nil, nil
	}
	name := strings.TrimSpace(emp.EmployerName)
	if name == "" || isAllowlistedEmployer(name) {
		return nil, nil
	}

	if countShellKeywords(strings.ToLower(name)) > 0 {
		def, ok := activeRule(rules, RuleShellCompanyEmployer)
		if !ok {
			return nil, nil
		}
		return []model.Finding{model.NewFinding(def,
			"Employer name matches known shell-company patterns",
			fmt.Sprintf("employer %q", name),
		)}, nil
	}

	def, ok := activeRule(rules, RuleUnverifiedEmployer)
	if !ok {
		return nil, nil
	}
	return []model.Finding{model.NewFinding(def,
		"Employer could not be verified against known companies",
		fmt.Sprintf("employer %q", name),
	)}, nil
}

func (s *EmploymentRuleSet) personalEmailEmployer(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RulePersonalEmailEmployer)
	if !ok {
		return nil, nil
	}
	name := strings.TrimSpace(snap.Employment.EmployerName)
	if name == "" {
		return nil, nil
	}
	lowered := strings.ToLower(name)

	var hits []string
	if email := embeddedEmailPattern.FindString(lowered); email != "" {
		if _, domain, found := strings.Cut(email, "@"); found && isWebmailDomain(domain) {
			hits = append(hits, fmt.Sprintf("embedded address %s", email))
		}
	}
	for _, domain := range webmailDomains {
		if strings.Contains(lowered, domain) {
			hits = append(hits, fmt.Sprintf("name contains %s", domain))
			break
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}

	return []model.Finding{model.NewFinding(def,
		"Employer field points at a personal webmail address",
		strings.Join(hits, "; "),
	)}, nil
}

// payslipContent short-circuits to a missing-payslip finding when no payslip
// is on file; otherwise each payslip with extracted text is checked for
// template markers, the employer name, and standard payslip vocabulary.
func (s *EmploymentRuleSet) payslipContent(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	payslips := snap.SupportingOfKind(model.SupportingPayslip)
	if len(payslips) == 0 {
		def, ok := activeRule(rules, RuleMissingPayslip)
		if !ok {
			return nil, nil
		}
		return []model.Finding{model.NewFinding(def,
			"No payslip document was provided",
			"no payslip on file",
		)}, nil
	}

	employer := strings.ToLower(strings.TrimSpace(snap.Employment.EmployerName))
	var findings []model.Finding
	for _, slip := range payslips {
		text := strings.ToLower(slip.ExtractedText)
		if strings.TrimSpace(text) == "" {
			continue
		}

		if def, ok := activeRule(rules, RuleTemplatePayslip); ok {
			for _, word := range templateWords {
				if strings.Contains(text, word) {
					findings = append(findings, model.NewFinding(def,
						"Payslip contains placeholder template text",
						fmt.Sprintf("%s contains %q", slip.FileName, word),
					))
					break
				}
			}
		}

		if def, ok := activeRule(rules, RulePayslipEmployerMismatch); ok {
			if employer != "" && !strings.Contains(text, employer) {
				findings = append(findings, model.NewFinding(def,
					"Payslip does not mention the declared employer",
					fmt.Sprintf("%s lacks employer %q", slip.FileName, snap.Employment.EmployerName),
				))
			}
		}

		if def, ok := activeRule(rules, RuleNonStandardPayslip); ok {
			missing := 0
			for _, word := range payslipVocabulary {
				if !strings.Contains(text, word) {
					missing++
				}
			}
			if missing == len(payslipVocabulary) {
				findings = append(findings, model.NewFinding(def,
					"Payslip lacks standard salary-statement vocabulary",
					fmt.Sprintf("%s has none of %s", slip.FileName, strings.Join(payslipVocabulary, ", ")),
				))
			}
		}
	}
	return findings, nil
}

func (s *EmploymentRuleSet) residentialEmployer(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleResidentialEmployer)
	if !ok {
		return nil, nil
	}
	lowered := strings.ToLower(snap.Employment.EmployerName)

	for _, word := range residentialWords {
		if strings.Contains(lowered, word) {
			return []model.Finding{model.NewFinding(def,
				"Employer name contains residential-address vocabulary",
				fmt.Sprintf("employer %q contains %q", snap.Employment.EmployerName, word),
			)}, nil
		}
	}
	return nil, nil
}

func (s *EmploymentRuleSet) genericEmployerName(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	def, ok := activeRule(rules, RuleGenericEmployerName)
	if !ok {
		return nil, nil
	}
	name := strings.TrimSpace(snap.Employment.EmployerName)
	if name == "" || isAllowlistedEmployer(name) {
		return nil, nil
	}
	lowered := strings.ToLower(name)

	// A very short name made mostly of generic business words carries no
	// identifying information.
	if len(lowered) < 10 && countGenericWords(lowered) > 0 {
		return []model.Finding{model.NewFinding(def,
			"Employer name is too short and generic to identify a company",
			fmt.Sprintf("employer %q", name),
		)}, nil
	}
	return nil, nil
}

func (s *EmploymentRuleSet) durationSanity(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	emp := snap.Employment
	if emp.StartDate.IsZero() {
		return nil, nil
	}
	now := time.Now().UTC()

	if emp.StartDate.After(now) {
		def, ok := activeRule(rules, RuleFutureEmploymentStart)
		if !ok {
			return nil, nil
		}
		return []model.Finding{model.NewFinding(def,
			"Employment start date lies in the future",
			fmt.Sprintf("start date %s", emp.StartDate.Format("2006-01-02")),
		)}, nil
	}

	tenure := emp.TenureAt(now)
	years := tenure.Hours() / (24 * 365.25)

	var findings []model.Finding
	if years > maxRealisticTenureYears {
		if def, ok := activeRule(rules, RuleUnrealisticTenure); ok {
			findings = append(findings, model.NewFinding(def,
				"Declared employment tenure exceeds a working lifetime",
				fmt.Sprintf("tenure %.1f years", years),
			))
		}
	}

	if years >= tenureMismatchYears && payslipsMention(snap, "month") {
		if def, ok := activeRule(rules, RuleTenureMismatch); ok {
			findings = append(findings, model.NewFinding(def,
				"Long declared tenure contradicts payslip wording",
				fmt.Sprintf("tenure %.1f years but payslip speaks in months", years),
			))
		}
	}
	return findings, nil
}

// selfEmploymentProof enforces the documentary requirements on self-employed
// applicants. The three findings are independent so an applicant missing all
// proofs accumulates all of them.
func (s *EmploymentRuleSet) selfEmploymentProof(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	emp := snap.Employment
	if !emp.IsSelfEmployed() {
		return nil, nil
	}

	hasBusinessProof := snap.HasSupportingOfKind(model.SupportingBusinessRegistration)
	hasITR := snap.HasSupportingOfKind(model.SupportingIncomeTaxReturn)

	var findings []model.Finding
	if !hasBusinessProof {
		if def, ok := activeRule(rules, RuleSelfEmploymentUnverified); ok {
			findings = append(findings, model.NewFinding(def,
				"Self-employment is not backed by a business registration",
				"no business or GST registration on file",
			))
		}
	}

	if !hasBusinessProof && !hasITR && emp.MonthlyIncome.GreaterThan(highIncomeThreshold) {
		if def, ok := activeRule(rules, RuleHighIncomeNoProof); ok {
			findings = append(findings, model.NewFinding(def,
				"High declared income has no documentary proof",
				fmt.Sprintf("monthly income %s with no registration or tax return", emp.MonthlyIncome.StringFixed(2)),
			))
		}
	}

	if !snap.HasDocumentOfKind(model.DocumentTaxID) {
		if def, ok := activeRule(rules, RuleSelfEmployedNoTaxID); ok {
			findings = append(findings, model.NewFinding(def,
				"Self-employed applicant has no tax ID on file",
				"no tax ID document",
			))
		}
	}
	return findings, nil
}

// ghostCompany maps the composite employer-name score onto either the
// ghost-company or the suspicious-employer finding. At most one of the two
// fires, and never for self-employed applicants.
func (s *EmploymentRuleSet) ghostCompany(snap model.ApplicantSnapshot, rules map[string]model.RuleDefinition) ([]model.Finding, error) {
	emp := snap.Employment
	if emp.IsSelfEmployed() {
		return nil, nil
	}
	name := strings.TrimSpace(emp.EmployerName)
	if name == "" {
		return nil, nil
	}

	score := ghostCompanyScore(name)
	switch {
	case score >= ghostCompanyThreshold:
		def, ok := activeRule(rules, RuleGhostCompany)
		if !ok {
			return nil, nil
		}
		return []model.Finding{model.NewFinding(def,
			"Employer name scores as a likely ghost company",
			fmt.Sprintf("employer %q composite score %d", name, score),
		)}, nil
	case score >= suspiciousEmployerThreshold:
		def, ok := activeRule(rules, RuleSuspiciousEmployer)
		if !ok {
			return nil, nil
		}
		return []model.Finding{model.NewFinding(def,
			"Employer name shows suspicious naming patterns",
			fmt.Sprintf("employer %q composite score %d", name, score),
		)}, nil
	}
	return nil, nil
}

func payslipsMention(snap model.ApplicantSnapshot, word string) bool {
	for _, slip := range snap.SupportingOfKind(model.SupportingPayslip) {
		if strings.Contains(strings.ToLower(slip.ExtractedText), word) {
			return true
		}
	}
	return false
}

func isWebmailDomain(domain string) bool {
	for _, d := range webmailDomains {
		if strings.EqualFold(domain, d) {
			return true
		}
	}
	return false
}
