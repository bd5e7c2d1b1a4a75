package service

import (
	"regexp"
	"strings"
)

// ghostCompanyScore grades an employer name with a composite heuristic.
// Signals are additive; the caller maps the total onto the ghost-company or
// suspicious-employer finding.
const (
	ghostCompanyThreshold       = 30
	suspiciousEmployerThreshold = 15
)

var (
	shellKeywords = []string{
		"consultancy", "consultants", "holdings", "enterprises", "ventures",
		"trading", "exports", "imports", "agencies", "associates",
	}

	genericBusinessWords = []string{
		"business", "company", "corporation", "solutions", "services",
		"global", "international", "group", "industries",
	}

	legitimateEmployers = []string{
		"tata consultancy services", "infosys", "wipro", "hcl technologies",
		"tech mahindra", "accenture", "ibm", "cognizant", "capgemini",
		"state bank of india", "hdfc bank", "icici bank", "reliance industries",
	}

	longDigitRunPattern   = regexp.MustCompile(`[0-9]{5,}`)
	nameSpecialCharsPattern = regexp.MustCompile(`[#$%^*=+|<>~]`)
)

func isAllowlistedEmployer(name string) bool {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, known := range legitimateEmployers {
		if strings.Contains(lowered, known) {
			return true
		}
	}
	return false
}

func countShellKeywords(lowered string) int {
	n := 0
	for _, kw := range shellKeywords {
		if strings.Contains(lowered, kw) {
			n++
		}
	}
	return n
}

func countGenericWords(lowered string) int {
	n := 0
	for _, w := range genericBusinessWords {
		if strings.Contains(lowered, w) {
			n++
		}
	}
	return n
}

func ghostCompanyScore(name string) int {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return 0
	}

	score := 0
	if countShellKeywords(lowered) >= 2 {
		score += 20
	}
	if longDigitRunPattern.MatchString(lowered) {
		score += 15
	}
	if len(lowered) < 10 && !isAllowlistedEmployer(name) {
		score += 10
	}
	if nameSpecialCharsPattern.MatchString(lowered) {
		score += 10
	}
	if countGenericWords(lowered) >= 2 {
		score += 15
	}
	return score
}
