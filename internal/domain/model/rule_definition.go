package model

import "github.com/lendora/screening-service/internal/domain/valueobject"

// RuleDefinition is the policy half of a fraud rule: which severity and point
// value apply, and whether the rule is active at all. The logic half lives in
// the rule sets; definitions are owned by the external rule catalog and only
// read here.
type RuleDefinition struct {
	Code     string
	Category valueobject.RuleCategory
	Severity valueobject.Severity
	Points   int
	Active   bool
}
