package model

import "github.com/lendora/screening-service/internal/domain/valueobject"

// Finding is one triggered fraud indicator. Severity and points always come
// from the rule's catalog definition, never from code.
type Finding struct {
	RuleCode    string
	Category    valueobject.RuleCategory
	Severity    valueobject.Severity
	Points      int
	Description string
	Details     string
}

// NewFinding builds a Finding from a rule definition and the evaluator's
// explanation of why it fired.
func NewFinding(def RuleDefinition, description, details string) Finding {
	return Finding{
		RuleCode:    def.Code,
		Category:    def.Category,
		Severity:    def.Severity,
		Points:      def.Points,
		Description: description,
		Details:     details,
	}
}
