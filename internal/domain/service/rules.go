package service

import "github.com/lendora/screening-service/internal/domain/model"

// activeRule looks up a rule definition by code, honoring the active flag.
// A rule whose definition is missing or inactive never fires.
func activeRule(rules map[string]model.RuleDefinition, code string) (model.RuleDefinition, bool) {
	def, ok := rules[code]
	if !ok || !def.Active {
		return model.RuleDefinition{}, false
	}
	return def, true
}
