package valueobject

import "fmt"

// RuleCategory groups fraud rules by the domain they inspect.
type RuleCategory struct {
	value string
}

var (
	CategoryIdentity   = RuleCategory{value: "IDENTITY"}
	CategoryEmployment = RuleCategory{value: "EMPLOYMENT"}
)

// RuleCategoryFromString reconstructs a RuleCategory from its string
// representation.
func RuleCategoryFromString(s string) (RuleCategory, error) {
	switch s {
	case "IDENTITY":
		return CategoryIdentity, nil
	case "EMPLOYMENT":
		return CategoryEmployment, nil
	default:
		return RuleCategory{}, fmt.Errorf("invalid rule category: %s", s)
	}
}

// String returns the string representation.
func (c RuleCategory) String() string {
	return c.value
}

// IsZero returns true if the RuleCategory has not been set.
func (c RuleCategory) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another RuleCategory.
func (c RuleCategory) Equal(other RuleCategory) bool {
	return c.value == other.value
}
