package valueobject

import "fmt"

// Severity is an immutable value object representing how serious a fraud
// indicator is. It drives both the scoring weight and the reject override.
type Severity struct {
	value string
}

var (
	SeverityLow      = Severity{value: "LOW"}
	SeverityMedium   = Severity{value: "MEDIUM"}
	SeverityHigh     = Severity{value: "HIGH"}
	SeverityCritical = Severity{value: "CRITICAL"}
)

// SeverityFromString reconstructs a Severity from its string representation.
func SeverityFromString(s string) (Severity, error) {
	switch s {
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return Severity{}, fmt.Errorf("invalid severity: %s", s)
	}
}

// String returns the string representation.
func (s Severity) String() string {
	return s.value
}

// Weight returns the contribution of one finding of this severity to the
// severity portion of the normalized score.
func (s Severity) Weight() int {
	switch s.value {
	case "CRITICAL":
		return 15
	case "HIGH":
		return 10
	case "MEDIUM":
		return 5
	case "LOW":
		return 2
	default:
		return 0
	}
}

// IsZero returns true if the Severity has not been set.
func (s Severity) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another Severity.
func (s Severity) Equal(other Severity) bool {
	return s.value == other.value
}
