package valueobject

import "fmt"

// RiskLevel is an immutable value object classifying an applicant's overall
// fraud risk.
type RiskLevel struct {
	value string
}

var (
	RiskLevelClean    = RiskLevel{value: "CLEAN"}
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelCritical = RiskLevel{value: "CRITICAL"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "CLEAN":
		return RiskLevelClean, nil
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromNormalizedScore derives the RiskLevel from a 0-100 normalized
// score.
func RiskLevelFromNormalizedScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLevelCritical
	case score >= 60:
		return RiskLevelHigh
	case score >= 35:
		return RiskLevelMedium
	case score >= 15:
		return RiskLevelLow
	default:
		return RiskLevelClean
	}
}

// RiskLevelFromRawPoints derives the RiskLevel for a single-domain detection
// result from its raw point total. Zero findings always map to CLEAN.
func RiskLevelFromRawPoints(points int) RiskLevel {
	switch {
	case points >= 100:
		return RiskLevelCritical
	case points >= 60:
		return RiskLevelHigh
	case points >= 30:
		return RiskLevelMedium
	case points >= 1:
		return RiskLevelLow
	default:
		return RiskLevelClean
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// AtLeast reports whether this level is the same as or more severe than
// other. Ordering: CLEAN < LOW < MEDIUM < HIGH < CRITICAL.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.rank() >= other.rank()
}

func (r RiskLevel) rank() int {
	switch r.value {
	case "CRITICAL":
		return 4
	case "HIGH":
		return 3
	case "MEDIUM":
		return 2
	case "LOW":
		return 1
	default:
		return 0
	}
}
