package valueobject

import "fmt"

// Recommendation is an immutable value object representing the routing
// outcome of a screening: send the application forward, hold it for manual
// review, or reject it outright.
type Recommendation struct {
	value string
}

var (
	RecommendationApprove = Recommendation{value: "APPROVE"}
	RecommendationReview  = Recommendation{value: "REVIEW"}
	RecommendationReject  = Recommendation{value: "REJECT"}
)

// RecommendationFromString reconstructs a Recommendation from its string
// representation.
func RecommendationFromString(s string) (Recommendation, error) {
	switch s {
	case "APPROVE":
		return RecommendationApprove, nil
	case "REVIEW":
		return RecommendationReview, nil
	case "REJECT":
		return RecommendationReject, nil
	default:
		return Recommendation{}, fmt.Errorf("invalid recommendation: %s", s)
	}
}

// String returns the string representation.
func (r Recommendation) String() string {
	return r.value
}

// IsZero returns true if the Recommendation has not been set.
func (r Recommendation) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another Recommendation.
func (r Recommendation) Equal(other Recommendation) bool {
	return r.value == other.value
}

// IsApprove returns true if the recommendation is APPROVE.
func (r Recommendation) IsApprove() bool {
	return r.value == "APPROVE"
}

// IsReview returns true if the recommendation is REVIEW.
func (r Recommendation) IsReview() bool {
	return r.value == "REVIEW"
}

// IsReject returns true if the recommendation is REJECT.
func (r Recommendation) IsReject() bool {
	return r.value == "REJECT"
}
