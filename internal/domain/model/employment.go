package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmploymentType distinguishes salaried from self-employed applicants; a
// number of employment rules only apply to one of the two.
type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "SALARIED"
	EmploymentSelfEmployed EmploymentType = "SELF_EMPLOYED"
)

// EmploymentRecord holds the single employment declaration linked to an
// applicant.
type EmploymentRecord struct {
	ID            uuid.UUID
	ApplicantID   uuid.UUID
	EmployerName  string
	Type          EmploymentType
	StartDate     time.Time
	MonthlyIncome decimal.Decimal
	Designation   string
}

// IsSelfEmployed reports whether the record declares self-employment.
func (e EmploymentRecord) IsSelfEmployed() bool {
	return e.Type == EmploymentSelfEmployed
}

// TenureAt returns the employment duration at the given instant. Negative
// durations indicate a start date in the future.
func (e EmploymentRecord) TenureAt(at time.Time) time.Duration {
	return at.Sub(e.StartDate)
}
