package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Applicant is the read-only identity snapshot of a loan applicant. The
// screening engine never mutates it.
type Applicant struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	Email       string
	Phone       string
	Address     string
}

// FullName returns the applicant's display name.
func (a Applicant) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// AgeAt returns the applicant's age in whole years at the given instant.
// Returns -1 when the date of birth is unknown.
func (a Applicant) AgeAt(at time.Time) int {
	if a.DateOfBirth.IsZero() {
		return -1
	}
	years := at.Year() - a.DateOfBirth.Year()
	if at.YearDay() < a.DateOfBirth.YearDay() {
		years--
	}
	return years
}
