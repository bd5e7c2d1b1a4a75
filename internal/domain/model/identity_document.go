package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityDocumentKind distinguishes the government-issued document types the
// engine cross-checks.
type IdentityDocumentKind string

const (
	DocumentNationalID IdentityDocumentKind = "NATIONAL_ID"
	DocumentTaxID      IdentityDocumentKind = "TAX_ID"
	DocumentPassport   IdentityDocumentKind = "PASSPORT"
)

// IdentityDocument is one identity record linked to an applicant. Multiple
// documents of the same kind may exist; duplicates are themselves a fraud
// signal. Tampered is set by an upstream document-analysis step.
type IdentityDocument struct {
	ID          uuid.UUID
	ApplicantID uuid.UUID
	Kind        IdentityDocumentKind
	Number      string
	Name        string
	DateOfBirth time.Time
	Gender      string
	Nationality string
	Address     string
	ExpiryDate  *time.Time // passports only
	Tampered    bool
}

// Expired reports whether the document carries an expiry date in the past.
func (d IdentityDocument) Expired(at time.Time) bool {
	return d.ExpiryDate != nil && d.ExpiryDate.Before(at)
}
