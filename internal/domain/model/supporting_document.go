package model

import "github.com/google/uuid"

// SupportingDocumentKind types the attachments uploaded to back an
// application.
type SupportingDocumentKind string

const (
	SupportingPayslip              SupportingDocumentKind = "PAYSLIP"
	SupportingBusinessRegistration SupportingDocumentKind = "BUSINESS_REGISTRATION"
	SupportingIncomeTaxReturn      SupportingDocumentKind = "INCOME_TAX_RETURN"
	SupportingBankStatement        SupportingDocumentKind = "BANK_STATEMENT"
)

// SupportingDocument is a typed attachment with the text extracted by the
// upstream OCR step. ExtractedText may be empty when extraction failed;
// content rules skip such documents.
type SupportingDocument struct {
	ID            uuid.UUID
	ApplicantID   uuid.UUID
	Kind          SupportingDocumentKind
	FileName      string
	ExtractedText string
}
