package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/port"
)

// SnapshotProvider implements port.SnapshotProvider using PostgreSQL. It
// assembles the full read-only view in one call so every rule observes the
// same data.
type SnapshotProvider struct {
	pool *pgxpool.Pool
}

// NewSnapshotProvider creates a new PostgreSQL-backed snapshot provider.
func NewSnapshotProvider(pool *pgxpool.Pool) *SnapshotProvider {
	return &SnapshotProvider{pool: pool}
}

// Snapshot loads the applicant with all linked identity documents, the
// employment record, and the supporting documents. A missing applicant
// yields port.ErrApplicantNotFound; missing sub-records are simply empty.
func (p *SnapshotProvider) Snapshot(ctx context.Context, applicantID uuid.UUID) (model.ApplicantSnapshot, error) {
	applicant, err := p.loadApplicant(ctx, applicantID)
	if err != nil {
		return model.ApplicantSnapshot{}, err
	}

	documents, err := p.loadIdentityDocuments(ctx, applicantID)
	if err != nil {
		return model.ApplicantSnapshot{}, err
	}

	employment, err := p.loadEmployment(ctx, applicantID)
	if err != nil {
		return model.ApplicantSnapshot{}, err
	}

	supporting, err := p.loadSupportingDocuments(ctx, applicantID)
	if err != nil {
		return model.ApplicantSnapshot{}, err
	}

	return model.ApplicantSnapshot{
		Applicant:           applicant,
		IdentityDocuments:   documents,
		Employment:          employment,
		SupportingDocuments: supporting,
	}, nil
}

func (p *SnapshotProvider) loadApplicant(ctx context.Context, applicantID uuid.UUID) (model.Applicant, error) {
	var (
		a   model.Applicant
		dob *time.Time
	)
	err := p.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, date_of_birth, gender, email, phone, address
		FROM applicants WHERE id = $1`,
		applicantID,
	).Scan(&a.ID, &a.FirstName, &a.LastName, &dob, &a.Gender, &a.Email, &a.Phone, &a.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Applicant{}, port.ErrApplicantNotFound
		}
		return model.Applicant{}, fmt.Errorf("failed to load applicant: %w", err)
	}
	if dob != nil {
		a.DateOfBirth = *dob
	}
	return a, nil
}

func (p *SnapshotProvider) loadIdentityDocuments(ctx context.Context, applicantID uuid.UUID) ([]model.IdentityDocument, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, kind, number, name, date_of_birth, gender, nationality,
			address, expiry_date, tampered
		FROM identity_documents
		WHERE applicant_id = $1
		ORDER BY created_at`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query identity documents: %w", err)
	}
	defer rows.Close()

	var documents []model.IdentityDocument
	for rows.Next() {
		var (
			d    model.IdentityDocument
			kind string
			dob  *time.Time
		)
		if err := rows.Scan(&d.ID, &kind, &d.Number, &d.Name, &dob, &d.Gender,
			&d.Nationality, &d.Address, &d.ExpiryDate, &d.Tampered); err != nil {
			return nil, fmt.Errorf("failed to scan identity document: %w", err)
		}
		d.ApplicantID = applicantID
		d.Kind = model.IdentityDocumentKind(kind)
		if dob != nil {
			d.DateOfBirth = *dob
		}
		documents = append(documents, d)
	}

	return documents, rows.Err()
}

func (p *SnapshotProvider) loadEmployment(ctx context.Context, applicantID uuid.UUID) (*model.EmploymentRecord, error) {
	var (
		e      model.EmploymentRecord
		kind   string
		income decimal.Decimal
	)
	err := p.pool.QueryRow(ctx, `
		SELECT id, employer_name, employment_type, start_date, monthly_income, designation
		FROM employment_records WHERE applicant_id = $1`,
		applicantID,
	).Scan(&e.ID, &e.EmployerName, &kind, &e.StartDate, &income, &e.Designation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load employment record: %w", err)
	}
	e.ApplicantID = applicantID
	e.Type = model.EmploymentType(kind)
	e.MonthlyIncome = income
	return &e, nil
}

func (p *SnapshotProvider) loadSupportingDocuments(ctx context.Context, applicantID uuid.UUID) ([]model.SupportingDocument, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, kind, file_name, extracted_text
		FROM supporting_documents
		WHERE applicant_id = $1
		ORDER BY created_at`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query supporting documents: %w", err)
	}
	defer rows.Close()

	var documents []model.SupportingDocument
	for rows.Next() {
		var (
			d    model.SupportingDocument
			kind string
		)
		if err := rows.Scan(&d.ID, &kind, &d.FileName, &d.ExtractedText); err != nil {
			return nil, fmt.Errorf("failed to scan supporting document: %w", err)
		}
		d.ApplicantID = applicantID
		d.Kind = model.SupportingDocumentKind(kind)
		documents = append(documents, d)
	}

	return documents, rows.Err()
}
