package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicantDirectory implements port.ApplicantDirectory using PostgreSQL.
// Every query runs against an indexed column; the duplicate rules call these
// on each screening.
type ApplicantDirectory struct {
	pool *pgxpool.Pool
}

// NewApplicantDirectory creates a new PostgreSQL-backed applicant directory.
func NewApplicantDirectory(pool *pgxpool.Pool) *ApplicantDirectory {
	return &ApplicantDirectory{pool: pool}
}

// CountByNationalID counts other applicants holding an identity document
// with the same national ID number.
func (d *ApplicantDirectory) CountByNationalID(ctx context.Context, number string, exclude uuid.UUID) (int, error) {
	return d.countDocuments(ctx, "NATIONAL_ID", number, exclude)
}

// CountByTaxID counts other applicants holding an identity document with the
// same tax ID number.
func (d *ApplicantDirectory) CountByTaxID(ctx context.Context, number string, exclude uuid.UUID) (int, error) {
	return d.countDocuments(ctx, "TAX_ID", number, exclude)
}

func (d *ApplicantDirectory) countDocuments(ctx context.Context, kind, number string, exclude uuid.UUID) (int, error) {
	var count int
	err := d.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT applicant_id)
		FROM identity_documents
		WHERE kind = $1 AND number = $2 AND applicant_id <> $3`,
		kind, number, exclude,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s documents: %w", kind, err)
	}
	return count, nil
}

// CountByPhone counts other applicants registered with the same phone
// number.
func (d *ApplicantDirectory) CountByPhone(ctx context.Context, phone string, exclude uuid.UUID) (int, error) {
	return d.countApplicants(ctx, "phone", phone, exclude)
}

// CountByEmail counts other applicants registered with the same email
// address.
func (d *ApplicantDirectory) CountByEmail(ctx context.Context, email string, exclude uuid.UUID) (int, error) {
	return d.countApplicants(ctx, "email", email, exclude)
}

func (d *ApplicantDirectory) countApplicants(ctx context.Context, column, value string, exclude uuid.UUID) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM applicants WHERE %s = $1 AND id <> $2`, column)
	err := d.pool.QueryRow(ctx, query, value, exclude).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applicants by %s: %w", column, err)
	}
	return count, nil
}
