// Package testutil holds fixtures and assertion helpers shared across test
// packages.
package testutil

import "github.com/google/uuid"

// Fixed UUIDs for deterministic testing.
var (
	TestApplicantID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestApplicantID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestScreeningID  = uuid.MustParse("00000000-0000-0000-0000-000000000030")
)
