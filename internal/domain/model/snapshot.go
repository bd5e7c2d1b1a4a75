package model

// ApplicantSnapshot is the immutable view of everything the rule sets may
// inspect for one applicant. It is fetched once per screening request so all
// rules observe consistent data.
type ApplicantSnapshot struct {
	Applicant           Applicant
	IdentityDocuments   []IdentityDocument
	Employment          *EmploymentRecord
	SupportingDocuments []SupportingDocument
}

// DocumentsOfKind returns the identity documents of the given kind.
func (s ApplicantSnapshot) DocumentsOfKind(kind IdentityDocumentKind) []IdentityDocument {
	var docs []IdentityDocument
	for _, d := range s.IdentityDocuments {
		if d.Kind == kind {
			docs = append(docs, d)
		}
	}
	return docs
}

// HasDocumentOfKind reports whether at least one identity document of the
// given kind is on file.
func (s ApplicantSnapshot) HasDocumentOfKind(kind IdentityDocumentKind) bool {
	for _, d := range s.IdentityDocuments {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// SupportingOfKind returns the supporting documents of the given kind.
func (s ApplicantSnapshot) SupportingOfKind(kind SupportingDocumentKind) []SupportingDocument {
	var docs []SupportingDocument
	for _, d := range s.SupportingDocuments {
		if d.Kind == kind {
			docs = append(docs, d)
		}
	}
	return docs
}

// HasSupportingOfKind reports whether at least one supporting document of
// the given kind is on file.
func (s ApplicantSnapshot) HasSupportingOfKind(kind SupportingDocumentKind) bool {
	for _, d := range s.SupportingDocuments {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
