package model

import "time"

const (
	ApplicationStatusSubmitted    = "submitted"
	ApplicationStatusUnderReview  = "under_review"
	ApplicationStatusDocsRequired = "docs_required"
	ApplicationStatusApproved     = "approved"
	ApplicationStatusRejected     = "rejected"
)

// ValidApplicationStatus reports whether s is one of the statuses an
// officer may set. The transitions between them are policy owned by the
// consulate side, not enforced here.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusSubmitted, ApplicationStatusUnderReview,
		ApplicationStatusDocsRequired, ApplicationStatusApproved,
		ApplicationStatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID          string    `json:"id"`
	ApplicantID string    `json:"applicant_id"`
	VisaType    string    `json:"visa_type"`
	Country     string    `json:"country"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
