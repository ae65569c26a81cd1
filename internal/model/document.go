package model

import "time"

const (
	DocumentStatusPending  = "pending"
	DocumentStatusApproved = "approved"
	DocumentStatusRejected = "rejected"
)

// Document tracks the review state of an uploaded file. The file itself
// lives in the upload service; only the decision is recorded here.
type Document struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	Kind          string     `json:"kind"`
	Status        string     `json:"status"`
	Remark        string     `json:"remark,omitempty"`
	ReviewedBy    string     `json:"reviewed_by,omitempty"`
	UploadedAt    time.Time  `json:"uploaded_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}
