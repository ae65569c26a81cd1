package model

import "time"

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCancelled = "cancelled"
)

type Appointment struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	ApplicantID   string    `json:"applicant_id"`
	Location      string    `json:"location"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
