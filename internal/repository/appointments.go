package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

type Appointments interface {
	Create(ctx context.Context, a *model.Appointment) error
	Cancel(ctx context.Context, id, applicantID string) (*model.Appointment, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]model.Appointment, error)
}

type AppointmentRepo struct {
	db DB
}

func NewAppointmentRepo(db DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO appointments (id, application_id, applicant_id, location, scheduled_at, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ApplicationID, a.ApplicantID, a.Location, a.ScheduledAt, a.Status, a.CreatedAt)
	return err
}

func (r *AppointmentRepo) Cancel(ctx context.Context, id, applicantID string) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.QueryRow(ctx,
		`UPDATE appointments SET status = $3 WHERE id = $1 AND applicant_id = $2
		 RETURNING id, application_id, applicant_id, location, scheduled_at, status, created_at`,
		id, applicantID, model.AppointmentStatusCancelled).
		Scan(&a.ID, &a.ApplicationID, &a.ApplicantID, &a.Location, &a.ScheduledAt, &a.Status, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) ListByApplicant(ctx context.Context, applicantID string) ([]model.Appointment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, applicant_id, location, scheduled_at, status, created_at
		 FROM appointments WHERE applicant_id = $1 ORDER BY scheduled_at ASC`, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.ApplicationID, &a.ApplicantID, &a.Location, &a.ScheduledAt, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
