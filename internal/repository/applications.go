package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

type Applications interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Application, error)
}

type ApplicationRepo struct {
	db DB
}

func NewApplicationRepo(db DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, applicant_id, visa_type, country, status, submitted_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.ApplicantID, app.VisaType, app.Country, app.Status, app.SubmittedAt, app.UpdatedAt)
	return err
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.QueryRow(ctx,
		`SELECT id, applicant_id, visa_type, country, status, submitted_at, updated_at
		 FROM applications WHERE id = $1`, id).
		Scan(&app.ID, &app.ApplicantID, &app.VisaType, &app.Country, &app.Status, &app.SubmittedAt, &app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]model.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, applicant_id, visa_type, country, status, submitted_at, updated_at
		 FROM applications WHERE applicant_id = $1 ORDER BY submitted_at DESC`, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var app model.Application
		if err := rows.Scan(&app.ID, &app.ApplicantID, &app.VisaType, &app.Country, &app.Status, &app.SubmittedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id, status string) (*model.Application, error) {
	var app model.Application
	err := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1
		 RETURNING id, applicant_id, visa_type, country, status, submitted_at, updated_at`, id, status).
		Scan(&app.ID, &app.ApplicantID, &app.VisaType, &app.Country, &app.Status, &app.SubmittedAt, &app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}
