package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

type Documents interface {
	ListByApplication(ctx context.Context, applicationID string) ([]model.Document, error)
	UpdateReview(ctx context.Context, id, status, remark, reviewerID string) (*model.Document, error)
}

type DocumentRepo struct {
	db DB
}

func NewDocumentRepo(db DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func (r *DocumentRepo) ListByApplication(ctx context.Context, applicationID string) ([]model.Document, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, kind, status, COALESCE(remark, ''), COALESCE(reviewed_by, ''), uploaded_at, reviewed_at
		 FROM documents WHERE application_id = $1 ORDER BY uploaded_at ASC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.ApplicationID, &d.Kind, &d.Status, &d.Remark, &d.ReviewedBy, &d.UploadedAt, &d.ReviewedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DocumentRepo) UpdateReview(ctx context.Context, id, status, remark, reviewerID string) (*model.Document, error) {
	var d model.Document
	err := r.db.QueryRow(ctx,
		`UPDATE documents SET status = $2, remark = NULLIF($3, ''), reviewed_by = $4, reviewed_at = now()
		 WHERE id = $1
		 RETURNING id, application_id, kind, status, COALESCE(remark, ''), COALESCE(reviewed_by, ''), uploaded_at, reviewed_at`,
		id, status, remark, reviewerID).
		Scan(&d.ID, &d.ApplicationID, &d.Kind, &d.Status, &d.Remark, &d.ReviewedBy, &d.UploadedAt, &d.ReviewedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
