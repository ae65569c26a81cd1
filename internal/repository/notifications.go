package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

type Notifications interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*model.Notification, error)
	Delete(ctx context.Context, id, userID string) error
}

type NotificationRepo struct {
	db DB
}

func NewNotificationRepo(db DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at, application_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))`,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt, n.ApplicationID)
	return err
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, message, type, is_read, created_at, COALESCE(application_id, '')
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt, &n.ApplicationID); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips the flag for a notification owned by userID and
// returns the updated row so the caller can push it as-is.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) (*model.Notification, error) {
	var n model.Notification
	err := r.db.QueryRow(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, message, type, is_read, created_at, COALESCE(application_id, '')`,
		id, userID).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt, &n.ApplicationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
