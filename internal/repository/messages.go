package repository

import (
	"context"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

type Messages interface {
	Create(ctx context.Context, m *model.Message) error
	ListByApplication(ctx context.Context, applicationID string) ([]model.Message, error)
}

type MessageRepo struct {
	db DB
}

func NewMessageRepo(db DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (id, application_id, sender_id, recipient_id, content, is_read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ApplicationID, m.SenderID, m.RecipientID, m.Content, m.IsRead, m.CreatedAt)
	return err
}

func (r *MessageRepo) ListByApplication(ctx context.Context, applicationID string) ([]model.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, sender_id, recipient_id, content, is_read, created_at
		 FROM messages WHERE application_id = $1 ORDER BY created_at ASC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ApplicationID, &m.SenderID, &m.RecipientID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
