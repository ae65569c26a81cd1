package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

func TestNotificationCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	n := &model.Notification{
		ID:        "n1",
		UserID:    "u1",
		Title:     "New message",
		Message:   "An officer replied.",
		Type:      model.NotificationTypeMessage,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(n.ID, n.UserID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt, n.ApplicationID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewNotificationRepo(mock)
	require.NoError(t, repo.Create(context.Background(), n))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkReadReturnsRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("UPDATE notifications SET is_read = true").
		WithArgs("n1", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "message", "type", "is_read", "created_at", "application_id"}).
			AddRow("n1", "u1", "Title", "Body", model.NotificationTypeStatusChange, true, created, "app-1"))

	repo := NewNotificationRepo(mock)
	n, err := repo.MarkRead(context.Background(), "n1", "u1")
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.Equal(t, "app-1", n.ApplicationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkReadWrongOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("UPDATE notifications SET is_read = true").
		WithArgs("n1", "intruder").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "message", "type", "is_read", "created_at", "application_id"}))

	repo := NewNotificationRepo(mock)
	_, err = repo.MarkRead(context.Background(), "n1", "intruder")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationDeleteZeroRowsIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM notifications").
		WithArgs("n1", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewNotificationRepo(mock)
	assert.ErrorIs(t, repo.Delete(context.Background(), "n1", "u1"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationListByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "message", "type", "is_read", "created_at", "application_id"}).
			AddRow("n2", "u1", "Second", "b", model.NotificationTypeMessage, false, created.Add(time.Hour), "").
			AddRow("n1", "u1", "First", "a", model.NotificationTypeMessage, true, created, "app-1"))

	repo := NewNotificationRepo(mock)
	out, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "n2", out[0].ID)
	assert.Equal(t, "app-1", out[1].ApplicationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
