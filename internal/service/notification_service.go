package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borderlesste/cavb-visa-sub001/internal/events"
	"github.com/borderlesste/cavb-visa-sub001/internal/model"
	"github.com/borderlesste/cavb-visa-sub001/internal/repository"
)

type NotificationService struct {
	notifs repository.Notifications
	push   Notifier
	events *events.Publisher
	log    *zap.SugaredLogger
}

func NewNotificationService(notifs repository.Notifications, push Notifier, ev *events.Publisher, log *zap.SugaredLogger) *NotificationService {
	return &NotificationService{notifs: notifs, push: push, events: ev, log: log}
}

// Create inserts the durable row first and pushes only after the
// insert succeeds; a user who is offline simply finds the row on the
// next list call.
func (s *NotificationService) Create(ctx context.Context, userID, title, message, kind, applicationID string) (*model.Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	n := &model.Notification{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		Message:       message,
		Type:          kind,
		CreatedAt:     time.Now().UTC(),
		ApplicationID: applicationID,
	}
	if err := s.notifs.Create(ctx, n); err != nil {
		return nil, err
	}
	s.push.NewNotification(userID, *n)
	s.events.Publish(ctx, events.Event{Type: events.TypeNotificationCreated, UserID: userID, EntityID: n.ID})
	return n, nil
}

func (s *NotificationService) ListMine(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.notifs.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (*model.Notification, error) {
	n, err := s.notifs.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.push.NotificationUpdated(userID, *n)
	s.events.Publish(ctx, events.Event{Type: events.TypeNotificationRead, UserID: userID, EntityID: id})
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	if err := s.notifs.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.push.NotificationDeleted(userID, id)
	s.events.Publish(ctx, events.Event{Type: events.TypeNotificationDeleted, UserID: userID, EntityID: id})
	return nil
}
