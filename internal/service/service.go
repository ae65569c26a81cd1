package service

import (
	"errors"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
	"github.com/borderlesste/cavb-visa-sub001/internal/realtime"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Notifier is the realtime push surface the services call after their
// database writes commit. Calls cannot fail from the caller's point of
// view; *realtime.Dispatcher implements it.
type Notifier interface {
	ApplicationUpdated(userID string, app model.Application)
	NewMessage(userID string, msg realtime.MessagePayload)
	NewNotification(userID string, n model.Notification)
	NotificationUpdated(userID string, n model.Notification)
	NotificationDeleted(userID, notificationID string)
}
