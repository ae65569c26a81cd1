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

type ApplicationService struct {
	apps   repository.Applications
	notifs repository.Notifications
	push   Notifier
	events *events.Publisher
	log    *zap.SugaredLogger
}

func NewApplicationService(apps repository.Applications, notifs repository.Notifications, push Notifier, ev *events.Publisher, log *zap.SugaredLogger) *ApplicationService {
	return &ApplicationService{apps: apps, notifs: notifs, push: push, events: ev, log: log}
}

func (s *ApplicationService) Submit(ctx context.Context, applicantID, visaType, country string) (*model.Application, error) {
	visaType = strings.TrimSpace(visaType)
	country = strings.TrimSpace(country)
	if visaType == "" || country == "" {
		return nil, fmt.Errorf("%w: visa_type and country are required", ErrInvalidInput)
	}
	now := time.Now().UTC()
	app := &model.Application{
		ID:          uuid.NewString(),
		ApplicantID: applicantID,
		VisaType:    visaType,
		Country:     country,
		Status:      model.ApplicationStatusSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, events.Event{Type: events.TypeApplicationSubmitted, UserID: applicantID, EntityID: app.ID})
	return app, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	return s.apps.GetByID(ctx, id)
}

func (s *ApplicationService) ListMine(ctx context.Context, applicantID string) ([]model.Application, error) {
	return s.apps.ListByApplicant(ctx, applicantID)
}

// UpdateStatus persists the new status, records a notification row,
// and only then pushes both over the realtime channel. Push failures
// stay inside the dispatcher; the caller sees the committed state.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, status string) (*model.Application, error) {
	if !model.ValidApplicationStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	app, err := s.apps.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	n := &model.Notification{
		ID:            uuid.NewString(),
		UserID:        app.ApplicantID,
		Title:         "Application status updated",
		Message:       fmt.Sprintf("Your %s visa application is now %s.", app.VisaType, status),
		Type:          model.NotificationTypeStatusChange,
		CreatedAt:     time.Now().UTC(),
		ApplicationID: app.ID,
	}
	notified := true
	if err := s.notifs.Create(ctx, n); err != nil {
		// the status change itself is committed; losing the notification
		// row must not roll it back
		s.log.Errorw("create status notification", "application_id", app.ID, "err", err)
		notified = false
	}

	s.push.ApplicationUpdated(app.ApplicantID, *app)
	if notified {
		s.push.NewNotification(app.ApplicantID, *n)
	}
	s.events.Publish(ctx, events.Event{
		Type:     events.TypeApplicationStatusChanged,
		UserID:   app.ApplicantID,
		EntityID: app.ID,
		Data:     map[string]string{"status": status},
	})
	return app, nil
}
