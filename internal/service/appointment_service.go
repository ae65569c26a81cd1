package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borderlesste/cavb-visa-sub001/internal/events"
	"github.com/borderlesste/cavb-visa-sub001/internal/model"
	"github.com/borderlesste/cavb-visa-sub001/internal/repository"
)

type AppointmentService struct {
	appts  repository.Appointments
	notifs repository.Notifications
	push   Notifier
	events *events.Publisher
	log    *zap.SugaredLogger
}

func NewAppointmentService(appts repository.Appointments, notifs repository.Notifications, push Notifier, ev *events.Publisher, log *zap.SugaredLogger) *AppointmentService {
	return &AppointmentService{appts: appts, notifs: notifs, push: push, events: ev, log: log}
}

// Schedule books the slot the caller picked. Availability is decided by
// the consulate calendar service before this call.
func (s *AppointmentService) Schedule(ctx context.Context, applicantID, applicationID, location string, at time.Time) (*model.Appointment, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if at.Before(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled_at is in the past", ErrInvalidInput)
	}
	a := &model.Appointment{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		ApplicantID:   applicantID,
		Location:      location,
		ScheduledAt:   at.UTC(),
		Status:        model.AppointmentStatusScheduled,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.appts.Create(ctx, a); err != nil {
		return nil, err
	}

	s.notifyAppointment(ctx, a, "Appointment scheduled",
		fmt.Sprintf("Your appointment at %s is confirmed for %s.", a.Location, a.ScheduledAt.Format(time.RFC1123)))
	s.events.Publish(ctx, events.Event{Type: events.TypeAppointmentScheduled, UserID: applicantID, EntityID: a.ID})
	return a, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, id, applicantID string) (*model.Appointment, error) {
	a, err := s.appts.Cancel(ctx, id, applicantID)
	if err != nil {
		return nil, err
	}
	s.notifyAppointment(ctx, a, "Appointment cancelled",
		fmt.Sprintf("Your appointment at %s on %s was cancelled.", a.Location, a.ScheduledAt.Format(time.RFC1123)))
	s.events.Publish(ctx, events.Event{Type: events.TypeAppointmentCancelled, UserID: applicantID, EntityID: a.ID})
	return a, nil
}

func (s *AppointmentService) ListMine(ctx context.Context, applicantID string) ([]model.Appointment, error) {
	return s.appts.ListByApplicant(ctx, applicantID)
}

func (s *AppointmentService) notifyAppointment(ctx context.Context, a *model.Appointment, title, message string) {
	n := &model.Notification{
		ID:            uuid.NewString(),
		UserID:        a.ApplicantID,
		Title:         title,
		Message:       message,
		Type:          model.NotificationTypeAppointment,
		CreatedAt:     time.Now().UTC(),
		ApplicationID: a.ApplicationID,
	}
	if err := s.notifs.Create(ctx, n); err != nil {
		s.log.Errorw("create appointment notification", "appointment_id", a.ID, "err", err)
		return
	}
	s.push.NewNotification(a.ApplicantID, *n)
}
