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

type DocumentService struct {
	docs   repository.Documents
	apps   repository.Applications
	notifs repository.Notifications
	push   Notifier
	events *events.Publisher
	log    *zap.SugaredLogger
}

func NewDocumentService(docs repository.Documents, apps repository.Applications, notifs repository.Notifications, push Notifier, ev *events.Publisher, log *zap.SugaredLogger) *DocumentService {
	return &DocumentService{docs: docs, apps: apps, notifs: notifs, push: push, events: ev, log: log}
}

// Review records an officer's decision on a document and notifies the
// applicant. Uploads themselves are handled by the document intake
// service; only the review state lives here.
func (s *DocumentService) Review(ctx context.Context, reviewerID, documentID, status, remark string) (*model.Document, error) {
	if status != model.DocumentStatusApproved && status != model.DocumentStatusRejected {
		return nil, fmt.Errorf("%w: status must be %s or %s", ErrInvalidInput, model.DocumentStatusApproved, model.DocumentStatusRejected)
	}
	d, err := s.docs.UpdateReview(ctx, documentID, status, remark, reviewerID)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.GetByID(ctx, d.ApplicationID)
	if err != nil {
		// review is committed; the applicant just misses the push
		s.log.Errorw("load application for document review", "document_id", d.ID, "err", err)
		return d, nil
	}

	n := &model.Notification{
		ID:            uuid.NewString(),
		UserID:        app.ApplicantID,
		Title:         "Document reviewed",
		Message:       fmt.Sprintf("Your %s was %s.", d.Kind, status),
		Type:          model.NotificationTypeDocument,
		CreatedAt:     time.Now().UTC(),
		ApplicationID: d.ApplicationID,
	}
	if err := s.notifs.Create(ctx, n); err != nil {
		s.log.Errorw("create document notification", "document_id", d.ID, "err", err)
	} else {
		s.push.NewNotification(app.ApplicantID, *n)
	}
	s.events.Publish(ctx, events.Event{Type: events.TypeDocumentReviewed, UserID: reviewerID, EntityID: d.ID, Data: map[string]string{"status": status}})
	return d, nil
}

func (s *DocumentService) ListByApplication(ctx context.Context, applicationID string) ([]model.Document, error) {
	return s.docs.ListByApplication(ctx, applicationID)
}
