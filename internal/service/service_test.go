package service

import (
	"context"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
	"github.com/borderlesste/cavb-visa-sub001/internal/realtime"
)

// calls is a shared ordered log so tests can assert that persistence
// happens before any realtime push.
type calls struct {
	seq []string
}

func (c *calls) add(s string) { c.seq = append(c.seq, s) }

type recordingNotifier struct {
	log           *calls
	apps          []model.Application
	messages      []realtime.MessagePayload
	notifications []model.Notification
	updated       []model.Notification
	deleted       []string
}

func (r *recordingNotifier) ApplicationUpdated(userID string, app model.Application) {
	r.log.add("push:application-updated:" + userID)
	r.apps = append(r.apps, app)
}

func (r *recordingNotifier) NewMessage(userID string, msg realtime.MessagePayload) {
	r.log.add("push:new-message:" + userID)
	r.messages = append(r.messages, msg)
}

func (r *recordingNotifier) NewNotification(userID string, n model.Notification) {
	r.log.add("push:new-notification:" + userID)
	r.notifications = append(r.notifications, n)
}

func (r *recordingNotifier) NotificationUpdated(userID string, n model.Notification) {
	r.log.add("push:notification-updated:" + userID)
	r.updated = append(r.updated, n)
}

func (r *recordingNotifier) NotificationDeleted(userID, notificationID string) {
	r.log.add("push:notification-deleted:" + userID)
	r.deleted = append(r.deleted, notificationID)
}

type fakeNotifications struct {
	log       *calls
	createErr error
	deleteErr error
	created   []model.Notification
	markRead  func(id, userID string) (*model.Notification, error)
}

func (f *fakeNotifications) Create(_ context.Context, n *model.Notification) error {
	f.log.add("repo:create-notification")
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, _ string) ([]model.Notification, error) {
	return nil, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id, userID string) (*model.Notification, error) {
	f.log.add("repo:mark-read")
	if f.markRead != nil {
		return f.markRead(id, userID)
	}
	return &model.Notification{ID: id, UserID: userID, IsRead: true}, nil
}

func (f *fakeNotifications) Delete(_ context.Context, _, _ string) error {
	f.log.add("repo:delete-notification")
	return f.deleteErr
}

type fakeApplications struct {
	log          *calls
	createErr    error
	updateResult *model.Application
	updateErr    error
}

func (f *fakeApplications) Create(_ context.Context, app *model.Application) error {
	f.log.add("repo:create-application")
	return f.createErr
}

func (f *fakeApplications) GetByID(_ context.Context, id string) (*model.Application, error) {
	return &model.Application{ID: id}, nil
}

func (f *fakeApplications) ListByApplicant(_ context.Context, _ string) ([]model.Application, error) {
	return nil, nil
}

func (f *fakeApplications) UpdateStatus(_ context.Context, id, status string) (*model.Application, error) {
	f.log.add("repo:update-status")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}
	return &model.Application{ID: id, Status: status}, nil
}

type fakeMessages struct {
	log       *calls
	createErr error
	created   []model.Message
}

func (f *fakeMessages) Create(_ context.Context, m *model.Message) error {
	f.log.add("repo:create-message")
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *m)
	return nil
}

func (f *fakeMessages) ListByApplication(_ context.Context, _ string) ([]model.Message, error) {
	return nil, nil
}
