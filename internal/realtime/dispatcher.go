package realtime

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/borderlesste/cavb-visa-sub001/internal/metrics"
	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

// Dispatcher pushes typed events to a single user's live session.
// Delivery is best-effort: no queueing, no retry, and no error ever
// reaches the calling business logic. The durable record the caller
// just wrote is the source of truth; this is the fast path on top.
type Dispatcher struct {
	registry *Registry
	log      *zap.SugaredLogger
}

func NewDispatcher(registry *Registry, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// Deliver serializes env once and writes it to userID's session, if
// there is one and it is open. Everything else is a counted no-op.
func (d *Dispatcher) Deliver(userID string, env Envelope) {
	sess, ok := d.registry.Get(userID)
	if !ok {
		metrics.EventsDropped.WithLabelValues("not_connected").Inc()
		return
	}
	if !sess.Open() {
		metrics.EventsDropped.WithLabelValues("closed").Inc()
		return
	}
	frame, err := json.Marshal(env)
	if err != nil {
		d.log.Errorw("marshal realtime envelope", "type", env.Type, "err", err)
		metrics.EventsDropped.WithLabelValues("marshal").Inc()
		return
	}
	if err := sess.Send(frame); err != nil {
		d.log.Warnw("realtime delivery failed", "user_id", userID, "type", env.Type, "err", err)
		metrics.EventsDropped.WithLabelValues("write").Inc()
		return
	}
	metrics.EventsDelivered.WithLabelValues(string(env.Type)).Inc()
}

func (d *Dispatcher) ApplicationUpdated(userID string, app model.Application) {
	d.Deliver(userID, ApplicationUpdated(app))
}

func (d *Dispatcher) NewMessage(userID string, msg MessagePayload) {
	d.Deliver(userID, NewMessage(msg))
}

func (d *Dispatcher) NewNotification(userID string, n model.Notification) {
	d.Deliver(userID, NewNotification(n))
}

func (d *Dispatcher) NotificationUpdated(userID string, n model.Notification) {
	d.Deliver(userID, NotificationUpdated(n))
}

func (d *Dispatcher) NotificationDeleted(userID, notificationID string) {
	d.Deliver(userID, NotificationDeleted(notificationID))
}
