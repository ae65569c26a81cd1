package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

func TestConnectionEstablishedWireFormat(t *testing.T) {
	frame, err := json.Marshal(ConnectionEstablished())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"connection-established","payload":{}}`, string(frame))
}

func TestNewMessageEnvelopeUsesCamelCase(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	frame, err := json.Marshal(NewMessage(MessagePayload{
		ID:            "m1",
		Content:       "hello",
		SenderID:      "u2",
		SenderName:    "A. Osei",
		SenderRole:    "officer",
		Timestamp:     ts,
		ApplicationID: "app-1",
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "new-message",
		"payload": {
			"message": {
				"id": "m1",
				"content": "hello",
				"senderId": "u2",
				"senderName": "A. Osei",
				"senderRole": "officer",
				"timestamp": "2026-03-01T09:00:00Z",
				"isRead": false,
				"applicationId": "app-1"
			}
		}
	}`, string(frame))
}

func TestNotificationEnvelopeUsesSnakeCase(t *testing.T) {
	n := model.Notification{
		ID:        "n1",
		UserID:    "u1",
		Title:     "New message",
		Message:   "An officer replied to your case.",
		Type:      model.NotificationTypeMessage,
		IsRead:    false,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	frame, err := json.Marshal(NewNotification(n))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(frame, &decoded))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(decoded["payload"], &payload))

	assert.Equal(t, "New message", payload["title"])
	assert.Equal(t, false, payload["is_read"])
	assert.Equal(t, "2026-03-01T09:00:00Z", payload["created_at"])
	assert.NotContains(t, payload, "user_id", "owner id must never reach the wire")
	assert.NotContains(t, payload, "application_id", "empty application link is omitted")
}

func TestNotificationUpdatedCarriesReadFlag(t *testing.T) {
	frame, err := json.Marshal(NotificationUpdated(model.Notification{
		ID:        "n1",
		IsRead:    true,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, err)

	var decoded struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(frame, &decoded))
	assert.Equal(t, "notification-updated", decoded.Type)
	assert.Equal(t, true, decoded.Payload["is_read"])
}

func TestNotificationDeletedEnvelope(t *testing.T) {
	frame, err := json.Marshal(NotificationDeleted("n9"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"notification-deleted","payload":{"id":"n9"}}`, string(frame))
}
