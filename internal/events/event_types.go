package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTokenIssued     EventType = "token_issued"
	EventMessageConsumed EventType = "message_consumed"
	EventLimitReached    EventType = "limit_reached"
	EventChatCompleted   EventType = "chat_completed"
	EventUpstreamFailed  EventType = "upstream_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a generated ID and current timestamp.
func New(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// TokenIssuedPayload payload.
type TokenIssuedPayload struct {
	Fingerprint string `json:"fingerprint,omitempty"`
	ResetAt     int64  `json:"reset_at"`
}

// MessageConsumedPayload payload.
type MessageConsumedPayload struct {
	MessagesUsed      int `json:"messages_used"`
	MessagesRemaining int `json:"messages_remaining"`
}

// LimitReachedPayload payload.
type LimitReachedPayload struct {
	ResetAt int64 `json:"reset_at"`
}

// ChatCompletedPayload payload.
type ChatCompletedPayload struct {
	MenuItemsSent int `json:"menu_items_sent"`
	ReplyChars    int `json:"reply_chars"`
}

// UpstreamFailedPayload payload.
type UpstreamFailedPayload struct {
	Status int `json:"status"`
}
