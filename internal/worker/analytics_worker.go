package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/menu-assistant/internal/events"
	"github.com/spec-kit/menu-assistant/internal/observability"
)

// StartAnalyticsWorker subscribes counters and structured logs to every
// domain event the services emit.
func StartAnalyticsWorker(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	eventTypes := []events.EventType{
		events.EventTokenIssued,
		events.EventMessageConsumed,
		events.EventLimitReached,
		events.EventChatCompleted,
		events.EventUpstreamFailed,
	}

	for _, eventType := range eventTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			metrics.RecordEvent(string(event.Type))
			logger.Debug("event",
				zap.String("event_id", event.ID),
				zap.String("type", string(event.Type)),
				zap.Any("payload", event.Payload),
			)
			return nil
		})
	}
}
