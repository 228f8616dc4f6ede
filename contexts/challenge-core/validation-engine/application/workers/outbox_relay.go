package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "impulse/contexts/challenge-core/validation-engine/application"
	"impulse/contexts/challenge-core/validation-engine/ports"
)

// OutboxRelay publishes persisted outbox records to the event bus. Delivery
// is at-least-once; downstream consumers dedupe on (report_id, new_status).
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending outbox rows and marks each
// row published only after broker publish succeeds. It stops on the first
// failure so the retry loop can reprocess remaining rows safely.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("validation outbox list failed",
			"event", "validation_outbox_list_failed",
			"module", "challenge-core/validation-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("validation outbox decode failed",
				"event", "validation_outbox_decode_failed",
				"module", "challenge-core/validation-engine",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("validation outbox publish failed",
				"event", "validation_outbox_publish_failed",
				"module", "challenge-core/validation-engine",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
		logger.Info("validation outbox row published",
			"event", "validation_outbox_published",
			"module", "challenge-core/validation-engine",
			"layer", "worker",
			"outbox_id", row.OutboxID,
			"topic", topic,
			"event_id", event.EventID,
		)
	}
	return nil
}
