package commands

import (
	"encoding/json"
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	"impulse/contexts/challenge-core/validation-engine/ports"
)

// newValidationEnvelope builds the canonical envelope for engine-produced
// events. Events are partitioned by report for stable ordering on
// report-scoped consumers.
func newValidationEnvelope(
	eventID string,
	reportID string,
	event entities.OutboundEvent,
	occurredAt time.Time,
) (ports.EventEnvelope, error) {
	var payload any
	switch event.EventType {
	case entities.EventTypeRewardGranted:
		payload = event.Reward
	default:
		payload = event.StatusChanged
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        event.EventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "validation-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "report_id",
		PartitionKey:     reportID,
		Data:             data,
	}, nil
}
