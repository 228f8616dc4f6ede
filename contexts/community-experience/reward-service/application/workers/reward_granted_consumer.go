package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"impulse/contexts/community-experience/reward-service/application"
	domainerrors "impulse/contexts/community-experience/reward-service/domain/errors"
	"impulse/contexts/community-experience/reward-service/ports"
)

type rewardGrantedPayload struct {
	UserID   string    `json:"user_id"`
	ReportID string    `json:"report_id"`
	Points   int       `json:"points"`
	At       time.Time `json:"at"`
}

// RewardGrantedConsumer applies reward.granted events from the bus to the
// points ledger. Redeliveries are absorbed by the service-level dedupe, so
// the handler never fails on a replay.
type RewardGrantedConsumer struct {
	Service application.Service
	Logger  *slog.Logger
}

func (c RewardGrantedConsumer) Handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var payload rewardGrantedPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		logger.Error("reward event decode failed",
			"event", "reward_consumer_decode_failed",
			"module", "community-experience/reward-service",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return domainerrors.ErrGrantMalformed
	}

	_, err := c.Service.ApplyGrant(ctx, application.ApplyGrantInput{
		UserID:   payload.UserID,
		ReportID: payload.ReportID,
		Points:   payload.Points,
	})
	return err
}
