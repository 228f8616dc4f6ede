package rewardservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"impulse/contexts/community-experience/reward-service/application"
	domainerrors "impulse/contexts/community-experience/reward-service/domain/errors"
	"impulse/contexts/community-experience/reward-service/ports"
)

func TestApplyGrantAccumulates(t *testing.T) {
	module := NewInMemoryModule(nil)

	first, err := module.Service.ApplyGrant(context.Background(), application.ApplyGrantInput{
		UserID:   "user-1",
		ReportID: "report-1",
		Points:   25,
	})
	if err != nil {
		t.Fatalf("first grant failed: %v", err)
	}
	if first.Replayed || first.Points.TotalPoints != 25 {
		t.Fatalf("unexpected first grant result: %+v", first)
	}

	second, err := module.Service.ApplyGrant(context.Background(), application.ApplyGrantInput{
		UserID:   "user-1",
		ReportID: "report-2",
		Points:   50,
	})
	if err != nil {
		t.Fatalf("second grant failed: %v", err)
	}
	if second.Points.TotalPoints != 75 || second.Points.Grants != 2 {
		t.Fatalf("expected accumulated total 75 over 2 grants, got %+v", second.Points)
	}
}

func TestApplyGrantReplaySafe(t *testing.T) {
	module := NewInMemoryModule(nil)
	input := application.ApplyGrantInput{UserID: "user-1", ReportID: "report-1", Points: 10}

	if _, err := module.Service.ApplyGrant(context.Background(), input); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	replay, err := module.Service.ApplyGrant(context.Background(), input)
	if err != nil {
		t.Fatalf("replayed grant failed: %v", err)
	}
	if !replay.Replayed {
		t.Fatal("expected replay marker on redelivered grant")
	}
	if replay.Points.TotalPoints != 10 {
		t.Fatalf("replay must not change the total, got %d", replay.Points.TotalPoints)
	}
}

func TestApplyGrantValidatesInput(t *testing.T) {
	module := NewInMemoryModule(nil)
	cases := []application.ApplyGrantInput{
		{UserID: "", ReportID: "report-1", Points: 10},
		{UserID: "user-1", ReportID: "", Points: 10},
		{UserID: "user-1", ReportID: "report-1", Points: 0},
		{UserID: "user-1", ReportID: "report-1", Points: -5},
	}
	for _, input := range cases {
		if _, err := module.Service.ApplyGrant(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", input, err)
		}
	}
}

func TestConsumerAppliesBusEvent(t *testing.T) {
	module := NewInMemoryModule(nil)
	data, _ := json.Marshal(map[string]any{
		"user_id":   "user-1",
		"report_id": "report-1",
		"points":    100,
		"at":        time.Now().UTC(),
	})
	event := ports.EventEnvelope{
		EventID:       "evt-1",
		EventType:     "reward.granted",
		OccurredAt:    time.Now().UTC(),
		SourceService: "validation-engine",
		SchemaVersion: 1,
		PartitionKey:  "report-1",
		Data:          data,
	}

	if err := module.Consumer.Handle(context.Background(), event); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	// Redelivery is a no-op.
	if err := module.Consumer.Handle(context.Background(), event); err != nil {
		t.Fatalf("redelivered consume failed: %v", err)
	}

	points, err := module.Handler.UserPointsHandler(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("points query failed: %v", err)
	}
	if points.TotalPoints != 100 || points.Grants != 1 {
		t.Fatalf("expected single credited grant of 100, got %+v", points)
	}
}

func TestConsumerRejectsMalformedPayload(t *testing.T) {
	module := NewInMemoryModule(nil)
	event := ports.EventEnvelope{
		EventID:   "evt-bad",
		EventType: "reward.granted",
		Data:      json.RawMessage(`{"points":"not-a-number"}`),
	}
	if err := module.Consumer.Handle(context.Background(), event); !errors.Is(err, domainerrors.ErrGrantMalformed) {
		t.Fatalf("expected malformed grant error, got %v", err)
	}
}

func TestUserPointsUnknownUserReadsZero(t *testing.T) {
	module := NewInMemoryModule(nil)
	points, err := module.Handler.UserPointsHandler(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("points query failed: %v", err)
	}
	if points.TotalPoints != 0 || points.Grants != 0 {
		t.Fatalf("expected zero totals for unknown user, got %+v", points)
	}
}
