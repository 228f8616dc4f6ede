package ports

import (
	"context"
	"encoding/json"
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
)

// GlobalRole is the platform-wide role of a principal, distinct from the
// per-challenge capabilities resolved by the capability service.
type GlobalRole string

const (
	RoleUser      GlobalRole = "USER"
	RoleModerator GlobalRole = "MODERATOR"
	RoleAdmin     GlobalRole = "ADMIN"
)

type ChallengeRepository interface {
	GetChallenge(ctx context.Context, challengeID string) (entities.Challenge, error)
}

// ReportRepository persists progress reports under an optimistic version
// token. SaveReport must fail with the domain version-conflict sentinel when
// expectedVersion is stale, so the engine can retry the whole
// read-modify-write cycle.
type ReportRepository interface {
	CreateReport(ctx context.Context, report entities.ProgressReport) (int64, error)
	GetReport(ctx context.Context, reportID string) (entities.ProgressReport, int64, error)
	SaveReport(ctx context.Context, report entities.ProgressReport, expectedVersion int64) (int64, error)
}

type UserRoleProvider interface {
	GetRole(ctx context.Context, userID string) (GlobalRole, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope is the canonical wire shape appended to the outbox and
// relayed to the event bus.
type EventEnvelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
