package ports

import (
	"context"
	"encoding/json"
	"time"
)

// PointsGrant is one applied reward, keyed by the report that earned it.
type PointsGrant struct {
	GrantID   string
	UserID    string
	ReportID  string
	Points    int
	CreatedAt time.Time
}

type UserPoints struct {
	UserID      string
	TotalPoints int
	Grants      int
	UpdatedAt   time.Time
}

// Repository persists grants and running totals. HasGrant backs the
// per-report dedupe that makes event redelivery safe.
type Repository interface {
	HasGrant(ctx context.Context, reportID string) (bool, error)
	AppendGrant(ctx context.Context, grant PointsGrant) error
	IncrementUserPoints(ctx context.Context, userID string, points int, now time.Time) (UserPoints, error)
	GetUserPoints(ctx context.Context, userID string) (UserPoints, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope mirrors the canonical bus envelope shape.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}
