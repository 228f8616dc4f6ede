package ports

import (
	"context"
	"time"

	"impulse/contexts/identity-access/capability-service/domain/entities"
)

type ChallengeReader interface {
	GetChallengeSnapshot(ctx context.Context, challengeID string) (entities.ChallengeSnapshot, error)
}

type RoleProvider interface {
	GetRole(ctx context.Context, userID string) (entities.GlobalRole, error)
}

// PermissionCache memoizes resolved sets for a short TTL. The resolver is
// lock-free and may answer from a slightly stale snapshot; this is the
// documented staleness trade-off, not a bug.
type PermissionCache interface {
	Get(ctx context.Context, userID string, challengeID string, now time.Time) (entities.PermissionSet, bool, error)
	Set(ctx context.Context, userID string, challengeID string, set entities.PermissionSet, expiresAt time.Time) error
}

type Clock interface {
	Now() time.Time
}
