package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "impulse/contexts/identity-access/capability-service/application"
	"impulse/contexts/identity-access/capability-service/domain/entities"
	domainerrors "impulse/contexts/identity-access/capability-service/domain/errors"
	"impulse/contexts/identity-access/capability-service/domain/services"
	"impulse/contexts/identity-access/capability-service/ports"
)

// ResolvePermissionsQuery identifies the (principal, challenge) pair. An
// empty UserID is a valid unauthenticated request, not an error.
type ResolvePermissionsQuery struct {
	UserID      string
	ChallengeID string
}

// ResolvePermissionsUseCase orchestrates cache-first capability resolution.
// The only error it returns is the unresolvable-challenge case; every other
// degradation resolves to a weaker principal instead of failing.
type ResolvePermissionsUseCase struct {
	Challenges ports.ChallengeReader
	Roles      ports.RoleProvider
	Cache      ports.PermissionCache
	Clock      ports.Clock
	CacheTTL   time.Duration
	Logger     *slog.Logger
}

func (uc ResolvePermissionsUseCase) Execute(
	ctx context.Context,
	query ResolvePermissionsQuery,
) (entities.PermissionSet, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(query.UserID)
	challengeID := strings.TrimSpace(query.ChallengeID)
	if challengeID == "" {
		return entities.PermissionSet{}, domainerrors.ErrInvalidChallengeID
	}

	now := uc.now()
	if uc.Cache != nil {
		if set, hit, err := uc.Cache.Get(ctx, userID, challengeID, now); err == nil && hit {
			logger.Debug("capability cache hit",
				"event", "capability_cache_hit",
				"module", "identity-access/capability-service",
				"layer", "application",
				"user_id", userID,
				"challenge_id", challengeID,
			)
			return set, nil
		}
	}

	challenge, err := uc.Challenges.GetChallengeSnapshot(ctx, challengeID)
	if err != nil {
		return entities.PermissionSet{}, err
	}

	principal := entities.Principal{UserID: userID}
	if userID != "" {
		role, err := uc.Roles.GetRole(ctx, userID)
		if err != nil {
			// Role lookup failure weakens the principal to a plain user
			// instead of failing the query: deny elevated capabilities by
			// default.
			logger.Warn("role lookup failed, resolving as plain user",
				"event", "capability_role_lookup_failed",
				"module", "identity-access/capability-service",
				"layer", "application",
				"user_id", userID,
				"challenge_id", challengeID,
				"error", err.Error(),
			)
			role = entities.RoleUser
		}
		principal.Role = role
	}

	set := services.Resolve(principal, challenge)
	if uc.Cache != nil {
		_ = uc.Cache.Set(ctx, userID, challengeID, set, now.Add(uc.cacheTTL()))
	}

	logger.Debug("capabilities resolved",
		"event", "capability_resolved",
		"module", "identity-access/capability-service",
		"layer", "application",
		"user_id", userID,
		"challenge_id", challengeID,
		"read", set.Read,
		"validate", set.Validate,
		"moderate", set.Moderate,
	)
	return set, nil
}

func (uc ResolvePermissionsUseCase) cacheTTL() time.Duration {
	if uc.CacheTTL <= 0 {
		return 30 * time.Second
	}
	return uc.CacheTTL
}

func (uc ResolvePermissionsUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
