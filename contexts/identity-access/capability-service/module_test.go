package capabilityservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"impulse/contexts/identity-access/capability-service/adapters/memory"
	"impulse/contexts/identity-access/capability-service/domain/entities"
	domainerrors "impulse/contexts/identity-access/capability-service/domain/errors"
	httptransport "impulse/contexts/identity-access/capability-service/transport/http"
)

func TestResolvePermissionsEndToEnd(t *testing.T) {
	module := NewInMemoryModule(nil)
	module.Store.SetChallenge(entities.ChallengeSnapshot{
		ChallengeID:  "challenge-1",
		OwnerID:      "owner-1",
		State:        entities.ChallengeStateActive,
		Visibility:   entities.VisibilityPublic,
		ValidatorIDs: []string{"v1"},
	})
	module.Store.SetRole("mod-1", entities.RoleModerator)

	set, err := module.Handler.ResolvePermissionsHandler(context.Background(), httptransport.ResolvePermissionsRequest{
		UserID:      "mod-1",
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !set.Moderate || !set.Validate || set.SubmitEvidence {
		t.Fatalf("unexpected staff set: %+v", set)
	}
}

func TestResolvePermissionsUnknownChallenge(t *testing.T) {
	module := NewInMemoryModule(nil)
	_, err := module.Handler.ResolvePermissionsHandler(context.Background(), httptransport.ResolvePermissionsRequest{
		UserID:      "user-1",
		ChallengeID: "missing",
	})
	if !errors.Is(err, domainerrors.ErrChallengeNotFound) {
		t.Fatalf("expected challenge not found, got %v", err)
	}
}

func TestResolvePermissionsEmptyChallengeID(t *testing.T) {
	module := NewInMemoryModule(nil)
	_, err := module.Handler.ResolvePermissionsHandler(context.Background(), httptransport.ResolvePermissionsRequest{
		UserID: "user-1",
	})
	if !errors.Is(err, domainerrors.ErrInvalidChallengeID) {
		t.Fatalf("expected invalid challenge id, got %v", err)
	}
}

func TestResolvePermissionsServesCachedSetUntilExpiry(t *testing.T) {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Challenges: store,
		Roles:      store,
		Cache:      store,
		Clock:      store,
		CacheTTL:   time.Minute,
	})
	store.SetChallenge(entities.ChallengeSnapshot{
		ChallengeID: "challenge-1",
		OwnerID:     "owner-1",
		State:       entities.ChallengeStateActive,
		Visibility:  entities.VisibilityPublic,
	})

	first, err := module.Handler.ResolvePermissionsHandler(context.Background(), httptransport.ResolvePermissionsRequest{
		UserID:      "owner-1",
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if !first.SubmitEvidence {
		t.Fatalf("owner on active challenge must submit evidence: %+v", first)
	}

	// Within the TTL the resolver answers from cache and may be stale
	// against challenge edits.
	challenge := entities.ChallengeSnapshot{
		ChallengeID: "challenge-1",
		OwnerID:     "owner-1",
		State:       entities.ChallengeStateCompleted,
		Visibility:  entities.VisibilityPublic,
	}
	store.SetChallenge(challenge)

	second, err := module.Handler.ResolvePermissionsHandler(context.Background(), httptransport.ResolvePermissionsRequest{
		UserID:      "owner-1",
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("cached resolve failed: %v", err)
	}
	if !second.SubmitEvidence {
		t.Fatalf("expected stale cached set within TTL: %+v", second)
	}
}

func TestResolvePermissionsAnonymousCallerIsValid(t *testing.T) {
	module := NewInMemoryModule(nil)
	module.Store.SetChallenge(entities.ChallengeSnapshot{
		ChallengeID: "challenge-1",
		OwnerID:     "owner-1",
		Visibility:  entities.VisibilityPublic,
	})

	set, err := module.Handler.ResolvePermissionsHandler(context.Background(), httptransport.ResolvePermissionsRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("anonymous resolve failed: %v", err)
	}
	if !set.Read || !set.Comment || !set.Report {
		t.Fatalf("anonymous caller must read public challenge: %+v", set)
	}
	if set.Update || set.Validate || set.Moderate {
		t.Fatalf("anonymous caller over-privileged: %+v", set)
	}
}
