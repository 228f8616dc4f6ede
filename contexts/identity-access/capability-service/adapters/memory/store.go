package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"impulse/contexts/identity-access/capability-service/domain/entities"
	domainerrors "impulse/contexts/identity-access/capability-service/domain/errors"
)

type cacheRecord struct {
	set       entities.PermissionSet
	expiresAt time.Time
}

// Store implements every capability-service port over mutex-guarded maps.
type Store struct {
	mu sync.RWMutex

	challenges map[string]entities.ChallengeSnapshot
	roles      map[string]entities.GlobalRole
	cache      map[string]cacheRecord
}

func NewStore() *Store {
	return &Store{
		challenges: make(map[string]entities.ChallengeSnapshot),
		roles:      make(map[string]entities.GlobalRole),
		cache:      make(map[string]cacheRecord),
	}
}

func (s *Store) SetChallenge(challenge entities.ChallengeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[strings.TrimSpace(challenge.ChallengeID)] = challenge
}

func (s *Store) SetRole(userID string, role entities.GlobalRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[strings.TrimSpace(userID)] = role
}

func (s *Store) GetChallengeSnapshot(_ context.Context, challengeID string) (entities.ChallengeSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[strings.TrimSpace(challengeID)]
	if !ok {
		return entities.ChallengeSnapshot{}, domainerrors.ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *Store) GetRole(_ context.Context, userID string) (entities.GlobalRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[strings.TrimSpace(userID)]
	if !ok {
		return entities.RoleUser, nil
	}
	return role, nil
}

func (s *Store) Get(
	_ context.Context,
	userID string,
	challengeID string,
	now time.Time,
) (entities.PermissionSet, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.cache[cacheKey(userID, challengeID)]
	if !ok || now.After(record.expiresAt) {
		return entities.PermissionSet{}, false, nil
	}
	return record.set, true, nil
}

func (s *Store) Set(
	_ context.Context,
	userID string,
	challengeID string,
	set entities.PermissionSet,
	expiresAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[cacheKey(userID, challengeID)] = cacheRecord{set: set, expiresAt: expiresAt}
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func cacheKey(userID string, challengeID string) string {
	return strings.TrimSpace(userID) + "|" + strings.TrimSpace(challengeID)
}
