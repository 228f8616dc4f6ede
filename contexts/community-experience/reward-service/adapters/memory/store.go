package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"impulse/contexts/community-experience/reward-service/ports"

	"github.com/google/uuid"
)

// Store implements every reward-service port over mutex-guarded maps.
type Store struct {
	mu sync.RWMutex

	grants map[string]ports.PointsGrant
	totals map[string]ports.UserPoints
}

func NewStore() *Store {
	return &Store{
		grants: make(map[string]ports.PointsGrant),
		totals: make(map[string]ports.UserPoints),
	}
}

func (s *Store) HasGrant(_ context.Context, reportID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.grants[strings.TrimSpace(reportID)]
	return ok, nil
}

func (s *Store) AppendGrant(_ context.Context, grant ports.PointsGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[strings.TrimSpace(grant.ReportID)] = grant
	return nil
}

func (s *Store) IncrementUserPoints(
	_ context.Context,
	userID string,
	points int,
	now time.Time,
) (ports.UserPoints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.totals[strings.TrimSpace(userID)]
	total.UserID = strings.TrimSpace(userID)
	total.TotalPoints += points
	total.Grants++
	total.UpdatedAt = now
	s.totals[total.UserID] = total
	return total, nil
}

func (s *Store) GetUserPoints(_ context.Context, userID string) (ports.UserPoints, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total, ok := s.totals[strings.TrimSpace(userID)]
	if !ok {
		return ports.UserPoints{UserID: strings.TrimSpace(userID)}, nil
	}
	return total, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
