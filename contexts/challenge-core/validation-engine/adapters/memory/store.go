package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	domainerrors "impulse/contexts/challenge-core/validation-engine/domain/errors"
	"impulse/contexts/challenge-core/validation-engine/ports"

	"github.com/google/uuid"
)

type reportRecord struct {
	report  entities.ProgressReport
	version int64
}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store implements every validation-engine port over mutex-guarded maps.
// Report writes are compare-and-swap on the version token, which makes the
// store a faithful stand-in for the optimistic postgres adapter in tests.
type Store struct {
	mu sync.RWMutex

	challenges map[string]entities.Challenge
	reports    map[string]reportRecord
	roles      map[string]ports.GlobalRole
	outbox     map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		challenges: make(map[string]entities.Challenge),
		reports:    make(map[string]reportRecord),
		roles:      make(map[string]ports.GlobalRole),
		outbox:     make(map[string]outboxRecord),
	}
}

func (s *Store) SetChallenge(challenge entities.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[strings.TrimSpace(challenge.ChallengeID)] = challenge
}

func (s *Store) SetRole(userID string, role ports.GlobalRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[strings.TrimSpace(userID)] = role
}

// SeedReport installs a report at version 1, bypassing the create path.
func (s *Store) SeedReport(report entities.ProgressReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[strings.TrimSpace(report.ReportID)] = reportRecord{
		report:  cloneReport(report),
		version: 1,
	}
}

func (s *Store) GetChallenge(_ context.Context, challengeID string) (entities.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[strings.TrimSpace(challengeID)]
	if !ok {
		return entities.Challenge{}, domainerrors.ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *Store) GetRole(_ context.Context, userID string) (ports.GlobalRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[strings.TrimSpace(userID)]
	if !ok {
		return "", domainerrors.ErrUserNotFound
	}
	return role, nil
}

func (s *Store) CreateReport(_ context.Context, report entities.ProgressReport) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(report.ReportID)
	if _, exists := s.reports[id]; exists {
		return 0, domainerrors.ErrVersionConflict
	}
	s.reports[id] = reportRecord{report: cloneReport(report), version: 1}
	return 1, nil
}

func (s *Store) GetReport(_ context.Context, reportID string) (entities.ProgressReport, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.reports[strings.TrimSpace(reportID)]
	if !ok {
		return entities.ProgressReport{}, 0, domainerrors.ErrReportNotFound
	}
	return cloneReport(record.report), record.version, nil
}

func (s *Store) SaveReport(
	_ context.Context,
	report entities.ProgressReport,
	expectedVersion int64,
) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(report.ReportID)
	record, ok := s.reports[id]
	if !ok {
		return 0, domainerrors.ErrReportNotFound
	}
	if record.version != expectedVersion {
		return 0, domainerrors.ErrVersionConflict
	}
	next := record.version + 1
	s.reports[id] = reportRecord{report: cloneReport(report), version: next}
	return next, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox[envelope.EventID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:  envelope.EventID,
			EventType: envelope.EventType,
			Payload:   payload,
			CreatedAt: envelope.OccurredAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []ports.OutboxMessage
	for _, record := range s.outbox {
		if !record.published {
			pending = append(pending, record.message)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].OutboxID < pending[j].OutboxID
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[strings.TrimSpace(outboxID)] = record
	return nil
}

// OutboxEvents decodes every appended envelope, published or not. Test-side
// helper for asserting emitted events.
func (s *Store) OutboxEvents() []ports.EventEnvelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var events []ports.EventEnvelope
	for _, record := range s.outbox {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(record.message.Payload, &envelope); err != nil {
			continue
		}
		events = append(events, envelope)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].OccurredAt.Equal(events[j].OccurredAt) {
			return events[i].EventID < events[j].EventID
		}
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})
	return events
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneReport(report entities.ProgressReport) entities.ProgressReport {
	clone := report
	clone.ValidatorSnapshot = append([]string(nil), report.ValidatorSnapshot...)
	clone.Votes = append([]entities.ValidationVote(nil), report.Votes...)
	return clone
}
