package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "impulse/contexts/community-experience/reward-service/domain/errors"
	"impulse/contexts/community-experience/reward-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type ApplyGrantInput struct {
	UserID   string
	ReportID string
	Points   int
}

type ApplyGrantResult struct {
	Points   ports.UserPoints
	Replayed bool
}

// ApplyGrant credits one reward to the user's running total. Replay-safe on
// the report id: a redelivered grant for an already-credited report returns
// the current total without touching the ledger.
func (s Service) ApplyGrant(ctx context.Context, input ApplyGrantInput) (ApplyGrantResult, error) {
	userID := strings.TrimSpace(input.UserID)
	reportID := strings.TrimSpace(input.ReportID)
	if userID == "" || reportID == "" || input.Points <= 0 {
		return ApplyGrantResult{}, domainerrors.ErrInvalidInput
	}

	applied, err := s.Repo.HasGrant(ctx, reportID)
	if err != nil {
		return ApplyGrantResult{}, err
	}
	if applied {
		points, err := s.Repo.GetUserPoints(ctx, userID)
		if err != nil {
			return ApplyGrantResult{}, err
		}
		resolveLogger(s.Logger).Info("reward grant replayed",
			"event", "reward_grant_replayed",
			"module", "community-experience/reward-service",
			"layer", "application",
			"user_id", userID,
			"report_id", reportID,
		)
		return ApplyGrantResult{Points: points, Replayed: true}, nil
	}

	now := s.now()
	grantID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ApplyGrantResult{}, err
	}
	if err := s.Repo.AppendGrant(ctx, ports.PointsGrant{
		GrantID:   grantID,
		UserID:    userID,
		ReportID:  reportID,
		Points:    input.Points,
		CreatedAt: now,
	}); err != nil {
		return ApplyGrantResult{}, err
	}

	points, err := s.Repo.IncrementUserPoints(ctx, userID, input.Points, now)
	if err != nil {
		return ApplyGrantResult{}, err
	}

	resolveLogger(s.Logger).Info("reward grant applied",
		"event", "reward_grant_applied",
		"module", "community-experience/reward-service",
		"layer", "application",
		"user_id", userID,
		"report_id", reportID,
		"points", input.Points,
		"total_points", points.TotalPoints,
	)
	return ApplyGrantResult{Points: points}, nil
}

// UserPoints returns the running total for one user. Users without grants
// read as a zero total rather than an error.
func (s Service) UserPoints(ctx context.Context, userID string) (ports.UserPoints, error) {
	if strings.TrimSpace(userID) == "" {
		return ports.UserPoints{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetUserPoints(ctx, strings.TrimSpace(userID))
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
